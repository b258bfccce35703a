package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"camrec/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the content catalog",
	}
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			var statuses []catalog.Status
			if statusFilter != "" {
				statuses = append(statuses, catalog.Status(statusFilter))
			}
			entries, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return fmt.Errorf("list catalog: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEntryTable(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show entries with this status (pending, complete, failed)")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			entry, err := store.GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get entry: %w", err)
			}
			if entry == nil {
				return fmt.Errorf("no catalog entry with id %d", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %d\n", entry.ID)
			fmt.Fprintf(out, "Title:    %s\n", entry.DisplayName)
			fmt.Fprintf(out, "URI:      %s\n", entry.URI)
			fmt.Fprintf(out, "Path:     %s\n", entry.Path)
			fmt.Fprintf(out, "Status:   %s\n", entry.Status)
			fmt.Fprintf(out, "Size:     %s\n", formatBytes(entry.Bytes))
			fmt.Fprintf(out, "Duration: %s\n", time.Duration(entry.DurationMS)*time.Millisecond)
			fmt.Fprintf(out, "Created:  %s\n", entry.CreatedAt.Local().Format(time.RFC1123))
			if entry.Error != "" {
				fmt.Fprintf(out, "Error:    %s\n", entry.Error)
			}
			return nil
		},
	}
}
