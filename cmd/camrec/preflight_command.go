package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"camrec/internal/preflight"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check directories, free space, and the capture device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			allPassed := true
			for _, check := range preflight.RunAll(cfg) {
				marker := "ok"
				if !check.Passed {
					marker = "FAIL"
					allPassed = false
				}
				if colorize {
					if check.Passed {
						marker = ansiGreen + marker + ansiReset
					} else {
						marker = ansiRed + marker + ansiReset
					}
				}
				fmt.Fprintf(out, "%-6s %-20s %s\n", marker, check.Name, check.Detail)
			}
			if !allPassed {
				return errors.New("one or more preflight checks failed")
			}
			return nil
		},
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
