package main

import (
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"camrec/internal/catalog"
)

// renderEntryTable lays out catalog entries one per row. Numeric columns
// are right-aligned so sizes and durations line up.
func renderEntryTable(entries []*catalog.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Title", "Status", "Size", "Duration", "Created"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{
			strconv.FormatInt(entry.ID, 10),
			entry.DisplayName,
			string(entry.Status),
			formatBytes(entry.Bytes),
			(time.Duration(entry.DurationMS) * time.Millisecond).String(),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
