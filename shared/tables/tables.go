// Package tables renders export diagnostics and history as tables.
package tables

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/ocsf-export/service/storage"
)

// RenderPageTable prints per-page retrieval counts.
func RenderPageTable(w io.Writer, pages []storage.PageRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Page", "Findings", "Running Total"})
	total := 0
	for _, p := range pages {
		t.AppendRow(table.Row{p.Index, p.Items, p.Total})
		total = p.Total
	}
	t.AppendFooter(table.Row{"", "Total", total})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderHistoryTable prints recent export runs.
func RenderHistoryTable(w io.Writer, runs []storage.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Timestamp", "Account", "Region", "Findings", "Pages", "Output"})
	for _, r := range runs {
		output := r.OutputPath
		if output == "" {
			output = "stdout"
		}
		t.AppendRow(table.Row{r.RunID, r.RunTimestamp.Format("2006-01-02 15:04:05"), r.AccountID, r.Region, r.TotalFindings, r.PageCount, output})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
