package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ppiankov/gresql/internal/scanner"
)

// writeTable renders matches as a human-readable table with a summary line.
func writeTable(w io.Writer, report *Report, opts Options) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := table.Row{"FILE", "LINES", "TYPE", "TABLES", "QUERY"}
	if !opts.HideText {
		header = append(header, "STATEMENT")
	}
	t.AppendHeader(header)

	for _, fm := range report.Files {
		for _, pm := range fm.Predicates {
			for _, sm := range pm.Statements {
				st := sm.Statement
				row := table.Row{
					fm.Path,
					fmt.Sprintf("%d-%d", st.StartLine, st.EndLine),
					string(st.Type),
					strings.Join(sm.Tables, ", "),
					pm.Query,
				}
				if !opts.HideText {
					row = append(row, truncate(scanner.Collapse(st.Text), 80))
				}
				t.AppendRow(row)
			}
		}
	}
	t.Render()

	_, err := fmt.Fprintf(w, "\n%d of %d files matched, %d statements\n",
		report.Summary.FilesMatched, report.Summary.FilesScanned, report.Summary.Statements)
	return err
}

// truncate shortens s for display.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
