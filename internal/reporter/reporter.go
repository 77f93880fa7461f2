package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/gresql/internal/match"
	"github.com/ppiankov/gresql/internal/scanner"
)

// Format controls report output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatSARIF Format = "sarif"
)

// Options control presentation only; they never affect which files match.
type Options struct {
	Delimiter string // field delimiter for the text format
	PathOnly  bool   // print matching file paths, nothing else
	HideText  bool   // omit statement text
}

// Metadata holds report context.
type Metadata struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version"`
	Queries   []string `json:"queries"`
	Timestamp string   `json:"timestamp"`
}

// Summary counts the run's outcomes.
type Summary struct {
	FilesScanned int `json:"filesScanned"`
	FilesSkipped int `json:"filesSkipped,omitempty"`
	FilesMatched int `json:"filesMatched"`
	Statements   int `json:"statements"`
	Suppressed   int `json:"suppressed,omitempty"`
}

// Report is the top-level search output. Files holds matched files only.
type Report struct {
	Metadata Metadata          `json:"metadata"`
	Files    []match.FileMatch `json:"files"`
	Summary  Summary           `json:"summary"`
}

// NewReport builds a report from the matched files.
func NewReport(version string, queries []string, files []match.FileMatch, summary Summary) Report {
	if files == nil {
		files = []match.FileMatch{}
	}
	return Report{
		Metadata: Metadata{
			Tool:      "gresql",
			Version:   version,
			Queries:   queries,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Files:   files,
		Summary: summary,
	}
}

// Write outputs the report in the given format.
func Write(w io.Writer, report *Report, format Format, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, report, opts)
	case FormatJSON:
		return writeJSON(w, report)
	case FormatTable:
		return writeTable(w, report, opts)
	case FormatSARIF:
		return writeSARIF(w, report)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// writeText prints one delimiter-joined line per matching statement per
// predicate: path, begin, end, type, matched tables, collapsed text.
// PathOnly reduces the output to one line per matching file.
func writeText(w io.Writer, report *Report, opts Options) error {
	delim := opts.Delimiter
	if delim == "" {
		delim = ","
	}

	if opts.PathOnly {
		for _, fm := range report.Files {
			if _, err := fmt.Fprintln(w, pathLabel(fm.Path)); err != nil {
				return err
			}
		}
		return nil
	}

	for _, fm := range report.Files {
		for _, pm := range fm.Predicates {
			for _, sm := range pm.Statements {
				st := sm.Statement
				fields := []string{
					pathLabel(fm.Path),
					strconv.Itoa(st.StartLine),
					strconv.Itoa(st.EndLine),
					typeLabel(st.Type),
					strings.Join(sm.Tables, " "),
				}
				if !opts.HideText {
					fields = append(fields, scanner.Collapse(st.Text))
				}
				if _, err := fmt.Fprintln(w, strings.Join(fields, delim)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
