package scanner

import (
	"fmt"
	"log/slog"
	"os"
)

// Options configure a scan run.
type Options struct {
	Segmenter   Segmenter // nil means BlankLineSegmenter
	StripQuotes bool      // strip "..."/[...]/`...` identifier delimiters
	Workers     int       // 0 = all CPUs, 1 = sequential
}

func (o Options) segmenter() Segmenter {
	if o.Segmenter == nil {
		return BlankLineSegmenter{}
	}
	return o.Segmenter
}

// ScanText runs the segment/classify/extract pipeline over one file's text.
// Unrecognized spans are dropped silently.
func ScanText(text string, opts Options) []Statement {
	var stmts []Statement
	for _, span := range opts.segmenter().Segment(text) {
		typ, ok := Classify(span.Text)
		if !ok {
			continue
		}
		stmts = append(stmts, Statement{
			Type:      typ,
			Tables:    Extract(typ, span.Text, opts.StripQuotes),
			Text:      span.Text,
			StartLine: span.StartLine,
			EndLine:   span.EndLine,
		})
	}
	return stmts
}

// ScanFile reads one file and scans its contents.
func ScanFile(path string, opts Options) (FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path}, fmt.Errorf("read %s: %w", path, err)
	}
	return FileResult{Path: path, Statements: ScanText(string(data), opts)}, nil
}

// ScanFiles scans every path sequentially, preserving input order.
// Unreadable files are logged and skipped; the run continues.
func ScanFiles(paths []string, opts Options) ScanResult {
	var result ScanResult
	for _, path := range paths {
		fr, err := ScanFile(path, opts)
		if err != nil {
			slog.Warn("skipping unreadable file", "path", path, "error", err)
			result.FilesSkipped++
			continue
		}
		result.Files = append(result.Files, fr)
		result.FilesScanned++
	}
	return result
}
