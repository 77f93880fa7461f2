package scanner

// StatementType identifies the SQL operation a statement performs.
type StatementType string

const (
	StatementSelect StatementType = "SELECT"
	StatementInsert StatementType = "INSERT"
	StatementUpdate StatementType = "UPDATE"
	StatementDelete StatementType = "DELETE"
	StatementMerge  StatementType = "MERGE"
)

// Span is a contiguous block of source text the segmenter believes
// represents one SQL statement. Line numbers are 1-based and inclusive.
type Span struct {
	Text      string `json:"text"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Statement is a classified span together with the tables it targets.
// Tables keep the source spelling (schema qualification included) and are
// deduplicated case-insensitively; an empty set means extraction found no
// resolvable target.
type Statement struct {
	Type      StatementType `json:"type"`
	Tables    []string      `json:"tables"`
	Text      string        `json:"text"`
	StartLine int           `json:"startLine"`
	EndLine   int           `json:"endLine"`
}

// FileResult holds the statements extracted from one file.
type FileResult struct {
	Path       string      `json:"path"`
	Statements []Statement `json:"statements"`
}

// ScanResult aggregates per-file results for a run, in input order.
type ScanResult struct {
	Files        []FileResult `json:"files"`
	FilesScanned int          `json:"filesScanned"`
	FilesSkipped int          `json:"filesSkipped,omitempty"`
}
