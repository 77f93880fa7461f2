// Package match evaluates parsed search predicates against the statements
// extracted from each file: AND across predicates, OR within a predicate's
// type set and table set.
package match

import (
	"github.com/ppiankov/gresql/internal/query"
	"github.com/ppiankov/gresql/internal/scanner"
)

// StatementMatch pairs a matching statement with the tables that satisfied
// the predicate (the intersection, spelling preserved).
type StatementMatch struct {
	Statement scanner.Statement `json:"statement"`
	Tables    []string          `json:"tables"`
}

// PredicateMatch lists the statements that satisfied one predicate in one
// file.
type PredicateMatch struct {
	Query      string           `json:"query"`
	Statements []StatementMatch `json:"statements,omitempty"`
}

// FileMatch is the matching outcome for one file. Matched is true only when
// every predicate found at least one supporting statement.
type FileMatch struct {
	Path       string           `json:"path"`
	Matched    bool             `json:"matched"`
	Predicates []PredicateMatch `json:"predicates,omitempty"`
}

// Evaluate decides whether one file's statements satisfy every predicate. A
// statement supports a predicate when its type is in the predicate's type
// set and its tables intersect the predicate's table set. Statements with
// no resolved tables never match.
func Evaluate(fr scanner.FileResult, preds []query.Predicate) FileMatch {
	fm := FileMatch{Path: fr.Path, Matched: len(preds) > 0}

	for _, p := range preds {
		pm := PredicateMatch{Query: p.Raw}
		for _, st := range fr.Statements {
			if !p.HasType(st.Type) {
				continue
			}
			tables := p.MatchTables(st.Tables)
			if len(tables) == 0 {
				continue
			}
			pm.Statements = append(pm.Statements, StatementMatch{Statement: st, Tables: tables})
		}
		if len(pm.Statements) == 0 {
			fm.Matched = false
		}
		fm.Predicates = append(fm.Predicates, pm)
	}

	return fm
}

// EvaluateAll evaluates every file in order.
func EvaluateAll(files []scanner.FileResult, preds []query.Predicate) []FileMatch {
	matches := make([]FileMatch, 0, len(files))
	for _, fr := range files {
		matches = append(matches, Evaluate(fr, preds))
	}
	return matches
}

// Recompute re-derives a file's verdict after a filter removed statement
// matches.
func Recompute(fm *FileMatch) {
	fm.Matched = len(fm.Predicates) > 0
	for _, pm := range fm.Predicates {
		if len(pm.Statements) == 0 {
			fm.Matched = false
			return
		}
	}
}

// Matched returns only the files that satisfied every predicate.
func Matched(matches []FileMatch) []FileMatch {
	var out []FileMatch
	for _, fm := range matches {
		if fm.Matched {
			out = append(out, fm)
		}
	}
	return out
}

// CountStatements totals the statement matches across all predicates of the
// given files.
func CountStatements(matches []FileMatch) int {
	n := 0
	for _, fm := range matches {
		for _, pm := range fm.Predicates {
			n += len(pm.Statements)
		}
	}
	return n
}
