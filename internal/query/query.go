// Package query parses the search-query mini-language: "[types]:<tables>",
// a bare table list, or "*:<tables>". Type characters are d, i, m, s, u; an
// omitted or "*" type part means every DML type except SELECT.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/gresql/internal/scanner"
)

// Query parse errors.
var (
	ErrInvalidStatementType = errors.New("invalid statement type")
	ErrEmptyTableList       = errors.New("empty table list")
)

// typeChars maps query characters to statement types.
var typeChars = map[rune]scanner.StatementType{
	'd': scanner.StatementDelete,
	'i': scanner.StatementInsert,
	'm': scanner.StatementMerge,
	's': scanner.StatementSelect,
	'u': scanner.StatementUpdate,
}

// defaultTypes is the type set when the query names none: every DML type
// except SELECT.
var defaultTypes = []scanner.StatementType{
	scanner.StatementInsert,
	scanner.StatementUpdate,
	scanner.StatementDelete,
	scanner.StatementMerge,
}

// Predicate is one parsed --search query: an OR'd set of statement types
// and an OR'd set of table names. Across predicates the run semantics is
// AND.
type Predicate struct {
	Raw    string
	Types  []scanner.StatementType
	Tables []string // lower-cased
}

// Parse parses one search query into a predicate.
func Parse(raw string) (Predicate, error) {
	p := Predicate{Raw: raw}

	typePart, tablePart, hasColon := strings.Cut(raw, ":")
	if !hasColon {
		tablePart = raw
		typePart = ""
	}

	types, err := parseTypes(typePart)
	if err != nil {
		return p, fmt.Errorf("parse query %q: %w", raw, err)
	}
	p.Types = types

	for _, t := range strings.Split(tablePart, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		p.Tables = append(p.Tables, strings.ToLower(t))
	}
	if len(p.Tables) == 0 {
		return p, fmt.Errorf("parse query %q: %w", raw, ErrEmptyTableList)
	}

	return p, nil
}

func parseTypes(part string) ([]scanner.StatementType, error) {
	part = strings.TrimSpace(part)
	if part == "" || part == "*" {
		return defaultTypes, nil
	}

	var types []scanner.StatementType
	seen := make(map[scanner.StatementType]bool, len(part))
	for _, r := range strings.ToLower(part) {
		typ, ok := typeChars[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatementType, string(r))
		}
		if seen[typ] {
			continue
		}
		seen[typ] = true
		types = append(types, typ)
	}
	return types, nil
}

// ParseAll parses each raw query into one predicate, failing on the first
// bad query.
func ParseAll(raws []string) ([]Predicate, error) {
	preds := make([]Predicate, 0, len(raws))
	for _, raw := range raws {
		p, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

// HasType reports whether the predicate accepts the statement type.
func (p Predicate) HasType(typ scanner.StatementType) bool {
	for _, t := range p.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// MatchTables returns the statement tables, spelling preserved, whose
// lower-cased form is in the predicate's table set.
func (p Predicate) MatchTables(tables []string) []string {
	var matched []string
	for _, t := range tables {
		lower := strings.ToLower(t)
		for _, want := range p.Tables {
			if lower == want {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}
