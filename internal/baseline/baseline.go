package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/gresql/internal/match"
	"github.com/ppiankov/gresql/internal/scanner"
)

// Baseline holds fingerprints of previously seen statement matches.
type Baseline struct {
	Fingerprints []string `json:"fingerprints"`
	set          map[string]bool
}

// Load reads a baseline file. A missing file is an error: a mistyped
// --baseline path should not silently behave like an empty baseline.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	b.set = make(map[string]bool, len(b.Fingerprints))
	for _, fp := range b.Fingerprints {
		b.set[fp] = true
	}
	return &b, nil
}

// Save writes fingerprints for every statement match of the matched files.
func Save(path string, matches []match.FileMatch) error {
	fps := make([]string, 0)
	seen := make(map[string]bool)
	for _, fm := range matches {
		if !fm.Matched {
			continue
		}
		for _, pm := range fm.Predicates {
			for i := range pm.Statements {
				fp := Fingerprint(fm.Path, &pm.Statements[i].Statement)
				if !seen[fp] {
					seen[fp] = true
					fps = append(fps, fp)
				}
			}
		}
	}
	sort.Strings(fps)

	b := Baseline{Fingerprints: fps}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Contains returns true if the statement's fingerprint is in the baseline.
func (b *Baseline) Contains(path string, st *scanner.Statement) bool {
	return b.set[Fingerprint(path, st)]
}

// Filter removes baselined statement matches and recomputes each file's
// verdict. Returns the filtered matches and the number removed.
func (b *Baseline) Filter(matches []match.FileMatch) ([]match.FileMatch, int) {
	if len(b.set) == 0 {
		return matches, 0
	}

	removed := 0
	for i := range matches {
		fm := &matches[i]
		changed := false
		for j := range fm.Predicates {
			pm := &fm.Predicates[j]
			kept := pm.Statements[:0]
			for k := range pm.Statements {
				if b.Contains(fm.Path, &pm.Statements[k].Statement) {
					removed++
					changed = true
					continue
				}
				kept = append(kept, pm.Statements[k])
			}
			pm.Statements = kept
		}
		if changed {
			match.Recompute(fm)
		}
	}
	return matches, removed
}

// Fingerprint computes a stable identifier for one statement in one file.
// Line numbers are not part of the identity, so edits above a statement
// keep it baselined.
func Fingerprint(path string, st *scanner.Statement) string {
	tables := make([]string, len(st.Tables))
	for i, t := range st.Tables {
		tables[i] = strings.ToLower(t)
	}
	sort.Strings(tables)

	key := fmt.Sprintf("%s|%s|%s|%s", path, st.Type, strings.Join(tables, ","), scanner.Collapse(st.Text))
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:16])
}
