package suppress

import (
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ppiankov/gresql/internal/match"
)

// Suppression is a single rule in the ignore file. Table and Path support a
// trailing * wildcard; Type names a statement type or is empty for any.
type Suppression struct {
	Table  string `yaml:"table"`
	Type   string `yaml:"type,omitempty"`
	Path   string `yaml:"path,omitempty"`
	Reason string `yaml:"reason,omitempty"`
}

// IgnoreFile is the structure of .gresql-ignore.yml.
type IgnoreFile struct {
	Suppressions []Suppression `yaml:"suppressions"`
}

// Rules holds loaded suppression rules from all sources.
type Rules struct {
	ignoreFile IgnoreFile
	// Tables from config exclude.tables
	configTables []string
}

// LoadRules loads suppression rules from .gresql-ignore.yml in the given
// directory. A missing file yields empty rules.
func LoadRules(dir string) (*Rules, error) {
	r := &Rules{}

	path := filepath.Join(dir, ".gresql-ignore.yml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &r.ignoreFile); err != nil {
		return nil, err
	}
	return r, nil
}

// WithConfigTables adds table suppressions from config exclude.tables.
func (r *Rules) WithConfigTables(tables []string) {
	r.configTables = tables
}

// IsSuppressed returns true if the statement match should be dropped: its
// text carries an inline ignore marker, its table is excluded by config, or
// an ignore-file rule covers its table, type, and path.
func (r *Rules) IsSuppressed(path string, sm *match.StatementMatch) bool {
	if HasInlineIgnore(sm.Statement.Text) {
		return true
	}

	for _, t := range r.configTables {
		if matchAnyTable(t, sm.Tables) {
			return true
		}
	}

	for _, s := range r.ignoreFile.Suppressions {
		if s.Table == "" && s.Type == "" && s.Path == "" {
			continue
		}
		if s.Type != "" && !strings.EqualFold(s.Type, string(sm.Statement.Type)) {
			continue
		}
		if s.Path != "" && !matchPattern(s.Path, path) {
			continue
		}
		if s.Table != "" && !matchAnyTable(s.Table, sm.Tables) {
			continue
		}
		return true
	}

	return false
}

// Filter removes suppressed statement matches and recomputes each file's
// verdict. Returns the filtered matches and the number suppressed.
func (r *Rules) Filter(matches []match.FileMatch) ([]match.FileMatch, int) {
	suppressed := 0
	for i := range matches {
		fm := &matches[i]
		changed := false
		for j := range fm.Predicates {
			pm := &fm.Predicates[j]
			kept := pm.Statements[:0]
			for k := range pm.Statements {
				if r.IsSuppressed(fm.Path, &pm.Statements[k]) {
					suppressed++
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
	return matches, suppressed
}

// matchAnyTable matches the pattern against any of the statement's
// matching tables.
func matchAnyTable(pattern string, tables []string) bool {
	for _, t := range tables {
		if matchPattern(pattern, t) {
			return true
		}
	}
	return false
}

// matchPattern matches a name against a pattern that supports trailing
// wildcards. Comparison is case-insensitive.
func matchPattern(pattern, name string) bool {
	pattern = strings.ToLower(pattern)
	name = strings.ToLower(name)

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == name
}

// HasInlineIgnore returns true if the statement text contains a
// gresql:ignore comment.
func HasInlineIgnore(text string) bool {
	return strings.Contains(text, "gresql:ignore")
}
