package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/gresql/internal/scanner"
)

// SARIF 2.1.0 types — minimal subset for valid output.

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	ShortDescription sarifMessage      `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaults `json:"defaultConfiguration"`
}

type sarifRuleDefaults struct {
	Level string `json:"level"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

var ruleDescriptions = map[scanner.StatementType]string{
	scanner.StatementSelect: "SELECT statement reading a searched table",
	scanner.StatementInsert: "INSERT statement targeting a searched table",
	scanner.StatementUpdate: "UPDATE statement targeting a searched table",
	scanner.StatementDelete: "DELETE statement targeting a searched table",
	scanner.StatementMerge:  "MERGE statement targeting a searched table",
}

func writeSARIF(w io.Writer, report *Report) error {
	ruleSet := make(map[scanner.StatementType]bool)
	for _, fm := range report.Files {
		for _, pm := range fm.Predicates {
			for _, sm := range pm.Statements {
				ruleSet[sm.Statement.Type] = true
			}
		}
	}

	rules := make([]sarifRule, 0, len(ruleSet))
	for typ := range ruleSet {
		rules = append(rules, sarifRule{
			ID:               "gresql/" + string(typ),
			ShortDescription: sarifMessage{Text: ruleDescriptions[typ]},
			DefaultConfig:    sarifRuleDefaults{Level: "note"},
		})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	results := make([]sarifResult, 0)
	for _, fm := range report.Files {
		for _, pm := range fm.Predicates {
			for _, sm := range pm.Statements {
				st := sm.Statement
				msg := fmt.Sprintf("%s on %s matches query %q",
					st.Type, strings.Join(sm.Tables, ", "), pm.Query)
				results = append(results, sarifResult{
					RuleID:  "gresql/" + string(st.Type),
					Level:   "note",
					Message: sarifMessage{Text: msg},
					Locations: []sarifLocation{
						{
							PhysicalLocation: sarifPhysicalLocation{
								ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(fm.Path)},
								Region:           sarifRegion{StartLine: st.StartLine, EndLine: st.EndLine},
							},
						},
					},
				})
			}
		}
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "gresql",
						Version:        report.Metadata.Version,
						InformationURI: "https://github.com/ppiankov/gresql",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}
