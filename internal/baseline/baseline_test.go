package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/gresql/internal/match"
	"github.com/ppiankov/gresql/internal/scanner"
)

func stmt(typ scanner.StatementType, text string, tables ...string) scanner.Statement {
	return scanner.Statement{Type: typ, Tables: tables, Text: text}
}

func fileMatch(path string, stmts ...scanner.Statement) match.FileMatch {
	fm := match.FileMatch{Path: path, Matched: true}
	pm := match.PredicateMatch{Query: "q"}
	for _, st := range stmts {
		pm.Statements = append(pm.Statements, match.StatementMatch{Statement: st, Tables: st.Tables})
	}
	fm.Predicates = []match.PredicateMatch{pm}
	return fm
}

func TestFingerprint_Stable(t *testing.T) {
	st := stmt(scanner.StatementUpdate, "UPDATE orders\nSET x = 1", "orders")

	fp1 := Fingerprint("a.sql", &st)
	fp2 := Fingerprint("a.sql", &st)
	if fp1 != fp2 {
		t.Errorf("fingerprint not stable: %q != %q", fp1, fp2)
	}
}

func TestFingerprint_IgnoresLinesAndSpacing(t *testing.T) {
	a := scanner.Statement{Type: scanner.StatementUpdate, Tables: []string{"orders"},
		Text: "UPDATE orders SET x = 1", StartLine: 1, EndLine: 1}
	b := scanner.Statement{Type: scanner.StatementUpdate, Tables: []string{"orders"},
		Text: "UPDATE orders\n  SET x = 1", StartLine: 40, EndLine: 41}

	if Fingerprint("a.sql", &a) != Fingerprint("a.sql", &b) {
		t.Error("line numbers and whitespace should not change the fingerprint")
	}
}

func TestFingerprint_Distinct(t *testing.T) {
	a := stmt(scanner.StatementUpdate, "UPDATE orders SET x = 1", "orders")
	b := stmt(scanner.StatementUpdate, "UPDATE customers SET x = 1", "customers")

	if Fingerprint("a.sql", &a) == Fingerprint("a.sql", &b) {
		t.Error("different statements should have different fingerprints")
	}
	if Fingerprint("a.sql", &a) == Fingerprint("b.sql", &a) {
		t.Error("same statement in different files should have different fingerprints")
	}
}

func TestLoad_MissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing baseline file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")

	st1 := stmt(scanner.StatementUpdate, "UPDATE orders SET x = 1", "orders")
	st2 := stmt(scanner.StatementDelete, "DELETE FROM sessions", "sessions")
	matches := []match.FileMatch{fileMatch("a.sql", st1, st2)}

	if err := Save(path, matches); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Fingerprints) != 2 {
		t.Fatalf("expected 2 fingerprints, got %d", len(b.Fingerprints))
	}
	if !b.Contains("a.sql", &st1) || !b.Contains("a.sql", &st2) {
		t.Error("baseline should contain both saved statements")
	}

	other := stmt(scanner.StatementUpdate, "UPDATE payments SET x = 1", "payments")
	if b.Contains("a.sql", &other) {
		t.Error("baseline should not contain an unseen statement")
	}
}

func TestSave_SkipsUnmatchedAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")

	st := stmt(scanner.StatementUpdate, "UPDATE orders SET x = 1", "orders")
	matched := fileMatch("a.sql", st, st)
	unmatched := fileMatch("b.sql", st)
	unmatched.Matched = false

	if err := Save(path, []match.FileMatch{matched, unmatched}); err != nil {
		t.Fatal(err)
	}

	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Fingerprints) != 1 {
		t.Errorf("expected 1 unique fingerprint, got %d", len(b.Fingerprints))
	}
}

func TestFilter_RecomputesVerdict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.json")

	old := stmt(scanner.StatementUpdate, "UPDATE orders SET x = 1", "orders")
	fresh := stmt(scanner.StatementDelete, "DELETE FROM orders", "orders")

	if err := Save(path, []match.FileMatch{fileMatch("a.sql", old)}); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Two evaluations of the same file: one with a new statement besides the
	// baselined one, one with the baselined statement only.
	matches := []match.FileMatch{
		fileMatch("a.sql", old, fresh),
		fileMatch("a.sql", old),
	}
	filtered, removed := b.Filter(matches)

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if !filtered[0].Matched || len(filtered[0].Predicates[0].Statements) != 1 {
		t.Errorf("first file should still match on the new statement: %+v", filtered[0])
	}
	if filtered[1].Matched {
		t.Error("second file lost its only statement and should no longer match")
	}
}

func TestFilter_EmptyBaseline(t *testing.T) {
	b := &Baseline{set: make(map[string]bool)}
	st := stmt(scanner.StatementUpdate, "UPDATE orders SET x = 1", "orders")

	filtered, removed := b.Filter([]match.FileMatch{fileMatch("a.sql", st)})
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if len(filtered) != 1 || !filtered[0].Matched {
		t.Errorf("filtered = %+v, want untouched", filtered)
	}
}
