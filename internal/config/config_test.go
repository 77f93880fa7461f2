package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Defaults.Format)
	}
	if cfg.Defaults.Delimiter != "," {
		t.Errorf("Delimiter = %q, want comma", cfg.Defaults.Delimiter)
	}
	if !cfg.StripQuotes() {
		t.Error("StripQuotes() = false, want true by default")
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format, got %q", cfg.Defaults.Format)
	}
}

func TestLoad_FromDir(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
defaults:
  format: json
  delimiter: "|"
  parallel: 8
exclude:
  dirs:
    - legacy
  tables:
    - migrations
    - schema_versions
normalize:
  strip_quotes: false
`)
	if err := os.WriteFile(filepath.Join(dir, ".gresql.yml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Defaults.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Defaults.Format)
	}
	if cfg.Defaults.Delimiter != "|" {
		t.Errorf("Delimiter = %q, want |", cfg.Defaults.Delimiter)
	}
	if cfg.Defaults.Parallel != 8 {
		t.Errorf("Parallel = %d, want 8", cfg.Defaults.Parallel)
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "legacy" {
		t.Errorf("Exclude.Dirs = %v", cfg.Exclude.Dirs)
	}
	if len(cfg.Exclude.Tables) != 2 {
		t.Errorf("Exclude.Tables = %v, want 2 entries", cfg.Exclude.Tables)
	}
	if cfg.StripQuotes() {
		t.Error("StripQuotes() = true, want false")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gresql.yml"), []byte("{{invalid"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
defaults:
  parallel: 2
`)
	if err := os.WriteFile(filepath.Join(dir, ".gresql.yml"), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Defaults.Parallel != 2 {
		t.Errorf("Parallel = %d, want 2", cfg.Defaults.Parallel)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("Format = %q, want default text", cfg.Defaults.Format)
	}
	if cfg.Defaults.Delimiter != "," {
		t.Errorf("Delimiter = %q, want default comma", cfg.Defaults.Delimiter)
	}
}

func TestStripQuotes_Explicit(t *testing.T) {
	on, off := true, false

	cfg := Config{Normalize: Normalize{StripQuotes: &on}}
	if !cfg.StripQuotes() {
		t.Error("explicit true: got false")
	}

	cfg = Config{Normalize: Normalize{StripQuotes: &off}}
	if cfg.StripQuotes() {
		t.Error("explicit false: got true")
	}
}
