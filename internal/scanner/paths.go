package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are never descended into when expanding a directory.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// Collect expands arguments (files, directories, glob patterns) into the
// ordered list of files to scan. No arguments means the current directory.
// Directories recurse to *.sql files; glob matches and explicit file paths
// are taken as given. Paths that cannot be read are logged and skipped.
func Collect(args []string, excludeDirs []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}

	skip := make(map[string]bool, len(skipDirs)+len(excludeDirs))
	for d := range skipDirs {
		skip[d] = true
	}
	for _, d := range excludeDirs {
		skip[d] = true
	}

	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				slog.Warn("bad glob pattern", "pattern", arg, "error", err)
				continue
			}
			if len(matches) == 0 {
				slog.Warn("no files match pattern", "pattern", arg)
				continue
			}
			for _, m := range matches {
				expandPath(m, skip, add)
			}
			continue
		}
		expandPath(arg, skip, add)
	}

	return paths
}

func expandPath(path string, skip map[string]bool, add func(string)) {
	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("skipping unreadable path", "path", path, "error", err)
		return
	}
	if !info.IsDir() {
		add(path)
		return
	}
	walkSQL(path, skip, add)
}

// walkSQL recursively collects *.sql files under root.
func walkSQL(root string, skip map[string]bool, add func(string)) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".sql") {
			add(path)
		}
		return nil
	})
	if err != nil {
		slog.Warn("walk failed", "path", root, "error", err)
	}
}
