package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ppiankov/gresql/internal/baseline"
	"github.com/ppiankov/gresql/internal/config"
	"github.com/ppiankov/gresql/internal/logging"
	"github.com/ppiankov/gresql/internal/match"
	"github.com/ppiankov/gresql/internal/query"
	"github.com/ppiankov/gresql/internal/reporter"
	"github.com/ppiankov/gresql/internal/scanner"
	"github.com/ppiankov/gresql/internal/suppress"
)

// BuildInfo carries version metadata injected at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ExitError signals a specific process exit code to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

var (
	verbose bool
	cfg     config.Config
)

func newRootCmd(info BuildInfo) *cobra.Command {
	var (
		searches       []string
		delimiter      string
		pathOnly       bool
		noText         bool
		format         string
		parallel       int
		baselinePath   string
		updateBaseline string
		failOnMatch    bool
	)

	root := &cobra.Command{
		Use:   "gresql [flags] [path ...]",
		Short: "Search SQL files for statements by type and table",
		Long: "Scans SQL source files and reports which contain statements of the given\n" +
			"types (SELECT/INSERT/UPDATE/DELETE/MERGE) referencing the given tables.\n" +
			"Every --search query must match (AND); the types and tables within one\n" +
			"query are alternatives (OR). Paths may be files, directories, or globs;\n" +
			"directories are searched recursively for *.sql files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(verbose, cmd.ErrOrStderr())

			_ = godotenv.Load()

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			cfg, err = config.Load(cwd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			slog.Debug("config loaded", "path", cwd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(searches) == 0 {
				return fmt.Errorf("--search is required")
			}

			// Apply config and environment defaults if flags not explicitly set
			if !cmd.Flags().Changed("format") {
				if env := os.Getenv("GRESQL_FORMAT"); env != "" {
					format = env
				} else if cfg.Defaults.Format != "" {
					format = cfg.Defaults.Format
				}
			}
			if !cmd.Flags().Changed("delimiter") && cfg.Defaults.Delimiter != "" {
				delimiter = cfg.Defaults.Delimiter
			}
			if !cmd.Flags().Changed("parallel") && cfg.Defaults.Parallel > 0 {
				parallel = cfg.Defaults.Parallel
			}

			preds, err := query.ParseAll(searches)
			if err != nil {
				return err
			}

			paths := scanner.Collect(args, cfg.Exclude.Dirs)
			slog.Debug("paths collected", "count", len(paths))

			scan, err := scanner.ScanParallel(cmd.Context(), paths, scanner.Options{
				StripQuotes: cfg.StripQuotes(),
				Workers:     parallel,
			})
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			slog.Info("scanned", "files", scan.FilesScanned, "skipped", scan.FilesSkipped)

			matched := match.Matched(match.EvaluateAll(scan.Files, preds))

			// Save baseline before filtering
			if updateBaseline != "" {
				if err := baseline.Save(updateBaseline, matched); err != nil {
					return fmt.Errorf("save baseline: %w", err)
				}
				slog.Info("baseline saved", "path", updateBaseline, "files", len(matched))
			}

			// Apply baseline + suppress filters
			matched, suppressed, err := filterMatches(matched, baselinePath)
			if err != nil {
				return err
			}
			if suppressed > 0 {
				slog.Info("matches filtered", "suppressed", suppressed)
			}

			report := reporter.NewReport(info.Version, searches, matched, reporter.Summary{
				FilesScanned: scan.FilesScanned,
				FilesSkipped: scan.FilesSkipped,
				FilesMatched: len(matched),
				Statements:   match.CountStatements(matched),
				Suppressed:   suppressed,
			})

			err = reporter.Write(cmd.OutOrStdout(), &report, reporter.Format(format), reporter.Options{
				Delimiter: delimiter,
				PathOnly:  pathOnly,
				HideText:  noText,
			})
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if len(matched) == 0 && reporter.Format(format) == reporter.FormatText {
				fmt.Fprintln(cmd.ErrOrStderr(), "No statements found")
			}

			if failOnMatch && len(matched) > 0 {
				return &ExitError{Code: 2}
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.Flags().StringArrayVarP(&searches, "search", "s", nil, "search query [types]:<tables> (repeatable, required)")
	root.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "output field delimiter")
	root.Flags().BoolVarP(&pathOnly, "path-only", "p", false, "print only the paths of matching files")
	root.Flags().BoolVarP(&noText, "no-statement-text", "T", false, "omit statement text from results")
	root.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, table, or sarif")
	root.Flags().IntVar(&parallel, "parallel", 0, "number of scanner goroutines (0=NumCPU, 1=sequential)")
	root.Flags().StringVar(&baselinePath, "baseline", "", "path to baseline file (suppress known matches)")
	root.Flags().StringVar(&updateBaseline, "update-baseline", "", "save current matches as new baseline")
	root.Flags().BoolVar(&failOnMatch, "fail-on-match", false, "exit 2 if any file matches")

	root.AddCommand(newVersionCmd(info))

	return root
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gresql %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}

// filterMatches applies baseline and suppression rules, then drops files
// whose verdict flipped once their last supporting statement was removed.
func filterMatches(matches []match.FileMatch, baselinePath string) ([]match.FileMatch, int, error) {
	total := 0

	if baselinePath != "" {
		bl, err := baseline.Load(baselinePath)
		if err != nil {
			return nil, 0, fmt.Errorf("load baseline: %w", err)
		}
		var n int
		matches, n = bl.Filter(matches)
		total += n
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	rules, err := suppress.LoadRules(cwd)
	if err != nil {
		return nil, 0, fmt.Errorf("load suppress rules: %w", err)
	}
	rules.WithConfigTables(cfg.Exclude.Tables)

	var n int
	matches, n = rules.Filter(matches)
	total += n

	return match.Matched(matches), total, nil
}

// Execute runs the root command.
func Execute(version, commit, date string) error {
	return newRootCmd(BuildInfo{Version: version, Commit: commit, Date: date}).Execute()
}
