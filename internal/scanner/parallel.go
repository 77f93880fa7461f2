package scanner

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScanParallel scans paths using a bounded worker pool. Workers 0 means
// runtime.NumCPU(); 1 falls back to the sequential scan. Per-file work is
// independent and side-effect free, so results land in input-order slots
// with no synchronization beyond the group itself.
func ScanParallel(ctx context.Context, paths []string, opts Options) (ScanResult, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || len(paths) < 2 {
		return ScanFiles(paths, opts), nil
	}

	type slot struct {
		result FileResult
		err    error
	}
	slots := make([]slot, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr, err := ScanFile(path, opts)
			slots[i] = slot{result: fr, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScanResult{}, err
	}

	var result ScanResult
	for _, s := range slots {
		if s.err != nil {
			slog.Warn("skipping unreadable file", "path", s.result.Path, "error", s.err)
			result.FilesSkipped++
			continue
		}
		result.Files = append(result.Files, s.result)
		result.FilesScanned++
	}
	return result, nil
}
