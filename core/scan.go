package core

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// ScanFiles reads every record with at most workers concurrent reads and applies
// fn to its content. Results keep the order of records. The first error cancels
// the remaining reads.
func ScanFiles[T any](ctx context.Context, records []schema.FileRecord, workers int, fn func(rec schema.FileRecord, content []byte) (T, error)) ([]T, error) {
	out := make([]T, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(rec.Path)
			if err != nil {
				return contract.ParseError(rec.RelativePath, err)
			}
			v, err := fn(rec, content)
			if err != nil {
				return contract.ParseError(rec.RelativePath, err)
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// selectRecords is the Selecting stage shared by the scanners.
func selectRecords(cfg *contract.Config, reporter contract.ProgressReporter) ([]schema.FileRecord, error) {
	paths, err := SelectFiles(cfg)
	if err != nil {
		return nil, err
	}
	records := NewFileRecords(cfg.Root, paths)
	reporter.Report(schema.StageSelecting, fmt.Sprintf("Files found: %d", len(records)))
	return records, nil
}
