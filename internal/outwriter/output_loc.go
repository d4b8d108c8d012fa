package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/parquet"
	"github.com/huangsam/codeinsights/schema"
)

// WriteLOCResult outputs loc results, dispatching based on the output format configured.
func WriteLOCResult(result *schema.LOCResult, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"file", "lines"}, func(csvWriter *csv.Writer) error {
				for _, s := range result.Files {
					if err := csvWriter.Write([]string{s.RelativePath, fmt.Sprintf(intFmt, s.Lines)}); err != nil {
						return fmt.Errorf("error writing CSV record for %s: %w", s.RelativePath, err)
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := make([]parquet.LOCFile, 0, len(result.Files))
		for _, s := range result.Files {
			rows = append(rows, parquet.LOCFile{FilePath: s.RelativePath, Lines: int32(s.Lines)})
		}
		if err := writeParquetFile(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLOCText(w, result, cfg)
		}, "Wrote report")
	}
	return nil
}

func writeLOCText(w io.Writer, result *schema.LOCResult, cfg *contract.Config) error {
	totals := result.Totals
	out := &textWriter{w: w}
	out.printf("Total files:   %10d\n", totals.Files)
	out.printf("Total LOC:     %10d\n", totals.Lines)
	out.printf("Average LOC:   %10.0f\n", totals.Average)
	if totals.MaxPath != "" {
		out.printf("Max LOC:       %10d %s\n", totals.Max, totals.MaxPath)
	}
	if out.err != nil || totals.Files == 0 {
		return out.err
	}

	maxPath := GetMaxTablePathWidth(cfg, 10)
	for _, section := range []struct {
		title string
		stats []schema.LOCStats
	}{
		{fmt.Sprintf("Top %d LOC:", len(totals.Top)), totals.Top},
		{fmt.Sprintf("Bottom %d LOC:", len(totals.Bottom)), totals.Bottom},
	} {
		if _, err := fmt.Fprintf(w, "\n%s\n", section.title); err != nil {
			return err
		}
		if err := writeLOCTable(w, section.stats, maxPath); err != nil {
			return err
		}
	}
	return nil
}

func writeLOCTable(w io.Writer, stats []schema.LOCStats, maxPath int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"LOC", "Path"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignRight, tw.AlignLeft}
	})

	var data [][]string
	for _, s := range stats {
		data = append(data, []string{strconv.Itoa(s.Lines), contract.TruncatePath(s.RelativePath, maxPath)})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add LOC rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render LOC table: %w", err)
	}
	return nil
}
