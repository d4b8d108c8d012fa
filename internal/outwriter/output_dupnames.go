package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/internal/parquet"
	"github.com/huangsam/codeinsights/schema"
)

// manyCopies is the group size above which a duplicate name is shown in red.
const manyCopies = 3

// WriteDuplicateResult outputs dup-names results, dispatching based on the output format configured.
func WriteDuplicateResult(result *schema.DuplicateResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "file", "copies", "identical"}, func(csvWriter *csv.Writer) error {
				for _, row := range duplicateRows(result) {
					record := []string{row.Name, row.FilePath, strconv.Itoa(int(row.Copies)), strconv.FormatBool(row.Identical)}
					if err := csvWriter.Write(record); err != nil {
						return fmt.Errorf("error writing CSV record for %s: %w", row.FilePath, err)
					}
				}
				return nil
			})
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(duplicateRows(result), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDuplicateText(w, result, cfg)
		}, "Wrote report")
	}
	return nil
}

func duplicateRows(result *schema.DuplicateResult) []parquet.DuplicateFile {
	var rows []parquet.DuplicateFile
	for _, g := range result.Groups {
		for _, f := range g.Files {
			rows = append(rows, parquet.DuplicateFile{
				Name:      g.Name,
				FilePath:  f.RelativePath,
				Copies:    int32(len(g.Files)),
				Identical: g.Identical,
			})
		}
	}
	return rows
}

func writeDuplicateText(w io.Writer, result *schema.DuplicateResult, cfg *contract.Config) error {
	out := &textWriter{w: w}
	yellow := painter(cfg.UseColors, color.New(color.FgYellow))
	red := painter(cfg.UseColors, color.New(color.FgRed))

	for _, g := range result.Groups {
		label := fmt.Sprintf("- %s (%d files)", g.Name, len(g.Files))
		if len(g.Files) > manyCopies {
			label = red(label)
		} else {
			label = yellow(label)
		}
		if g.Identical {
			label += " [identical]"
		}
		out.printf("%s\n", label)
		for _, f := range g.Files {
			out.printf("  - %s\n", f.RelativePath)
		}
	}

	totals := result.Totals
	if len(result.Groups) > 0 {
		out.printf("\n")
	}
	out.printf("Total files:             %5d\n", totals.Files)
	out.printf("Total duplicate names:   %5d\n", totals.DuplicateName)
	out.printf("Max copies per name:     %5d\n", totals.MaxCopies)
	return out.err
}
