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

// complexityFileJSON adds the severity label to a file result.
type complexityFileJSON struct {
	schema.FileResult
	Severity schema.Severity `json:"severity"`
	Label    string          `json:"label"`
}

// complexityJSON is the document written for --output json.
type complexityJSON struct {
	Files            []complexityFileJSON `json:"files"`
	Project          schema.ProjectReport `json:"project"`
	Totals           schema.RunTotals     `json:"totals"`
	MetricsReference string               `json:"metrics_reference"`
}

// WriteComplexityResult outputs js-complex results, dispatching based on the output format configured.
func WriteComplexityResult(result *schema.ComplexityResult, cfg *contract.Config) error {
	if err := result.CheckMeasured(); err != nil {
		return err
	}
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, complexityDocument(result))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComplexityCSV(w, result, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(complexityRows(result), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComplexityText(w, result, cfg, fmtFloat)
		}, "Wrote report")
	}
	return nil
}

func complexityDocument(result *schema.ComplexityResult) complexityJSON {
	doc := complexityJSON{
		Files:            make([]complexityFileJSON, 0, len(result.Files)),
		Project:          result.Project,
		Totals:           result.Totals,
		MetricsReference: schema.MetricsReference,
	}
	for _, f := range result.Files {
		mi, _ := f.Maintainability()
		doc.Files = append(doc.Files, complexityFileJSON{
			FileResult: f,
			Severity:   schema.SeverityOf(mi),
			Label:      contract.GetPlainLabel(mi),
		})
	}
	return doc
}

func complexityRows(result *schema.ComplexityResult) []parquet.FileMetrics {
	rows := make([]parquet.FileMetrics, 0, len(result.Files))
	for _, f := range result.Files {
		mi, _ := f.Maintainability()
		row := parquet.FileMetrics{
			FilePath:        f.RelativePath,
			Maintainability: mi,
			Severity:        string(schema.SeverityOf(mi)),
		}
		if f.Report != nil {
			row.Cyclomatic = f.Report.Cyclomatic
			row.Effort = f.Report.Effort
			row.LOC = f.Report.LOC
			row.Params = f.Report.Params
			row.Functions = int32(len(f.Report.Functions))
			row.Dependencies = int32(len(f.Report.Dependencies))
		}
		rows = append(rows, row)
	}
	return rows
}

func writeComplexityCSV(w io.Writer, result *schema.ComplexityResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"file", "maintainability", "label", "cyclomatic", "effort", "loc", "params", "functions", "dependencies"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, row := range complexityRows(result) {
			record := []string{
				row.FilePath,
				fmtFloat(row.Maintainability),
				contract.GetPlainLabel(row.Maintainability),
				fmtFloat(row.Cyclomatic),
				fmtFloat(row.Effort),
				fmtFloat(row.LOC),
				fmtFloat(row.Params),
				fmt.Sprintf(intFmt, row.Functions),
				fmt.Sprintf(intFmt, row.Dependencies),
			}
			if err := csvWriter.Write(record); err != nil {
				return fmt.Errorf("error writing CSV record for %s: %w", row.FilePath, err)
			}
		}
		return nil
	})
}

// textWriter keeps the first write error so a report can be printed line by line.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func writeComplexityText(w io.Writer, result *schema.ComplexityResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	out := &textWriter{w: w}
	paintIndex := func(mi float64, s string) string {
		return painter(cfg.UseColors, contract.SeverityColor(mi))(s)
	}

	for _, f := range result.Files {
		mi, _ := f.Maintainability()
		out.printf("[ %s ] %s\n", paintIndex(mi, schema.PadCenter(strconv.Itoa(roundIndex(mi)), 6)), f.RelativePath)
		if cfg.Verbose && f.Report != nil && out.err == nil {
			out.err = writeFileDetail(w, f.Report, cfg, fmtFloat)
		}
	}

	totals := result.Totals
	out.printf("\nTotal files:  %d\n", totals.Total)
	if totals.LowestFile != nil {
		out.printf("Lowest maintainability index: %d %s\n", roundIndex(totals.LowestMaintainability), totals.LowestFile.RelativePath)
	}
	if len(totals.LowMaintainability) == 0 {
		out.printf("No files with low maintainability.\n")
	} else {
		out.printf("%d files with low maintainability:\n", len(totals.LowMaintainability))
		for _, f := range totals.LowMaintainability {
			mi, _ := f.Maintainability()
			out.printf("%s %s\n", paintIndex(mi, fmt.Sprintf("%10d", roundIndex(mi))), f.RelativePath)
		}
	}

	project := result.Project
	if totals.Total > 0 {
		out.printf("\nProject averages:\n")
		out.printf("  Maintainability: %s\n", fmtFloat(project.Maintainability))
		out.printf("  Cyclomatic:      %s\n", fmtFloat(project.Cyclomatic))
		out.printf("  Effort:          %s\n", fmtFloat(project.Effort))
		out.printf("  LOC:             %s\n", fmtFloat(project.LOC))
		out.printf("  Params:          %s\n", fmtFloat(project.Params))
		if !project.MatrixSkipped {
			out.printf("  First-order density: %s%%\n", fmtFloat(project.FirstOrderDensity))
			out.printf("  Change cost:         %s%%\n", fmtFloat(project.ChangeCost))
			out.printf("  Core size:           %s%%\n", fmtFloat(project.CoreSize))
		}
	}

	out.printf("\nSee %s for details on report metrics.\n", schema.MetricsReference)
	return out.err
}

// writeFileDetail prints the per-function table and module summary of one file.
func writeFileDetail(w io.Writer, report *schema.ComplexityReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(report.Functions) > 0 {
		maxName := GetMaxTablePathWidth(cfg, 50)
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Function", "Line", "Cyclomatic", "Params", "SLOC", "Effort"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, fn := range report.Functions {
			data = append(data, []string{
				contract.TruncatePath(fn.Name, maxName),
				strconv.Itoa(fn.Line),
				strconv.Itoa(fn.Cyclomatic),
				strconv.Itoa(fn.Params),
				strconv.Itoa(fn.SLOC.Logical),
				fmtFloat(fn.Halstead.Effort),
			})
		}
		if err := table.Bulk(data); err != nil {
			return fmt.Errorf("failed to add function rows: %w", err)
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render function table: %w", err)
		}
	}

	agg := report.Aggregate
	_, err := fmt.Fprintf(w, "  cyclomatic %s, effort %s, loc %s, params %s, logical sloc %d, dependencies %d\n",
		fmtFloat(report.Cyclomatic), fmtFloat(report.Effort), fmtFloat(report.LOC), fmtFloat(report.Params),
		agg.SLOC.Logical, len(report.Dependencies))
	return err
}
