package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/datascan/internal/model"
)

// ExcelWriter outputs reports as xlsx workbooks.
// This format is for users who want to keep crunching the numbers in a
// spreadsheet.
//
// Design decision: The workbook is built in memory and streamed to the
// configured io.Writer, so this writer composes with MultiWriter and
// in-memory buffers the same way the text writers do. Values are written
// as native cell types, not preformatted strings, so spreadsheet formulas
// can use them directly.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter that outputs to the given writer.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report as a workbook with a statistics sheet and a
// categories sheet.
func (w *ExcelWriter) Write(report *model.AnalysisReport) (int, error) {
	if report.Statistics == nil || report.Categories == nil {
		return 0, fmt.Errorf("cannot render %q: %w", report.DataFile, ErrIncompleteReport)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeStatisticsSheet(f, report); err != nil {
		return 0, err
	}
	if err := w.writeCategoriesSheet(f, report); err != nil {
		return 0, err
	}

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// writeStatisticsSheet fills the default sheet with run information and
// the computed statistics, one labelled value per row.
func (w *ExcelWriter) writeStatisticsSheet(f *excelize.File, report *model.AnalysisReport) error {
	const sheet = "Statistics"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	stats := report.Statistics
	rows := []struct {
		label string
		value interface{}
	}{
		{"Data file", report.DataFile},
		{"Categories file", report.CategoriesFile},
		{"Analyzed", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
		{"Threshold", report.Threshold},
		{"Data points", stats.Count},
		{"Total", stats.Total},
		{"Average", stats.Average},
		{"Minimum", stats.Minimum},
		{"Maximum", stats.Maximum},
		{"Performance", report.Verdict.String()},
	}

	if ext := report.Extended; ext != nil {
		rows = append(rows, []struct {
			label string
			value interface{}
		}{
			{"Median", ext.Median},
			{"Std deviation", ext.StdDev},
			{"Variance", ext.Variance},
			{"Q1", ext.Q1},
			{"Q3", ext.Q3},
			{"95% CI lower", ext.CILower},
			{"95% CI upper", ext.CIUpper},
		}...)
	}

	for i, row := range rows {
		if err := setLabelledCell(f, sheet, i+1, row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}

// writeCategoriesSheet writes the category census with frequencies.
func (w *ExcelWriter) writeCategoriesSheet(f *excelize.File, report *model.AnalysisReport) error {
	const sheet = "Categories"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := setLabelledCell(f, sheet, 1, "Category", "Count"); err != nil {
		return err
	}
	for i, category := range report.Categories {
		count := report.CategoryFrequencies[category]
		if err := setLabelledCell(f, sheet, i+2, category, count); err != nil {
			return err
		}
	}
	return nil
}

// WriteComparison outputs a two-run comparison as a single-sheet workbook.
func (w *ExcelWriter) WriteComparison(cmp *model.RunComparison) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Comparison"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, err
	}

	rows := []struct {
		label string
		value interface{}
	}{
		{"Base run", cmp.BaseRunID},
		{"Other run", cmp.OtherRunID},
		{"Base data file", cmp.BaseDataFile},
		{"Other data file", cmp.OtherDataFile},
		{"Data points delta", cmp.CountDelta},
		{"Total delta", cmp.TotalDelta},
		{"Average delta", cmp.AverageDelta},
		{"Minimum delta", cmp.MinimumDelta},
		{"Maximum delta", cmp.MaximumDelta},
		{"Base verdict", cmp.BaseVerdict},
		{"Other verdict", cmp.OtherVerdict},
		{"Added categories", strings.Join(cmp.AddedCategories, ", ")},
		{"Removed categories", strings.Join(cmp.RemovedCategories, ", ")},
	}

	for i, row := range rows {
		if err := setLabelledCell(f, sheet, i+1, row.label, row.value); err != nil {
			return 0, err
		}
	}

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// setLabelledCell writes a label in column A and a value in column B of the
// given 1-based row.
func setLabelledCell(f *excelize.File, sheet string, row int, label string, value interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetCellValue(sheet, cell, label); err != nil {
		return err
	}
	cell, _ = excelize.CoordinatesToCellName(2, row)
	return f.SetCellValue(sheet, cell, value)
}
