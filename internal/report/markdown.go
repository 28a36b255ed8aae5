package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/datascan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AnalysisReport) (int, error) {
	if report.Statistics == nil || report.Categories == nil {
		return 0, fmt.Errorf("cannot render %q: %w", report.DataFile, ErrIncompleteReport)
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeStatistics(md, report)
	w.writeVerdict(md, report)
	w.writeCategories(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H1("Dataset Analysis: " + humanizeFileName(report.DataFile))
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Data file", "`" + report.DataFile + "`"},
			{"Categories file", "`" + report.CategoriesFile + "`"},
			{"Analyzed", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")},
			{"Threshold", formatThreshold(report.Threshold)},
		},
	})
	md.PlainText("")
}

// writeStatistics writes the numeric statistics tables.
func (w *MarkdownWriter) writeStatistics(md *markdown.Markdown, report *model.AnalysisReport) {
	stats := report.Statistics

	md.H2("Statistics")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Data points", strconv.Itoa(stats.Count)},
			{"Total", formatValue(stats.Total)},
			{"Average", fmt.Sprintf("%.2f", stats.Average)},
			{"Minimum", formatValue(stats.Minimum)},
			{"Maximum", formatValue(stats.Maximum)},
		},
	})
	md.PlainText("")

	if report.Extended == nil {
		return
	}

	md.H2("Distribution")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Value"},
		Rows: [][]string{
			{"Median", formatValue(report.Extended.Median)},
			{"Std deviation", fmt.Sprintf("%.4f", report.Extended.StdDev)},
			{"Variance", fmt.Sprintf("%.4f", report.Extended.Variance)},
			{"Q1", formatValue(report.Extended.Q1)},
			{"Q3", formatValue(report.Extended.Q3)},
			{"95% CI of mean", fmt.Sprintf("[%.4f, %.4f]", report.Extended.CILower, report.Extended.CIUpper)},
		},
	})
	md.PlainText("")
}

// writeVerdict writes an alert carrying the performance classification.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.AnalysisReport) {
	sentence := fmt.Sprintf("average %.2f is %s threshold %s.",
		report.Statistics.Average,
		report.Verdict.ComparisonWord(),
		formatThreshold(report.Threshold))

	if report.Verdict == model.VerdictHighPerformance {
		md.Tipf("High Performance: %s", sentence)
	} else {
		md.Warningf("Needs Improvement: %s", sentence)
	}
	md.PlainText("")
}

// writeCategories writes the category census with a frequency pie chart.
func (w *MarkdownWriter) writeCategories(md *markdown.Markdown, report *model.AnalysisReport) {
	md.H2("Categories")
	md.PlainText("")
	md.PlainTextf("Total unique categories: %d", report.CategoryCount)
	md.PlainText("")
	md.BulletList(report.Categories...)
	md.PlainText("")

	if len(report.CategoryFrequencies) > 0 {
		w.writePieChart(md, report)
	}
}

// writePieChart writes a mermaid pie chart of category frequencies.
// Labels follow the census order so the chart is deterministic.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AnalysisReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Category Frequency"),
		piechart.WithShowData(true),
	)

	for _, category := range report.Categories {
		count := report.CategoryFrequencies[category]
		if count > 0 {
			chart.LabelAndIntValue(category, uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by datascan*")
}

// WriteComparison outputs a two-run comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(cmp *model.RunComparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Run", "ID", "Data file"},
		Rows: [][]string{
			{"Base", "`" + cmp.BaseRunID + "`", "`" + cmp.BaseDataFile + "`"},
			{"Other", "`" + cmp.OtherRunID + "`", "`" + cmp.OtherDataFile + "`"},
		},
	})
	md.PlainText("")

	md.H2("Movement")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Statistic", "Delta"},
		Rows: [][]string{
			{"Data points", fmt.Sprintf("%+d", cmp.CountDelta)},
			{"Total", formatDelta(cmp.TotalDelta)},
			{"Average", fmt.Sprintf("%+.2f", cmp.AverageDelta)},
			{"Minimum", formatDelta(cmp.MinimumDelta)},
			{"Maximum", formatDelta(cmp.MaximumDelta)},
		},
	})
	md.PlainText("")

	if cmp.VerdictChanged {
		md.Importantf("Verdict changed: %s to %s.", cmp.BaseVerdict, cmp.OtherVerdict)
	} else {
		md.Notef("Verdict unchanged: %s.", cmp.BaseVerdict)
	}
	md.PlainText("")

	if len(cmp.AddedCategories) > 0 {
		md.H2("Added Categories")
		md.PlainText("")
		md.BulletList(cmp.AddedCategories...)
		md.PlainText("")
	}
	if len(cmp.RemovedCategories) > 0 {
		md.H2("Removed Categories")
		md.PlainText("")
		md.BulletList(cmp.RemovedCategories...)
		md.PlainText("")
	}

	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// humanizeFileName turns an input path like "student_marks.csv" into a
// heading like "Student Marks".
func humanizeFileName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
