package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/datascan/internal/model"
)

// bannerWidth is the width of the report section banners.
const bannerWidth = 50

// TextWriter outputs the canonical text report.
// This is the format printed to the terminal and written to the report
// file; both always receive identical bytes.
//
// Design decision: The layout is fixed and carries no options. The report
// is rendered once into a buffer and emitted verbatim, so wrapping the
// destination in io.MultiWriter is enough to guarantee the console and the
// file never diverge.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in the canonical text format.
func (w *TextWriter) Write(report *model.AnalysisReport) (int, error) {
	if report.Statistics == nil || report.Categories == nil {
		return 0, fmt.Errorf("cannot render %q: %w", report.DataFile, ErrIncompleteReport)
	}

	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeStatistics(&sb, report.Statistics)
	w.writeVerdict(&sb, report)
	w.writeCategories(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the opening banner.
func (w *TextWriter) writeHeader(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("DATASET ANALYSIS RESULTS\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
}

// writeStatistics writes the numeric statistics section.
func (w *TextWriter) writeStatistics(sb *strings.Builder, stats *model.Statistics) {
	sb.WriteString(fmt.Sprintf("Total data points: %d\n", stats.Count))
	sb.WriteString(fmt.Sprintf("Total: %s\n", formatValue(stats.Total)))
	sb.WriteString(fmt.Sprintf("Average: %.2f\n", stats.Average))
	sb.WriteString(fmt.Sprintf("Minimum: %s\n", formatValue(stats.Minimum)))
	sb.WriteString(fmt.Sprintf("Maximum: %s\n", formatValue(stats.Maximum)))
}

// writeVerdict writes the performance classification and the threshold
// comparison sentence.
func (w *TextWriter) writeVerdict(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Performance: %s\n", report.Verdict.String()))
	sb.WriteString(fmt.Sprintf("(Average %.2f is %s threshold %s)\n",
		report.Statistics.Average,
		report.Verdict.ComparisonWord(),
		formatThreshold(report.Threshold)))
}

// writeCategories writes the category census section.
func (w *TextWriter) writeCategories(sb *strings.Builder, report *model.AnalysisReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("CATEGORICAL DATA ANALYSIS\n")
	sb.WriteString(strings.Repeat("-", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total unique categories: %d\n", report.CategoryCount))
	sb.WriteString(fmt.Sprintf("Unique categories: [%s]\n", strings.Join(report.Categories, ", ")))
}

// writeFooter writes the closing banner.
func (w *TextWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
}

// WriteComparison outputs a two-run comparison as plain text.
func (w *TextWriter) WriteComparison(cmp *model.RunComparison) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString("RUN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Base run:    %s (%s)\n", cmp.BaseRunID, cmp.BaseDataFile))
	sb.WriteString(fmt.Sprintf("Other run:   %s (%s)\n", cmp.OtherRunID, cmp.OtherDataFile))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Data points: %+d\n", cmp.CountDelta))
	sb.WriteString(fmt.Sprintf("Total:       %s\n", formatDelta(cmp.TotalDelta)))
	sb.WriteString(fmt.Sprintf("Average:     %+.2f\n", cmp.AverageDelta))
	sb.WriteString(fmt.Sprintf("Minimum:     %s\n", formatDelta(cmp.MinimumDelta)))
	sb.WriteString(fmt.Sprintf("Maximum:     %s\n", formatDelta(cmp.MaximumDelta)))
	sb.WriteString("\n")

	if cmp.VerdictChanged {
		sb.WriteString(fmt.Sprintf("Verdict: %s -> %s\n", cmp.BaseVerdict, cmp.OtherVerdict))
	} else {
		sb.WriteString(fmt.Sprintf("Verdict: %s (unchanged)\n", cmp.BaseVerdict))
	}

	if len(cmp.AddedCategories) == 0 && len(cmp.RemovedCategories) == 0 {
		sb.WriteString("Categories unchanged\n")
	}
	if len(cmp.AddedCategories) > 0 {
		sb.WriteString(fmt.Sprintf("Added categories: [%s]\n", strings.Join(cmp.AddedCategories, ", ")))
	}
	if len(cmp.RemovedCategories) > 0 {
		sb.WriteString(fmt.Sprintf("Removed categories: [%s]\n", strings.Join(cmp.RemovedCategories, ", ")))
	}

	sb.WriteString(strings.Repeat("=", bannerWidth))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// formatValue renders a statistic for the text report: integral values keep
// one trailing ".0", anything else prints in its shortest decimal form.
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return s + ".0"
	}
	return s
}

// formatThreshold renders the threshold in its shortest decimal form, with
// no forced decimal part.
func formatThreshold(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}

// formatDelta renders a signed statistic movement.
func formatDelta(v float64) string {
	if v >= 0 {
		return "+" + formatValue(v)
	}
	return formatValue(v)
}
