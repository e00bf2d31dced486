package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Zuo-Peng/chatstat/internal/analytics"
	"github.com/Zuo-Peng/chatstat/internal/report"
)

// lengthBinWidth is the word-count width of one message length histogram bin.
const lengthBinWidth = 10

var titleCase = cases.Title(language.English)

type ReportOptions struct {
	Width int  // total width available for bar rows (0 = 80)
	Color bool // emit ANSI colour codes
}

type reportWriter struct {
	b     strings.Builder
	width int
	color bool
}

func (w *reportWriter) heading(title string) {
	if w.b.Len() > 0 {
		w.b.WriteString("\n")
	}
	if w.color {
		fmt.Fprintf(&w.b, "%s%s%s\n", colorHeading, title, colorReset)
	} else {
		fmt.Fprintf(&w.b, "%s\n%s\n", title, strings.Repeat("=", runewidth.StringWidth(title)))
	}
}

func (w *reportWriter) line(format string, args ...any) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

func (w *reportWriter) dim(s string) {
	if w.color {
		s = colorDim + s + colorReset
	}
	w.line("%s", s)
}

type bar struct {
	label string
	value int
}

// bars draws one horizontal bar per row, scaled to the largest value.
func (w *reportWriter) bars(rows []bar) {
	if len(rows) == 0 {
		w.dim("  (no data)")
		return
	}
	labelW, maxV := 0, 0
	for _, r := range rows {
		labelW = max(labelW, runewidth.StringWidth(r.label))
		maxV = max(maxV, r.value)
	}
	numW := len(humanize.Comma(int64(maxV)))
	barW := max(w.width-labelW-numW-6, 10)

	for _, r := range rows {
		n := 0
		if maxV > 0 {
			n = r.value * barW / maxV
		}
		if n == 0 && r.value > 0 {
			n = 1
		}
		w.line("  %s %*s %s",
			runewidth.FillRight(r.label, labelW),
			numW, humanize.Comma(int64(r.value)),
			strings.Repeat("█", n))
	}
}

func countBars(counts []analytics.Count) []bar {
	out := make([]bar, len(counts))
	for i, c := range counts {
		out[i] = bar{c.Value, c.Count}
	}
	return out
}

// RenderReport formats a report as plain text sections.
func RenderReport(rep *report.Report, opts ReportOptions) string {
	w := &reportWriter{width: opts.Width, color: opts.Color}
	if w.width <= 0 {
		w.width = 80
	}

	w.heading("Top Statistics: " + rep.User)
	w.line("  Total Messages  %s", humanize.Comma(int64(rep.Stats.Messages)))
	w.line("  Total Words     %s", humanize.Comma(int64(rep.Stats.Words)))
	w.line("  Media Shared    %s", humanize.Comma(int64(rep.Stats.Media)))
	w.line("  Links Shared    %s", humanize.Comma(int64(rep.Stats.Links)))

	if rep.TopUsers != nil {
		w.heading("Most Busy Users")
		w.bars(countBars(rep.TopUsers))
		w.line("")
		for _, s := range rep.Shares {
			w.line("  %s %6.2f%%", runewidth.FillRight(s.Name, 24), s.Percent)
		}
	}

	w.heading("Most Common Words")
	w.bars(countBars(rep.CommonWords))

	w.heading("Emoji Analysis")
	w.bars(countBars(rep.Emoji))

	w.heading("Monthly Timeline")
	tl := make([]bar, len(rep.Timeline))
	for i, p := range rep.Timeline {
		tl[i] = bar{p.Label, p.Messages}
	}
	w.bars(tl)

	w.heading("Daily Timeline")
	daily := make([]bar, len(rep.Daily))
	for i, p := range rep.Daily {
		daily[i] = bar{p.Date.Format("2006-01-02"), p.Messages}
	}
	w.bars(daily)

	w.heading("Most Busy Day")
	w.bars(countBars(rep.WeekActivity))

	w.heading("Most Busy Month")
	w.bars(countBars(rep.MonthActivity))

	w.heading("Weekly Activity Map")
	w.heatmap(rep.Heatmap)

	w.heading("Message Count Over " + titleCase.String(string(rep.Granularity)))
	ot := make([]bar, len(rep.OverTime))
	for i, b := range rep.OverTime {
		ot[i] = bar{b.Label, b.Messages}
	}
	w.bars(ot)

	w.heading("Message Length Distribution (Word Count)")
	w.bars(histogram(rep.Lengths, lengthBinWidth))

	return w.b.String()
}

func (w *reportWriter) heatmap(h analytics.Heatmap) {
	if len(h.Rows) == 0 {
		w.dim("  (no data)")
		return
	}
	labelW := 0
	for _, r := range h.Rows {
		labelW = max(labelW, len(r))
	}
	colW := make([]int, len(h.Columns))
	for j, c := range h.Columns {
		colW[j] = len(c)
		for i := range h.Rows {
			colW[j] = max(colW[j], len(strconv.Itoa(h.Cells[i][j])))
		}
	}

	var hdr strings.Builder
	hdr.WriteString("  " + strings.Repeat(" ", labelW))
	for j, c := range h.Columns {
		fmt.Fprintf(&hdr, " %*s", colW[j], c)
	}
	w.dim(hdr.String())

	for i, r := range h.Rows {
		var row strings.Builder
		fmt.Fprintf(&row, "  %-*s", labelW, r)
		for j := range h.Columns {
			fmt.Fprintf(&row, " %*d", colW[j], h.Cells[i][j])
		}
		w.line("%s", row.String())
	}
}

// histogram bins values into buckets of the given width, labelled "lo-hi".
// Empty bins between the smallest and largest value are kept.
func histogram(values []int, width int) []bar {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	hi := 0
	for _, v := range values {
		hi = max(hi, v)
	}
	bins := make([]bar, hi/width+1)
	for i := range bins {
		bins[i].label = fmt.Sprintf("%d-%d", i*width, (i+1)*width-1)
	}
	for _, v := range values {
		bins[v/width].value++
	}
	return bins
}
