package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/trend-pulse/pkg/components"
	"gitlab.com/tinyland/lab/trend-pulse/pkg/engine"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A5E82C"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F4F4F4")).
			Padding(0, 1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

// renderHeader shows the batch total, the watch-keyword counts, and the
// last tick error if any.
func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TREND PULSE"))

	if m.out != nil {
		b.WriteString(fmt.Sprintf("  %d records in current batch", m.out.TotalRecords))
		for _, kc := range m.out.WatchCounts {
			b.WriteString(fmt.Sprintf("  %s:%d", kc.Key, kc.Count))
		}
	} else {
		b.WriteString("  waiting for first batch")
	}
	if m.lastErr != nil {
		b.WriteString("  ")
		b.WriteString(errStyle.Render("poll failed, showing last data"))
	}
	return headerStyle.MaxWidth(m.width).Render(b.String())
}

// renderTrendPanel draws the keyword mention trend chart.
func (m Model) renderTrendPanel(w, h int) string {
	var series []engine.KeySeries
	if m.out != nil {
		series = m.out.Counts
	}
	return m.trendPanel("WORD-COUNT TREND", series, w, h)
}

// renderSentimentPanel draws the per-keyword sentiment trend chart.
func (m Model) renderSentimentPanel(w, h int) string {
	var series []engine.KeySeries
	if m.out != nil {
		series = m.out.Sentiments
	}
	return m.trendPanel("SENTIMENT SCORE", series, w, h)
}

// trendPanel renders a titled braille chart over the given series.
func (m Model) trendPanel(title string, series []engine.KeySeries, w, h int) string {
	innerW, innerH := inner(w, h)

	chart := components.TrendChart{ShowLegend: true}
	for _, ks := range series {
		cs := components.ChartSeries{Name: ks.Key, Color: ks.Color}
		for _, p := range ks.Points {
			cs.Points = append(cs.Points, components.ChartPoint{Time: p.Time, Value: p.Value})
		}
		chart.Series = append(chart.Series, cs)
	}

	content := chart.Render(innerW, innerH-1)
	body := titleStyle.Render(title) + "\n" + content
	return panelStyle.Width(w - 2).Height(h - 2).Render(body)
}

// renderWordPanel draws the word-count bar chart for the current tick.
func (m Model) renderWordPanel(w, h int) string {
	innerW, innerH := inner(w, h)

	var bars []components.Bar
	if m.out != nil {
		for i, kc := range m.out.TopWords {
			if i >= innerH-1 {
				break
			}
			bars = append(bars, components.Bar{
				Label: kc.Key,
				Value: float64(kc.Count),
				Color: barColor(i, m.out),
			})
		}
	}

	chart := components.BarChart{Bars: bars}
	body := titleStyle.Render("WORD COUNT") + "\n" + chart.Render(innerW)
	return panelStyle.Width(w - 2).Height(h - 2).Render(body)
}

// barColor picks the bar color for row i from the counts palette slots.
func barColor(i int, out *engine.Output) string {
	if i < len(out.Counts) {
		return out.Counts[i].Color
	}
	return "#6B7280"
}

// inner returns the drawable area inside a panel's border and padding.
func inner(w, h int) (int, int) {
	iw := w - 4
	ih := h - 2
	if iw < 4 {
		iw = 4
	}
	if ih < 2 {
		ih = 2
	}
	return iw, ih
}
