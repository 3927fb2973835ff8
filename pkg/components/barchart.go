package components

import (
	"fmt"
	"strings"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Color string // hex color
}

// BarChart renders labeled horizontal bars scaled to the largest value.
type BarChart struct {
	// LabelWidth is the column reserved for labels. Zero means the
	// longest label, capped at 16.
	LabelWidth int
	Bars       []Bar
}

// Render draws one line per bar at the given total width. Values render
// as full blocks with the numeric value appended.
func (bc *BarChart) Render(width int) string {
	if len(bc.Bars) == 0 || width < 8 {
		return ""
	}

	labelW := bc.LabelWidth
	if labelW <= 0 {
		for _, b := range bc.Bars {
			if n := len([]rune(b.Label)); n > labelW {
				labelW = n
			}
		}
		if labelW > 16 {
			labelW = 16
		}
	}

	maxV := 0.0
	for _, b := range bc.Bars {
		if b.Value > maxV {
			maxV = b.Value
		}
	}

	var lines []string
	for _, b := range bc.Bars {
		label := truncate(b.Label, labelW)
		valStr := formatBarValue(b.Value)

		barW := width - labelW - len(valStr) - 3
		if barW < 1 {
			barW = 1
		}
		fill := 0
		if maxV > 0 {
			fill = int(b.Value / maxV * float64(barW))
		}
		if fill < 1 && b.Value > 0 {
			fill = 1
		}

		var sb strings.Builder
		sb.WriteString(padRight(label, labelW))
		sb.WriteString(" ")
		sb.WriteString(Color(b.Color))
		sb.WriteString(strings.Repeat("█", fill))
		sb.WriteString(Reset())
		sb.WriteString(" ")
		sb.WriteString(valStr)
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(lines, "\n")
}

func formatBarValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func padRight(s string, w int) string {
	if n := len([]rune(s)); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
