package components

import (
	"fmt"
	"strings"
	"time"
)

// ChartPoint is one time-value observation to plot.
type ChartPoint struct {
	Time  time.Time
	Value float64
}

// ChartSeries is a named, colored line on a TrendChart.
type ChartSeries struct {
	Name   string
	Color  string // hex color
	Points []ChartPoint
}

// TrendChart plots multiple time series as braille dots, one color per
// series, with an optional legend. The x-axis spans the union of all
// point timestamps; the y-axis auto-scales with a small margin.
type TrendChart struct {
	ShowLegend bool
	Series     []ChartSeries
}

// brailleBit returns the bit for dot (x, y) within a 2x4 braille cell.
func brailleBit(x, y int) uint8 {
	// Braille dot numbering: column-major, dots 7 and 8 on the bottom row.
	bits := [4][2]uint8{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	return bits[y][x]
}

// Render draws the chart into a width x height cell area. Output lines
// are newline-joined with no trailing whitespace.
func (tc *TrendChart) Render(width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}

	legendH := 0
	if tc.ShowLegend && len(tc.Series) > 0 {
		legendH = 1
	}
	chartH := height - legendH
	if chartH < 1 {
		chartH = 1
	}

	tMin, tMax, yMin, yMax, n := tc.ranges()
	if n == 0 {
		empty := make([]string, height)
		return strings.Join(empty, "\n")
	}

	// Pad the y range so extreme points do not sit on the border.
	if yMax == yMin {
		yMax = yMin + 1
	}
	pad := (yMax - yMin) * 0.05
	yMin -= pad
	yMax += pad

	dotsW := width * 2
	dotsH := chartH * 4
	tRange := tMax.Sub(tMin).Seconds()
	yRange := yMax - yMin

	grid := make([][]uint8, chartH)
	owner := make([][]int, chartH)
	for r := range grid {
		grid[r] = make([]uint8, width)
		owner[r] = make([]int, width)
		for c := range owner[r] {
			owner[r][c] = -1
		}
	}

	for si, s := range tc.Series {
		for _, p := range s.Points {
			dotX := 0
			if tRange > 0 {
				dotX = int(p.Time.Sub(tMin).Seconds() / tRange * float64(dotsW-1))
			}
			frac := (p.Value - yMin) / yRange
			dotY := int((1 - frac) * float64(dotsH-1))

			dotX = clamp(dotX, 0, dotsW-1)
			dotY = clamp(dotY, 0, dotsH-1)

			grid[dotY/4][dotX/2] |= brailleBit(dotX%2, dotY%4)
			owner[dotY/4][dotX/2] = si
		}
	}

	var lines []string
	if legendH > 0 {
		lines = append(lines, tc.legend(width))
	}
	for r := 0; r < chartH; r++ {
		var b strings.Builder
		for c := 0; c < width; c++ {
			ch := rune(0x2800 + int(grid[r][c]))
			if si := owner[r][c]; si >= 0 && grid[r][c] != 0 {
				b.WriteString(Color(tc.Series[si].Color))
				b.WriteRune(ch)
				b.WriteString(Reset())
			} else {
				b.WriteRune(ch)
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// legend renders "● name" entries, truncated to width cells.
func (tc *TrendChart) legend(width int) string {
	var b strings.Builder
	used := 0
	for i, s := range tc.Series {
		entry := "● " + s.Name
		sep := 0
		if i > 0 {
			sep = 2
		}
		if used+sep+len([]rune(entry)) > width {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(Color(s.Color))
		b.WriteString(entry)
		b.WriteString(Reset())
		used += sep + len([]rune(entry))
	}
	return b.String()
}

// ranges computes the time and value extents over all series points.
func (tc *TrendChart) ranges() (tMin, tMax time.Time, yMin, yMax float64, n int) {
	for _, s := range tc.Series {
		for _, p := range s.Points {
			if n == 0 {
				tMin, tMax = p.Time, p.Time
				yMin, yMax = p.Value, p.Value
			} else {
				if p.Time.Before(tMin) {
					tMin = p.Time
				}
				if p.Time.After(tMax) {
					tMax = p.Time
				}
				if p.Value < yMin {
					yMin = p.Value
				}
				if p.Value > yMax {
					yMax = p.Value
				}
			}
			n++
		}
	}
	return tMin, tMax, yMin, yMax, n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatTimeRange describes the chart's visible x extent for a caption.
func FormatTimeRange(tMin, tMax time.Time) string {
	if tMin.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s → %s", tMin.Format("15:04:05"), tMax.Format("15:04:05"))
}
