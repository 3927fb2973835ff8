package components

import (
	"strings"
	"testing"
	"time"
)

func TestColor(t *testing.T) {
	if got := Color("#664DFF"); got != "\x1b[38;2;102;77;255m" {
		t.Errorf("Color(#664DFF) = %q", got)
	}
	if got := Color("664DFF"); got != "\x1b[38;2;102;77;255m" {
		t.Errorf("Color without hash = %q", got)
	}
	for _, bad := range []string{"", "#fff", "#zzzzzz", "#1234567"} {
		if got := Color(bad); got != "" {
			t.Errorf("Color(%q) = %q, want empty", bad, got)
		}
	}
}

func TestBarChartRender(t *testing.T) {
	bc := &BarChart{Bars: []Bar{
		{Label: "climatechange", Value: 12, Color: "#664DFF"},
		{Label: "solar", Value: 6, Color: "#893BFF"},
		{Label: "wind", Value: 0, Color: "#3CC5E8"},
	}}
	out := bc.Render(40)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "climatechange") || !strings.Contains(lines[0], "12") {
		t.Errorf("first line = %q", lines[0])
	}

	// The largest bar draws roughly twice the blocks of the half-size one.
	big := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if big == 0 || half == 0 {
		t.Fatalf("bars missing: %d and %d blocks", big, half)
	}
	if half > big {
		t.Errorf("6-value bar (%d blocks) longer than 12-value bar (%d blocks)", half, big)
	}
	if strings.Count(lines[2], "█") != 0 {
		t.Errorf("zero-value bar should draw no blocks: %q", lines[2])
	}
}

func TestBarChartEdges(t *testing.T) {
	if out := (&BarChart{}).Render(40); out != "" {
		t.Errorf("empty chart = %q, want empty string", out)
	}
	bc := &BarChart{Bars: []Bar{{Label: "x", Value: 1}}}
	if out := bc.Render(4); out != "" {
		t.Errorf("too-narrow chart = %q, want empty string", out)
	}
}

func TestBarChartFractionalValues(t *testing.T) {
	bc := &BarChart{Bars: []Bar{{Label: "mood", Value: 0.25, Color: "#0BEBDD"}}}
	out := bc.Render(30)
	if !strings.Contains(out, "0.25") {
		t.Errorf("fractional value not shown: %q", out)
	}
}

func TestTrendChartRender(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tc := &TrendChart{
		ShowLegend: true,
		Series: []ChartSeries{
			{Name: "solar", Color: "#664DFF", Points: []ChartPoint{
				{Time: base, Value: 1},
				{Time: base.Add(2 * time.Second), Value: 3},
				{Time: base.Add(4 * time.Second), Value: 2},
			}},
			{Name: "wind", Color: "#893BFF", Points: []ChartPoint{
				{Time: base, Value: 5},
				{Time: base.Add(4 * time.Second), Value: 4},
			}},
		},
	}

	out := tc.Render(20, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	if !strings.Contains(lines[0], "solar") || !strings.Contains(lines[0], "wind") {
		t.Errorf("legend = %q", lines[0])
	}

	// Some braille cell beyond the blank base rune must be set.
	plotted := false
	for _, line := range lines[1:] {
		for _, r := range line {
			if r > 0x2800 && r <= 0x28FF {
				plotted = true
			}
		}
	}
	if !plotted {
		t.Error("no braille dots plotted")
	}
}

func TestTrendChartEmpty(t *testing.T) {
	tc := &TrendChart{}
	out := tc.Render(20, 4)
	if got := len(strings.Split(out, "\n")); got != 4 {
		t.Errorf("empty chart has %d lines, want 4", got)
	}
	if tc.Render(2, 1) != "" {
		t.Error("degenerate area should render nothing")
	}
}

func TestTrendChartSinglePoint(t *testing.T) {
	tc := &TrendChart{Series: []ChartSeries{{
		Name:   "solo",
		Color:  "#2C93E8",
		Points: []ChartPoint{{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Value: 7}},
	}}}
	out := tc.Render(10, 3)
	found := false
	for _, r := range out {
		if r > 0x2800 && r <= 0x28FF {
			found = true
		}
	}
	if !found {
		t.Error("single point should still plot one dot")
	}
}

func TestFormatTimeRange(t *testing.T) {
	a := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := a.Add(58 * time.Second)
	got := FormatTimeRange(a, b)
	if !strings.Contains(got, "12:00:00") || !strings.Contains(got, "12:00:58") {
		t.Errorf("FormatTimeRange = %q", got)
	}
	if FormatTimeRange(time.Time{}, time.Time{}) != "" {
		t.Error("zero range should format as empty")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("climatechange", 8); got != "climate…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("wind", 8); got != "wind" {
		t.Errorf("truncate short = %q", got)
	}
}
