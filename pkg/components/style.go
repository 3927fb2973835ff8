// Package components renders the dashboard's chart primitives: a braille
// multi-series trend chart and a horizontal bar chart. These are pure
// string builders over engine output; no aggregation logic lives here.
package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Color produces an ANSI true-color foreground escape sequence from a
// hex color like "#664DFF". Malformed or empty input yields "".
func Color(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ""
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Reset returns the ANSI reset sequence.
func Reset() string {
	return "\x1b[0m"
}
