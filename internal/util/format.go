// Package util provides shared formatting helpers for the terminal and CLI
// output.
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// FormatDuration formats a duration for human-readable display.
// - Under 1 minute: "45s"
// - Under 1 hour: "5m 30s"
// - 1 hour or more: "1h 23m"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
}

// FormatSize formats a byte count, e.g. "4.2 kB"
func FormatSize(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatAgo formats a time relative to now, e.g. "3 minutes ago"
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

// Truncate shortens s to at most width terminal cells, counting CJK
// characters as two cells
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width terminal cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// ProgressBar renders a percentage as filled and empty segments
func ProgressBar(percent, width int) (filled, empty string) {
	if width <= 0 {
		return "", ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	n := percent * width / 100
	return strings.Repeat("█", n), strings.Repeat("░", width-n)
}
