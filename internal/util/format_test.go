package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0s"},
		{"30 seconds", 30 * time.Second, "30s"},
		{"1 minute", time.Minute, "1m 00s"},
		{"10 minutes 5 seconds", 10*time.Minute + 5*time.Second, "10m 05s"},
		{"1 hour", time.Hour, "1h 00m"},
		{"1 hour 23 minutes", 83 * time.Minute, "1h 23m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(-1))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "4.2 kB", FormatSize(4200))
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "-", FormatAgo(time.Time{}))
	assert.Equal(t, "3 minutes ago", FormatAgo(time.Now().Add(-3*time.Minute)))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "hello", 10, "hello"},
		{"ascii", "hello world", 6, "hello…"},
		{"cjk counts double", "作品集網站", 5, "作品…"},
		{"zero width", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.width))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "作品  ", PadRight("作品", 6))
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		percent    int
		width      int
		wantFilled string
		wantEmpty  string
	}{
		{0, 4, "", "░░░░"},
		{50, 4, "██", "░░"},
		{100, 4, "████", ""},
		{150, 2, "██", ""},
		{-10, 2, "", "░░"},
		{50, 0, "", ""},
	}
	for _, tt := range tests {
		filled, empty := ProgressBar(tt.percent, tt.width)
		assert.Equal(t, tt.wantFilled, filled)
		assert.Equal(t, tt.wantEmpty, empty)
	}
}
