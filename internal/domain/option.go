package domain

import "strings"

// SelectionMode describes how a step records values
type SelectionMode string

const (
	// ModeSingle overwrites a scalar field
	ModeSingle SelectionMode = "single"
	// ModeMultiple toggles membership in a list field
	ModeMultiple SelectionMode = "multiple"
	// ModeText toggles free-text entries, addressed as "field=text"
	ModeText SelectionMode = "text"
	// ModeKeyed sets one entry of a map or scalar, addressed as "key=value"
	ModeKeyed SelectionMode = "keyed"
	// ModeDisplay shows cards that carry no answer
	ModeDisplay SelectionMode = "display"
)

// IsMulti reports whether a UI should treat selections in this mode as toggles
func (m SelectionMode) IsMulti() bool {
	return m == ModeMultiple || m == ModeText
}

// Option is one selectable card inside a step
type Option struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Icon        string            `json:"icon,omitempty" yaml:"icon"`
	Category    string            `json:"category" yaml:"category"`
	Value       string            `json:"value" yaml:"value"`
	Weight      float64           `json:"weight,omitempty" yaml:"weight"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata"`
	// Input marks a card that collects free text instead of a fixed value
	Input bool `json:"input,omitempty" yaml:"input"`
}

// SplitKeyed splits a "key=value" selection. ok is false when there is no '='.
func SplitKeyed(v string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(v, "=")
	if !ok {
		return "", v, false
	}
	return key, value, true
}

// Mood tags the tone of a guide dialogue
type Mood string

const (
	MoodDefault      Mood = "default"
	MoodExcited      Mood = "excited"
	MoodThinking     Mood = "thinking"
	MoodFocused      Mood = "focused"
	MoodProfessional Mood = "professional"
	MoodHelpful      Mood = "helpful"
)

// Dialogue is the guide text shown above a step's cards
type Dialogue struct {
	Title         string `json:"title" yaml:"title"`
	Body          string `json:"body" yaml:"body"`
	Mood          Mood   `json:"mood" yaml:"mood"`
	PrimaryAction string `json:"primaryAction" yaml:"action"`
}

// Progress reports a collector's position within its stage
type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// NewProgress builds progress for a zero-based step index
func NewProgress(index, total int) Progress {
	p := Progress{Current: index + 1, Total: total}
	if total > 0 {
		p.Percentage = float64(index+1) / float64(total) * 100
	}
	return p
}
