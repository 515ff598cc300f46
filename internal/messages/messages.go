package messages

import (
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
)

// Navigation messages
type NavigateMsg struct {
	View domain.View
}

// ========== Wizard Messages ==========

// EventMsg carries an orchestrator event into the Bubble Tea loop
type EventMsg struct {
	Event events.Event
}

// GoToStageMsg requests a jump to a stage by index
type GoToStageMsg struct {
	Index int
}

// ResetSessionMsg discards the current answers and starts over
type ResetSessionMsg struct{}

// ResumeMsg chooses between the saved session and a fresh one on the
// welcome screen
type ResumeMsg struct {
	Resume bool
}

// ========== Results Messages ==========

// ViewDocumentMsg opens one generated document
type ViewDocumentMsg struct {
	Index int
}

// WriteDocumentsMsg requests that the generated documents be saved
type WriteDocumentsMsg struct{}

// DocumentsWrittenMsg reports the outcome of writing documents to disk
type DocumentsWrittenMsg struct {
	Dir   string
	Paths []string
	Error error
}

// ========== Settings Messages ==========

// ThemeChangeMsg requests a theme change
type ThemeChangeMsg struct {
	Theme string
}

// ApplyPresetMsg loads a saved preset into the session
type ApplyPresetMsg struct {
	Name string
}

// SavePresetMsg stores the current answers as a preset
type SavePresetMsg struct {
	Name string
}

// PresetSavedMsg reports the outcome of saving a preset
type PresetSavedMsg struct {
	Name  string
	Error error
}
