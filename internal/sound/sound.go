// Package sound plays short system sounds for wizard milestones.
package sound

import (
	"os/exec"
	"runtime"
)

// Cue is a wizard moment that can have a sound
type Cue int

const (
	CueStageComplete Cue = iota
	CueValidationError
	CueSessionComplete
)

// Player plays cues through the platform's sound command
type Player struct {
	enabled bool
	goos    string
	start   func(name string, args ...string) error
}

// New creates a new sound player
func New(enabled bool) *Player {
	return &Player{enabled: enabled, goos: runtime.GOOS, start: startCommand}
}

// startCommand launches the player without waiting for playback to finish
func startCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// SetEnabled enables or disables sound
func (p *Player) SetEnabled(enabled bool) {
	p.enabled = enabled
}

// IsEnabled returns whether sound is enabled
func (p *Player) IsEnabled() bool {
	return p.enabled
}

// Play plays the sound for a cue. Unsupported platforms are a no-op.
func (p *Player) Play(cue Cue) error {
	if !p.enabled {
		return nil
	}

	name, path := p.command(cue)
	if name == "" {
		return nil
	}
	return p.start(name, path)
}

func (p *Player) command(cue Cue) (string, string) {
	switch p.goos {
	case "darwin":
		return "afplay", macOSSound(cue)
	case "linux":
		return "paplay", linuxSound(cue)
	default:
		return "", ""
	}
}

func macOSSound(cue Cue) string {
	const dir = "/System/Library/Sounds/"

	switch cue {
	case CueStageComplete:
		return dir + "Glass.aiff"
	case CueValidationError:
		return dir + "Basso.aiff"
	case CueSessionComplete:
		return dir + "Hero.aiff"
	default:
		return dir + "Pop.aiff"
	}
}

func linuxSound(cue Cue) string {
	const dir = "/usr/share/sounds/freedesktop/stereo/"

	switch cue {
	case CueStageComplete:
		return dir + "message.oga"
	case CueValidationError:
		return dir + "dialog-warning.oga"
	case CueSessionComplete:
		return dir + "complete.oga"
	default:
		return dir + "message.oga"
	}
}
