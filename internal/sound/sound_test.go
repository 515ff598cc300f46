package sound

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fake(goos string) (*Player, *[]string) {
	played := &[]string{}
	p := New(true)
	p.goos = goos
	p.start = func(name string, args ...string) error {
		*played = append(*played, name+" "+args[0])
		return nil
	}
	return p, played
}

func TestPlay_Disabled(t *testing.T) {
	p, played := fake("linux")
	p.SetEnabled(false)

	assert.NoError(t, p.Play(CueSessionComplete))
	assert.Empty(t, *played)
	assert.False(t, p.IsEnabled())
}

func TestPlay_Platforms(t *testing.T) {
	tests := []struct {
		goos string
		cue  Cue
		want string
	}{
		{"linux", CueSessionComplete, "paplay /usr/share/sounds/freedesktop/stereo/complete.oga"},
		{"linux", CueValidationError, "paplay /usr/share/sounds/freedesktop/stereo/dialog-warning.oga"},
		{"darwin", CueStageComplete, "afplay /System/Library/Sounds/Glass.aiff"},
		{"darwin", CueSessionComplete, "afplay /System/Library/Sounds/Hero.aiff"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p, played := fake(tt.goos)

			assert.NoError(t, p.Play(tt.cue))
			assert.Equal(t, []string{tt.want}, *played)
		})
	}
}

func TestPlay_UnsupportedPlatform(t *testing.T) {
	p, played := fake("windows")

	assert.NoError(t, p.Play(CueStageComplete))
	assert.Empty(t, *played)
}
