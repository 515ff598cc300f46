package theme

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette is a theme as hex strings, the form used for built-in themes and
// custom theme files
type Palette struct {
	Name string `yaml:"name"`

	// Base colors
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Subtle     string `yaml:"subtle"`
	Highlight  string `yaml:"highlight"`

	// Status colors
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`

	// Accent colors
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`

	// UI element colors
	Border    string `yaml:"border"`
	Selection string `yaml:"selection"`
	StatusBar string `yaml:"status_bar"`
	HeaderBg  string `yaml:"header_bg"`
}

// Theme defines the color palette for the application
type Theme struct {
	Name string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Border    lipgloss.Color
	Selection lipgloss.Color
	StatusBar lipgloss.Color
	HeaderBg  lipgloss.Color
}

var builtins = map[string]Palette{
	"catppuccin": {
		Name:       "Catppuccin Mocha",
		Background: "#1e1e2e", Foreground: "#cdd6f4", Subtle: "#6c7086", Highlight: "#f5e0dc",
		Success: "#a6e3a1", Warning: "#f9e2af", Error: "#f38ba8", Info: "#89b4fa",
		Primary: "#cba6f7", Secondary: "#f5c2e7", Accent: "#94e2d5",
		Border: "#313244", Selection: "#45475a", StatusBar: "#181825", HeaderBg: "#181825",
	},
	"dracula": {
		Name:       "Dracula",
		Background: "#282a36", Foreground: "#f8f8f2", Subtle: "#6272a4", Highlight: "#f1fa8c",
		Success: "#50fa7b", Warning: "#ffb86c", Error: "#ff5555", Info: "#8be9fd",
		Primary: "#bd93f9", Secondary: "#ff79c6", Accent: "#8be9fd",
		Border: "#44475a", Selection: "#44475a", StatusBar: "#21222c", HeaderBg: "#21222c",
	},
	"nord": {
		Name:       "Nord",
		Background: "#2e3440", Foreground: "#eceff4", Subtle: "#4c566a", Highlight: "#ebcb8b",
		Success: "#a3be8c", Warning: "#ebcb8b", Error: "#bf616a", Info: "#81a1c1",
		Primary: "#88c0d0", Secondary: "#b48ead", Accent: "#8fbcbb",
		Border: "#3b4252", Selection: "#434c5e", StatusBar: "#242933", HeaderBg: "#242933",
	},
}

// DefaultName is the theme used when none is configured
const DefaultName = "catppuccin"

// Current is the active theme. The TUI reads it on every render, so only
// the UI goroutine should assign it.
var Current = mustBuiltin(DefaultName)

func mustBuiltin(name string) Theme {
	t, _ := Lookup(name)
	return t
}

// AvailableThemes returns the sorted built-in theme names
func AvailableThemes() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a built-in theme by name
func Lookup(name string) (Theme, bool) {
	p, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Theme{}, false
	}
	return p.Theme(), true
}

// SetTheme sets the current theme by name, falling back to the default for
// unknown names
func SetTheme(name string) {
	if t, ok := Lookup(name); ok {
		Current = t
		return
	}
	Current = mustBuiltin(DefaultName)
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme converts the palette. Empty colors are taken from the default theme.
func (p Palette) Theme() Theme {
	base := builtins[DefaultName]
	pick := func(v, fallback string) lipgloss.Color {
		if v == "" {
			return lipgloss.Color(fallback)
		}
		return lipgloss.Color(v)
	}
	name := p.Name
	if name == "" {
		name = "Custom"
	}
	return Theme{
		Name:       name,
		Background: pick(p.Background, base.Background),
		Foreground: pick(p.Foreground, base.Foreground),
		Subtle:     pick(p.Subtle, base.Subtle),
		Highlight:  pick(p.Highlight, base.Highlight),
		Success:    pick(p.Success, base.Success),
		Warning:    pick(p.Warning, base.Warning),
		Error:      pick(p.Error, base.Error),
		Info:       pick(p.Info, base.Info),
		Primary:    pick(p.Primary, base.Primary),
		Secondary:  pick(p.Secondary, base.Secondary),
		Accent:     pick(p.Accent, base.Accent),
		Border:     pick(p.Border, base.Border),
		Selection:  pick(p.Selection, base.Selection),
		StatusBar:  pick(p.StatusBar, base.StatusBar),
		HeaderBg:   pick(p.HeaderBg, base.HeaderBg),
	}
}

// Validate rejects colors that are set but not #rgb or #rrggbb
func (p Palette) Validate() error {
	colors := map[string]string{
		"background": p.Background, "foreground": p.Foreground, "subtle": p.Subtle,
		"highlight": p.Highlight, "success": p.Success, "warning": p.Warning,
		"error": p.Error, "info": p.Info, "primary": p.Primary,
		"secondary": p.Secondary, "accent": p.Accent, "border": p.Border,
		"selection": p.Selection, "status_bar": p.StatusBar, "header_bg": p.HeaderBg,
	}
	for field, v := range colors {
		if v != "" && !hexColor.MatchString(v) {
			return fmt.Errorf("invalid color %q for %s", v, field)
		}
	}
	return nil
}

// LoadThemeFromYAML reads a custom theme file
func LoadThemeFromYAML(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme: %w", err)
	}

	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Theme{}, err
	}
	return p.Theme(), nil
}

// Resolve returns the named built-in theme, or the custom theme file at
// customPath when the name is not built in
func Resolve(name, customPath string) (Theme, error) {
	if t, ok := Lookup(name); ok {
		return t, nil
	}
	if customPath == "" {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	return LoadThemeFromYAML(customPath)
}

// Styles contains pre-built lipgloss styles using the current theme
type Styles struct {
	// Base styles
	App       lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Content   lipgloss.Style

	// Text styles
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Highlight lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Stage navigation
	StageDone   lipgloss.Style
	StageActive lipgloss.Style
	StageOpen   lipgloss.Style
	StageLocked lipgloss.Style
	Shortcut    lipgloss.Style

	// Option cards
	Card         lipgloss.Style
	CardFocused  lipgloss.Style
	CardSelected lipgloss.Style

	// Mascot dialogue
	Dialogue lipgloss.Style
	Mood     lipgloss.Style

	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style

	BorderedBox lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() Styles {
	t := Current

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		Header: lipgloss.NewStyle().
			Background(t.HeaderBg).
			Foreground(t.Foreground).
			Padding(0, 2).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(t.StatusBar).
			Foreground(t.Subtle).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title:     lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Subtitle:  lipgloss.NewStyle().Foreground(t.Secondary),
		Muted:     lipgloss.NewStyle().Foreground(t.Subtle),
		Bold:      lipgloss.NewStyle().Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),

		Success: lipgloss.NewStyle().Foreground(t.Success),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Info:    lipgloss.NewStyle().Foreground(t.Info),

		StageDone: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),
		StageActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),
		StageOpen: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),
		StageLocked: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),
		Shortcut: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Card:         card,
		CardFocused:  card.BorderForeground(t.Primary),
		CardSelected: card.BorderForeground(t.Success).Background(t.Selection),

		Dialogue: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Secondary).
			Padding(0, 2),
		Mood: lipgloss.NewStyle().Foreground(t.Accent).Italic(true),

		ProgressFull:  lipgloss.NewStyle().Foreground(t.Primary),
		ProgressEmpty: lipgloss.NewStyle().Foreground(t.Border),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
	}
}
