package confetti

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/theme"
)

// Particle represents a single confetti particle
type Particle struct {
	X, Y     float64
	VelX     float64
	VelY     float64
	Char     string
	Color    lipgloss.Color
	Lifetime int
}

// TickMsg triggers animation frame update
type TickMsg time.Time

const (
	frameInterval = 33 * time.Millisecond
	frames        = 60
	particleCount = 50
)

var confettiChars = []string{"*", "+", ".", "o", "x", "~", "^", "✦"}

// Model is the celebration shown when the documents are ready. It renders
// as a band of its own height above the results.
type Model struct {
	width     int
	height    int
	particles []Particle
	active    bool
	remaining int
	rng       *rand.Rand
}

// New creates a new confetti model
func New() Model {
	return Model{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded creates a confetti model with a fixed seed
func NewSeeded(seed int64) Model {
	return Model{rng: rand.New(rand.NewSource(seed))}
}

// Start triggers the animation in a band of the given size
func (m *Model) Start(width, height int) tea.Cmd {
	if width <= 0 || height <= 0 {
		return nil
	}
	m.width = width
	m.height = height
	m.active = true
	m.remaining = frames
	m.particles = m.generate(particleCount)
	return tick()
}

// Stop stops the animation
func (m *Model) Stop() {
	m.active = false
	m.particles = nil
}

// IsActive returns whether the animation is running
func (m Model) IsActive() bool {
	return m.active
}

// Height returns the band height while active, else 0
func (m Model) Height() int {
	if !m.active {
		return 0
	}
	return m.height
}

func (m Model) generate(count int) []Particle {
	t := theme.Current
	colors := []lipgloss.Color{t.Success, t.Primary, t.Secondary, t.Accent, t.Warning, t.Info}

	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = Particle{
			X:        float64(m.rng.Intn(m.width)),
			Y:        float64(m.rng.Intn(max(m.height/3, 1))),
			VelX:     (m.rng.Float64() - 0.5) * 2,
			VelY:     m.rng.Float64()*0.3 + 0.1,
			Char:     confettiChars[m.rng.Intn(len(confettiChars))],
			Color:    colors[m.rng.Intn(len(colors))],
			Lifetime: frames/2 + m.rng.Intn(frames/2),
		}
	}
	return particles
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update advances the animation by one frame
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); !ok || !m.active {
		return m, nil
	}

	m.remaining--
	if m.remaining <= 0 {
		m.Stop()
		return m, nil
	}

	alive := m.particles[:0]
	for _, p := range m.particles {
		p.X += p.VelX
		p.Y += p.VelY
		p.VelY += 0.02
		p.Lifetime--
		if p.Y < float64(m.height) && p.Lifetime > 0 {
			alive = append(alive, p)
		}
	}
	m.particles = alive
	if len(m.particles) == 0 {
		m.Stop()
		return m, nil
	}
	return m, tick()
}

// View renders the band
func (m Model) View() string {
	if !m.active {
		return ""
	}

	grid := make([][]string, m.height)
	for i := range grid {
		grid[i] = make([]string, m.width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	for _, p := range m.particles {
		x, y := int(p.X), int(p.Y)
		if x >= 0 && x < m.width && y >= 0 && y < m.height {
			grid[y][x] = lipgloss.NewStyle().Foreground(p.Color).Render(p.Char)
		}
	}

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
