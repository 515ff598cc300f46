package app

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robertguss/vibe-academy-go/internal/components/commandpalette"
	"github.com/robertguss/vibe-academy-go/internal/components/confetti"
	"github.com/robertguss/vibe-academy-go/internal/components/header"
	"github.com/robertguss/vibe-academy-go/internal/components/statusbar"
	"github.com/robertguss/vibe-academy-go/internal/config"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/notify"
	"github.com/robertguss/vibe-academy-go/internal/orchestrator"
	"github.com/robertguss/vibe-academy-go/internal/preset"
	"github.com/robertguss/vibe-academy-go/internal/sound"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/views/document"
	"github.com/robertguss/vibe-academy-go/internal/views/intro"
	"github.com/robertguss/vibe-academy-go/internal/views/results"
	"github.com/robertguss/vibe-academy-go/internal/views/wizard"
)

const (
	// eventBuffer bounds how far the orchestrator may run ahead of the UI
	eventBuffer = 256
	// confettiHeight is the height of the celebration band
	confettiHeight = 5
	persistTimeout = 2 * time.Second
)

// Model is the main application model
type Model struct {
	// Dimensions
	width  int
	height int
	ready  bool

	// Navigation
	activeView domain.View
	showHelp   bool

	// Configuration
	config *config.Config

	// Services
	orch     *orchestrator.Orchestrator
	presets  *preset.Store
	notifier *notify.Notifier
	player   *sound.Player

	// Orchestrator events reach Update through this channel, one listen
	// command at a time
	events      <-chan events.Event
	unsubscribe func()

	// Components
	header         header.Model
	statusbar      statusbar.Model
	confetti       confetti.Model
	commandPalette commandpalette.Model

	// Views
	intro    intro.Model
	wizard   wizard.Model
	results  results.Model
	document document.Model

	// Styles
	styles theme.Styles
}

// New creates the application model over an orchestrator whose session has
// already been restored. presets and notifier may be nil.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, presets *preset.Store, notifier *notify.Notifier) Model {
	if notifier == nil {
		notifier = notify.New(false)
	}
	ch, unsubscribe := subscribe(orch.Bus())

	m := Model{
		activeView:     domain.ViewIntro,
		config:         cfg,
		orch:           orch,
		presets:        presets,
		notifier:       notifier,
		player:         sound.New(false),
		events:         ch,
		unsubscribe:    unsubscribe,
		header:         header.New(),
		statusbar:      statusbar.New(),
		confetti:       confetti.New(),
		commandPalette: commandpalette.New(),
		intro:          intro.New(orch.Catalog().Intro()),
		wizard:         wizard.New(orch),
		results:        results.New(),
		document:       document.New(),
		styles:         theme.NewStyles(),
	}
	m.commandPalette.SetPresets(m.presetNames())

	if r, ok := orch.Result(); ok && orch.State() == domain.SessionComplete {
		m.results.SetResult(r)
		m.activeView = domain.ViewResults
	} else if orch.HasUnsavedProgress() {
		m.intro.SetResume(orch.Catalog().Resume(), orch.Stages())
	}
	m.syncChrome()
	return m
}

// subscribe bridges bus events into a buffered channel. The send never
// blocks: handlers run while orchestrator actions called from Update are
// still on the stack.
func subscribe(bus *events.Bus) (<-chan events.Event, func()) {
	ch := make(chan events.Event, eventBuffer)
	unsubscribe := bus.Subscribe(func(e events.Event) {
		select {
		case ch <- e:
		default:
			log.Printf("app: dropping %s event, UI is behind", e.Type())
		}
	})
	return ch, unsubscribe
}

// listen waits for the next orchestrator event
func listen(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return messages.EventMsg{Event: e}
	}
}

// SetSound replaces the sound player, which is silent by default
func (m *Model) SetSound(p *sound.Player) {
	if p != nil {
		m.player = p
	}
}

// playCmd plays a cue off the update loop
func (m Model) playCmd(cue sound.Cue) tea.Cmd {
	p := m.player
	return func() tea.Msg {
		if err := p.Play(cue); err != nil {
			log.Printf("app: sound failed: %v", err)
		}
		return nil
	}
}

// Close detaches the model from the orchestrator's events
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// ActiveView returns the view being shown
func (m Model) ActiveView() domain.View {
	return m.activeView
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listen(m.events),
		tea.SetWindowTitle(header.Title),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if next, cmd, handled := m.handleCommandPaletteMsg(msg); handled {
		return next, cmd
	}

	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		next, cmd, handled := m.handleKeyMsg(msg)
		if handled {
			return next, cmd
		}
		m = next

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case messages.EventMsg:
		next, cmd := m.handleEvent(msg.Event)
		return next, tea.Batch(cmd, listen(m.events))

	case confetti.TickMsg:
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Update(msg)
		return m, cmd

	default:
		next, cmd, handled := m.handleMessage(msg)
		if handled {
			return next, cmd
		}
		m = next
	}

	// Route to active view
	switch m.activeView {
	case domain.ViewIntro:
		var cmd tea.Cmd
		m.intro, cmd = m.intro.Update(msg)
		cmds = append(cmds, cmd)

	case domain.ViewWizard:
		var cmd tea.Cmd
		m.wizard, cmd = m.wizard.Update(msg)
		cmds = append(cmds, cmd)
		m.syncChrome()

	case domain.ViewResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		cmds = append(cmds, cmd)

	case domain.ViewDocument:
		var cmd tea.Cmd
		m.document, cmd = m.document.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	m.header.SetWidth(width)
	m.statusbar.SetWidth(width)
	m.commandPalette.SetSize(width, height)

	contentHeight := m.contentHeight()
	m.intro.SetSize(width, contentHeight)
	m.wizard.SetSize(width, contentHeight)
	m.results.SetSize(width, contentHeight-m.confetti.Height())
	m.document.SetSize(width, contentHeight)
}

// contentHeight is the height left between header and status bar
func (m Model) contentHeight() int {
	return max(m.height-4, 1)
}

// syncChrome copies navigation and progress state into header and status bar
func (m *Model) syncChrome() {
	m.header.SetStages(m.orch.Stages())
	step := m.wizard.Step()
	m.statusbar.SetProgress(step.StageName, int(step.Progress.Percentage))
	m.statusbar.SetSession(m.orch.SessionID())
}

// persist saves the session before the program exits
func (m Model) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.orch.Persist(ctx); err != nil {
		log.Printf("app: failed to save session: %v", err)
	}
}

func (m Model) presetNames() []string {
	if m.presets == nil {
		return nil
	}
	var names []string
	for _, p := range m.presets.List() {
		names = append(names, p.Name)
	}
	return names
}

// View renders the application
func (m Model) View() string {
	if !m.ready {
		return "\n  正在啟動 Vibe Coding Academy..."
	}
	if m.commandPalette.IsActive() {
		return m.commandPalette.View()
	}

	var content string
	switch {
	case m.showHelp:
		content = m.renderHelp()
	case m.activeView == domain.ViewIntro:
		content = m.intro.View()
	case m.activeView == domain.ViewWizard:
		content = m.wizard.View()
	case m.activeView == domain.ViewResults:
		content = m.results.View()
		if m.confetti.IsActive() {
			content = lipgloss.JoinVertical(lipgloss.Left, m.confetti.View(), content)
		}
	case m.activeView == domain.ViewDocument:
		content = m.document.View()
	}

	content = m.styles.Content.
		Width(m.width).
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		content,
		m.statusbar.View(),
	)
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"↑/↓", "移動選擇"},
		{"Space", "選擇 / 切換 / 輸入"},
		{"Enter", "確認並繼續"},
		{"b", "上一步"},
		{"[ / ]", "上一階段 / 下一階段"},
		{"1-5", "跳到已開放的階段"},
		{"w", "儲存生成的文件"},
		{"Ctrl+P", "指令面板"},
		{"?", "顯示 / 隱藏說明"},
		{"Ctrl+C", "儲存進度並離開"},
	}

	lines := []string{m.styles.Title.Render("鍵盤快捷鍵"), ""}
	for _, r := range rows {
		lines = append(lines, m.styles.Shortcut.Width(10).Render(r[0])+" "+r[1])
	}
	return m.styles.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
