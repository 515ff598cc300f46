package app

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/robertguss/vibe-academy-go/internal/components/commandpalette"
	"github.com/robertguss/vibe-academy-go/internal/domain"
	"github.com/robertguss/vibe-academy-go/internal/events"
	"github.com/robertguss/vibe-academy-go/internal/generator"
	"github.com/robertguss/vibe-academy-go/internal/messages"
	"github.com/robertguss/vibe-academy-go/internal/preset"
	"github.com/robertguss/vibe-academy-go/internal/sound"
	"github.com/robertguss/vibe-academy-go/internal/theme"
	"github.com/robertguss/vibe-academy-go/internal/watcher"
)

// handleCommandPaletteMsg handles keys while the command palette is open.
// Returns (model, cmd, handled) where handled=true means the message was fully processed
func (m Model) handleCommandPaletteMsg(msg tea.Msg) (Model, tea.Cmd, bool) {
	if !m.commandPalette.IsActive() {
		return m, nil, false
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			return m.quit()
		}
		var cmd tea.Cmd
		m.commandPalette, cmd = m.commandPalette.Update(key)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) quit() (Model, tea.Cmd, bool) {
	m.persist()
	return m, tea.Quit, true
}

// handleKeyMsg handles keyboard input messages
// Returns (model, cmd, handled)
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	// an open text entry gets every other key
	if m.activeView == domain.ViewWizard && m.wizard.Editing() {
		return m, nil, false
	}

	switch key {
	case "ctrl+p":
		m.commandPalette.SetPresets(m.presetNames())
		m.commandPalette.SetSize(m.width, m.height)
		m.commandPalette.Open()
		return m, nil, true
	case "?":
		m.showHelp = !m.showHelp
		return m, nil, true
	}

	if m.showHelp {
		if key == "esc" {
			m.showHelp = false
		}
		return m, nil, true
	}

	switch m.activeView {
	case domain.ViewWizard, domain.ViewResults:
		return m.handleStageKeys(key)
	case domain.ViewDocument:
		switch key {
		case "esc", "q":
			m.activeView = domain.ViewResults
			return m, nil, true
		case "w":
			return m, writeCmd(), true
		}
	}
	return m, nil, false
}

// handleStageKeys handles stage navigation shared by wizard and results
func (m Model) handleStageKeys(key string) (Model, tea.Cmd, bool) {
	switch key {
	case "1", "2", "3", "4", "5":
		m.goToStage(int(key[0] - '1'))
		return m, nil, true
	case "[":
		if m.activeView == domain.ViewWizard {
			m.orch.Retreat()
			m.afterNavigation()
		}
		return m, nil, true
	case "]":
		if m.activeView == domain.ViewWizard {
			next := m.orch.ActiveStageIndex() + 1
			if !m.orch.CanVisit(next) {
				m.statusbar.SetError("請先完成目前的階段")
				return m, nil, true
			}
			m.orch.Advance()
			m.afterNavigation()
		}
		return m, nil, true
	}
	return m, nil, false
}

func writeCmd() tea.Cmd {
	return func() tea.Msg { return messages.WriteDocumentsMsg{} }
}

// goToStage opens stage i in the wizard if it has been reached
func (m *Model) goToStage(i int) {
	if !m.orch.CanVisit(i) {
		m.statusbar.SetError("請先完成前面的階段")
		return
	}
	m.orch.GoToStage(i)
	m.activeView = domain.ViewWizard
	m.afterNavigation()
}

func (m *Model) afterNavigation() {
	m.statusbar.ClearMessage()
	m.wizard.Refresh()
	m.syncChrome()
}

// handleEvent reacts to an orchestrator event. State is re-read from the
// orchestrator rather than taken from the event, which may be stale.
func (m Model) handleEvent(e events.Event) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch e := e.(type) {
	case events.ValidationError:
		m.statusbar.SetError(e.Message)
		cmd = m.playCmd(sound.CueValidationError)

	case events.CollectionComplete:
		m.statusbar.SetMessage("✓ " + e.Stage.DisplayName() + " 完成")
		cmd = m.playCmd(sound.CueStageComplete)

	case events.AdvisoryWarning:
		m.wizard.SetWarnings(e.Messages)

	case events.SessionComplete:
		cmd = m.completeSession()
	}

	m.wizard.Refresh()
	m.syncChrome()
	return m, cmd
}

// completeSession shows the results with a celebration
func (m *Model) completeSession() tea.Cmd {
	r, ok := m.orch.Result()
	if !ok {
		return nil
	}
	m.results.SetResult(r)
	m.activeView = domain.ViewResults
	m.statusbar.SetMessage(fmt.Sprintf("已生成 %d 份文件", len(r.Documents)))

	name := ""
	if r.Requirement != nil && r.Requirement.ProjectVision != nil {
		name = r.Requirement.ProjectVision.TypeName
	}
	n, count := m.notifier, len(r.Documents)
	notifyCmd := func() tea.Msg {
		if err := n.NotifySessionComplete(name, count); err != nil {
			log.Printf("app: notification failed: %v", err)
		}
		return nil
	}

	startCmd := m.confetti.Start(m.width, confettiHeight)
	m.results.SetSize(m.width, m.contentHeight()-m.confetti.Height())
	return tea.Batch(startCmd, notifyCmd, m.playCmd(sound.CueSessionComplete))
}

// handleMessage handles application messages
// Returns (model, cmd, handled)
func (m Model) handleMessage(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case commandpalette.SelectCommandMsg:
		inner := msg.Msg
		return m, func() tea.Msg { return inner }, true

	case commandpalette.CloseMsg:
		return m, nil, true

	case messages.ResumeMsg:
		if !msg.Resume {
			if err := m.orch.Reset(context.Background()); err != nil {
				m.statusbar.SetError(fmt.Sprintf("無法重設進度: %v", err))
			}
		}
		m.orch.Start()
		m.activeView = domain.ViewWizard
		m.afterNavigation()
		return m, nil, true

	case messages.GoToStageMsg:
		m.goToStage(msg.Index)
		return m, nil, true

	case messages.ResetSessionMsg:
		if err := m.orch.Reset(context.Background()); err != nil {
			m.statusbar.SetError(fmt.Sprintf("無法重設進度: %v", err))
			return m, nil, true
		}
		m.orch.Start()
		m.results.SetResult(nil)
		m.confetti.Stop()
		m.activeView = domain.ViewWizard
		m.afterNavigation()
		m.statusbar.SetMessage("已重新開始")
		return m, nil, true

	case messages.NavigateMsg:
		if msg.View == domain.ViewResults || msg.View == domain.ViewDocument {
			if _, ok := m.orch.Result(); !ok {
				m.statusbar.SetError("尚未完成需求收集")
				return m, nil, true
			}
		}
		m.activeView = msg.View
		return m, nil, true

	case messages.ViewDocumentMsg:
		r, ok := m.orch.Result()
		if !ok || msg.Index < 0 || msg.Index >= len(r.Documents) {
			return m, nil, true
		}
		m.document.SetDocument(r.Documents[msg.Index])
		m.activeView = domain.ViewDocument
		return m, nil, true

	case messages.WriteDocumentsMsg:
		cmd := m.writeDocuments()
		return m, cmd, true

	case messages.DocumentsWrittenMsg:
		if msg.Error != nil {
			m.statusbar.SetError(fmt.Sprintf("儲存失敗: %v", msg.Error))
			return m, nil, true
		}
		m.results.SetWritten(msg.Dir, msg.Paths)
		m.statusbar.SetMessage(fmt.Sprintf("已儲存 %d 份文件到 %s", len(msg.Paths), msg.Dir))
		n := m.notifier
		return m, func() tea.Msg {
			if err := n.NotifyDocumentsWritten(msg.Dir, len(msg.Paths)); err != nil {
				log.Printf("app: notification failed: %v", err)
			}
			return nil
		}, true

	case messages.ThemeChangeMsg:
		if err := m.applyTheme(msg.Theme); err != nil {
			m.statusbar.SetError(err.Error())
			return m, nil, true
		}
		m.statusbar.SetMessage("佈景主題已切換為 " + msg.Theme)
		return m, nil, true

	case messages.ApplyPresetMsg:
		m.applyPreset(msg.Name)
		return m, nil, true

	case messages.SavePresetMsg:
		return m, m.savePreset(msg.Name), true

	case messages.PresetSavedMsg:
		if msg.Error != nil {
			m.statusbar.SetError(fmt.Sprintf("無法儲存預設組合: %v", msg.Error))
			return m, nil, true
		}
		m.commandPalette.SetPresets(m.presetNames())
		m.statusbar.SetMessage("已儲存預設組合 " + msg.Name)
		return m, nil, true

	case watcher.RefreshMsg:
		t, err := theme.LoadThemeFromYAML(msg.Path)
		if err != nil {
			m.statusbar.SetError(fmt.Sprintf("佈景主題載入失敗: %v", err))
			return m, nil, true
		}
		theme.Current = t
		m.refreshAllStyles()
		m.statusbar.SetMessage("佈景主題已重新載入")
		return m, nil, true

	case watcher.ErrorMsg:
		m.statusbar.SetError(fmt.Sprintf("檔案監看錯誤: %v", msg.Error))
		return m, nil, true
	}

	return m, nil, false
}

// writeDocuments saves the generated documents to the output directory
func (m *Model) writeDocuments() tea.Cmd {
	r, ok := m.orch.Result()
	if !ok {
		m.statusbar.SetError("尚未完成需求收集")
		return nil
	}
	dir := m.config.OutputDir
	docs := r.Documents
	return func() tea.Msg {
		paths, err := generator.WriteFiles(dir, docs)
		return messages.DocumentsWrittenMsg{Dir: dir, Paths: paths, Error: err}
	}
}

// applyTheme switches to a built-in theme or a custom theme file
func (m *Model) applyTheme(name string) error {
	t, err := theme.Resolve(name, m.config.CustomThemePath(name))
	if err != nil {
		return fmt.Errorf("無法載入佈景主題 %s: %w", name, err)
	}
	theme.Current = t
	m.config.Theme = name
	m.refreshAllStyles()
	return nil
}

func (m *Model) refreshAllStyles() {
	m.styles = theme.NewStyles()
	m.intro.RefreshStyles()
	m.wizard.RefreshStyles()
	m.results.RefreshStyles()
	m.document.RefreshStyles()
}

func (m *Model) applyPreset(name string) {
	if m.presets == nil {
		return
	}
	p, ok := m.presets.Get(name)
	if !ok {
		m.statusbar.SetError("找不到預設組合 " + name)
		return
	}
	m.orch.Apply(p.Answers)
	m.afterNavigation()
	m.statusbar.SetMessage(fmt.Sprintf("已套用預設組合 %s（%d 個階段）", p.Name, len(p.Stages())))
}

func (m Model) savePreset(name string) tea.Cmd {
	if m.presets == nil {
		return nil
	}
	store, answers := m.presets, m.orch.CollectedData()
	return func() tea.Msg {
		if err := preset.ValidateName(name); err != nil {
			return messages.PresetSavedMsg{Name: name, Error: err}
		}
		err := store.Save(preset.FromAnswers(name, "", answers))
		return messages.PresetSavedMsg{Name: name, Error: err}
	}
}
