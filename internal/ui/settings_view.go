package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aperture/internal/controller"
	"aperture/internal/settings"
)

type settingsModel struct {
	styles     Styles
	username   textinput.Model
	scriptURL  textinput.Model
	focusIndex int
	errMsg     string

	// initialURL is the URL loaded at startup, restored by ctrl+d.
	initialURL string
}

func newSettingsModel(styles Styles, s settings.UserSettings) settingsModel {
	username := textinput.New()
	username.Placeholder = "使用者名稱"
	username.CharLimit = 30
	username.Focus()

	scriptURL := textinput.New()
	scriptURL.Placeholder = "試算表指令碼網址"
	scriptURL.CharLimit = 300

	sm := settingsModel{
		styles:     styles,
		username:   username,
		scriptURL:  scriptURL,
		initialURL: s.ScriptURL,
	}
	sm.load(s)
	return sm
}

// load refreshes the inputs from the current record.
func (sm *settingsModel) load(s settings.UserSettings) {
	sm.username.SetValue(s.Username)
	sm.scriptURL.SetValue(s.ScriptURL)
	sm.errMsg = ""
	sm.setFocus(0)
}

func (sm *settingsModel) setFocus(i int) {
	sm.focusIndex = i
	if i == 0 {
		sm.username.Focus()
		sm.scriptURL.Blur()
	} else {
		sm.username.Blur()
		sm.scriptURL.Focus()
	}
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sm := &m.settingsView

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		// Leaving is only possible once a username exists; the
		// controller re-forces this screen otherwise.
		m.ctrl.SelectView(controller.ViewList)
		return m, m.maybeFetchCmd()
	case "tab", "down", "shift+tab", "up":
		sm.setFocus((sm.focusIndex + 1) % 2)
		return m, nil
	case "ctrl+d":
		sm.scriptURL.SetValue(sm.initialURL)
		return m, nil
	case "enter":
		return m.applySettings()
	}

	var cmd tea.Cmd
	if sm.focusIndex == 0 {
		sm.username, cmd = sm.username.Update(msg)
	} else {
		sm.scriptURL, cmd = sm.scriptURL.Update(msg)
	}
	return m, cmd
}

func (m Model) applySettings() (tea.Model, tea.Cmd) {
	sm := &m.settingsView

	next := settings.UserSettings{
		ScriptURL: strings.TrimSpace(sm.scriptURL.Value()),
		Username:  strings.TrimSpace(sm.username.Value()),
	}
	if next.ScriptURL == "" {
		next.ScriptURL = sm.initialURL
		sm.scriptURL.SetValue(sm.initialURL)
	}

	if err := m.ctrl.UpdateSettings(next); err != nil {
		sm.errMsg = "無法儲存設定: " + err.Error()
		return m, nil
	}
	sm.errMsg = ""
	m.status = "設定已儲存"
	if next.Configured() {
		m.ctrl.SelectView(controller.ViewList)
	}
	return m, m.maybeFetchCmd()
}

func (m Model) viewSettings() string {
	sm := m.settingsView
	s := m.styles

	sections := []string{s.Header.Render("設定")}
	if !m.ctrl.Settings().Configured() {
		sections = append(sections, s.Banner.Render("請先設定使用者名稱以開始記帳"))
	}

	sections = append(sections,
		m.settingsField("使用者名稱", sm.username, sm.focusIndex == 0),
		m.settingsField("指令碼網址", sm.scriptURL, sm.focusIndex == 1),
	)
	if sm.errMsg != "" {
		sections = append(sections, s.Error.Render(sm.errMsg))
	}
	sections = append(sections,
		s.Hint.Render("tab切換欄位  ctrl+d還原預設網址  enter儲存  esc返回"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) settingsField(label string, input textinput.Model, focused bool) string {
	s := m.styles
	rendered := s.Faint.Render(label)
	if focused {
		rendered = s.Selected.Render(label)
	}
	return rendered + "\n" + input.View()
}
