// Package ui renders the four screens over bubbletea: the ledger
// (calendar/list), the entry keypad, the monthly breakdown, and
// settings. All state transitions go through the controller; the UI
// layer only translates key events and draws the derived view-model.
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aperture/internal/controller"
	"aperture/internal/core"
	"aperture/internal/gateway"
	"aperture/internal/log"
)

// Saver is the gateway's write side.
type Saver interface {
	SaveTransaction(ctx context.Context, endpoint string, tx core.Transaction) gateway.SaveResult
}

type (
	fetchResultMsg controller.FetchResult
	saveResultMsg  gateway.SaveResult
)

// Model is the root bubbletea model.
type Model struct {
	ctrl   *controller.Controller
	loader *controller.Loader
	saver  Saver
	logger *log.Logger
	styles Styles

	ledgerView   ledgerModel
	addView      addModel
	statsView    statsModel
	settingsView settingsModel

	width  int
	height int
	status string
}

func NewModel(ctrl *controller.Controller, loader *controller.Loader, saver Saver, logger *log.Logger) Model {
	styles := defaultStyles()
	return Model{
		ctrl:         ctrl,
		loader:       loader,
		saver:        saver,
		logger:       logger.WithComponent(log.ComponentUI),
		styles:       styles,
		ledgerView:   newLedgerModel(styles),
		addView:      newAddModel(styles),
		settingsView: newSettingsModel(styles, ctrl.Settings()),
		statsView:    newStatsModel(styles),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ledgerView.spinner.Tick, m.maybeFetchCmd())
}

// maybeFetchCmd asks the controller whether a fetch is due and, if so,
// runs it off the event loop.
func (m *Model) maybeFetchCmd() tea.Cmd {
	req := m.ctrl.MaybeFetch()
	if req == nil {
		return nil
	}
	loader := m.loader
	r := *req
	return func() tea.Msg {
		return fetchResultMsg(loader.Load(context.Background(), r))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case fetchResultMsg:
		m.ctrl.Apply(controller.FetchResult(msg))
		return m, m.maybeFetchCmd()

	case saveResultMsg:
		return m.handleSaveResult(gateway.SaveResult(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.ledgerView, cmd = m.ledgerView.update(msg)
	return m, cmd
}

func (m Model) handleSaveResult(res gateway.SaveResult) (tea.Model, tea.Cmd) {
	m.addView.submitting = false
	if !res.Success {
		m.addView.errMsg = "儲存失敗: " + res.Message
		return m, nil
	}
	if res.Confirmed {
		m.status = "已儲存"
	} else {
		m.status = "已送出 (未確認)"
	}
	m.addView.reset(m.ctrl.SelectedDate())
	m.ctrl.SaveSucceeded()
	return m, m.maybeFetchCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The add and settings screens own the keyboard while active:
	// free-text inputs swallow everything except their exit keys.
	switch m.ctrl.View() {
	case controller.ViewAdd:
		return m.updateAdd(msg)
	case controller.ViewSettings:
		return m.updateSettings(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "1":
		m.ctrl.SelectView(controller.ViewList)
		return m, m.maybeFetchCmd()
	case "2":
		m.ctrl.SelectView(controller.ViewStats)
		return m, m.maybeFetchCmd()
	case "3", "a":
		m.ctrl.SelectView(controller.ViewAdd)
		m.addView.reset(m.ctrl.SelectedDate())
		return m, nil
	case "4", "s":
		m.ctrl.SelectView(controller.ViewSettings)
		m.settingsView.load(m.ctrl.Settings())
		return m, nil
	case "r":
		m.ctrl.Retry()
		return m, m.maybeFetchCmd()
	}

	if m.ctrl.View() == controller.ViewList {
		return m.updateLedger(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	switch m.ctrl.View() {
	case controller.ViewList:
		body = m.viewLedger()
	case controller.ViewAdd:
		body = m.viewAdd()
	case controller.ViewStats:
		body = m.viewStats()
	case controller.ViewSettings:
		body = m.viewSettings()
	}

	sections := []string{body}
	if m.status != "" {
		sections = append(sections, m.styles.Hint.Render(m.status))
	}
	if m.ctrl.View() != controller.ViewAdd {
		sections = append(sections, m.tabBar())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) tabBar() string {
	tabs := []struct {
		view  controller.View
		label string
	}{
		{controller.ViewList, "1 帳本"},
		{controller.ViewStats, "2 分析"},
		{controller.ViewAdd, "3 記一筆"},
		{controller.ViewSettings, "4 設定"},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := m.styles.Tab
		if t.view == m.ctrl.View() {
			style = m.styles.TabActive
		}
		parts = append(parts, style.Render(t.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
