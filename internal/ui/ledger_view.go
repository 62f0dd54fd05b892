package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aperture/internal/core"
	"aperture/internal/ledger"
)

var shortWeekdays = []string{"日", "一", "二", "三", "四", "五", "六"}

type ledgerModel struct {
	styles  Styles
	spinner spinner.Model
}

func newLedgerModel(styles Styles) ledgerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.HeaderAccent
	return ledgerModel{styles: styles, spinner: sp}
}

func (lm ledgerModel) update(msg tea.Msg) (ledgerModel, tea.Cmd) {
	var cmd tea.Cmd
	lm.spinner, cmd = lm.spinner.Update(msg)
	return lm, cmd
}

func (m Model) updateLedger(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "[", "h":
		m.ctrl.PrevMonth()
		return m, m.maybeFetchCmd()
	case "]", "l":
		m.ctrl.NextMonth()
		return m, m.maybeFetchCmd()
	case "v", "tab":
		m.ctrl.ToggleMode()
		return m, nil
	case "left":
		return m.moveSelected(-1), nil
	case "right":
		return m.moveSelected(1), nil
	case "up":
		return m.moveSelected(-7), nil
	case "down":
		return m.moveSelected(7), nil
	case "t":
		m.ctrl.SelectDate(core.NewDate(m.ctrl.Now()))
		return m, nil
	}
	return m, nil
}

// moveSelected shifts the selected-date cursor by days. Movement is
// free: stepping outside the displayed month is allowed, as tapping an
// out-month cell is.
func (m Model) moveSelected(days int) Model {
	t, err := m.ctrl.SelectedDate().Time()
	if err != nil {
		return m
	}
	m.ctrl.SelectDate(core.NewDate(t.AddDate(0, 0, days)))
	return m
}

func (m Model) viewLedger() string {
	vm := m.ctrl.ViewModel()
	s := m.styles

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Faint.Render("[ ◀ "),
		s.Header.Render(ledger.MonthLabel(vm.Month)),
		s.Faint.Render(" ▶ ]"),
		"  ",
		m.modeToggle(),
	)

	sections := []string{header}
	if m.ctrl.Mode() == ledger.ModeCalendar {
		sections = append(sections, m.calendarGrid(vm))
	}
	sections = append(sections, m.summaryBar(vm.Summary))

	switch {
	case m.ctrl.Loading():
		sections = append(sections, m.ledgerView.spinner.View()+" "+s.Faint.Render("載入中…"))
	case m.ctrl.ErrorMessage() != "" && !m.isStale():
		sections = append(sections,
			s.Error.Render("無法載入資料: "+m.ctrl.ErrorMessage()),
			s.Hint.Render("按 r 重試"))
	default:
		if stale, fetchedAt := m.ctrl.Stale(); stale {
			sections = append(sections,
				s.Hint.Render(fmt.Sprintf("離線資料 (%s 取得) — 按 r 重試", fetchedAt.Format("01-02 15:04"))))
		}
		sections = append(sections, m.transactionGroups(vm))
	}

	sections = append(sections, s.Hint.Render("[ ]月份  ←→↑↓選日  v切換  t今天  r重新整理  q離開"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) isStale() bool {
	stale, _ := m.ctrl.Stale()
	return stale
}

func (m Model) modeToggle() string {
	s := m.styles
	cal, list := s.Faint.Render("行事曆"), s.Faint.Render("清單")
	if m.ctrl.Mode() == ledger.ModeCalendar {
		cal = s.Selected.Render("行事曆")
	} else {
		list = s.Selected.Render("清單")
	}
	return cal + " / " + list
}

func (m Model) calendarGrid(vm ledger.ViewModel) string {
	s := m.styles

	var b strings.Builder
	for _, wd := range shortWeekdays {
		b.WriteString(s.Weekday.Render(fmt.Sprintf(" %s  ", wd)))
	}
	b.WriteByte('\n')

	for i, cell := range vm.Cells {
		b.WriteString(m.renderCell(cell))
		if (i+1)%7 == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) renderCell(cell ledger.Cell) string {
	s := m.styles

	day := fmt.Sprintf("%2d", cell.Day)
	var style lipgloss.Style
	switch {
	case cell.Selected:
		style = s.DaySelected
	case cell.Today:
		style = s.DayToday
	case cell.InMonth:
		style = s.DayInMonth
	default:
		style = s.DayOutMonth
	}

	dot := " "
	if cell.HasData {
		if cell.HasIncome {
			dot = s.DotIncome.Render("•")
		} else {
			dot = s.DotNeutral.Render("•")
		}
	}
	return " " + style.Render(day) + dot + " "
}

func (m Model) summaryBar(sum ledger.Summary) string {
	s := m.styles
	return s.Summary.Render(strings.Join([]string{
		"收入: " + s.Income.Render("$"+formatMoney(sum.Income)),
		"支出: " + s.Expense.Render("$"+formatMoney(sum.Expense)),
		"合計: " + s.Net.Render("$"+formatMoney(sum.Net)),
	}, "   "))
}

func (m Model) transactionGroups(vm ledger.ViewModel) string {
	if len(vm.Groups) == 0 {
		return m.styles.Faint.Render("無記帳紀錄")
	}

	var sections []string
	for _, g := range vm.Groups {
		sections = append(sections, m.renderGroup(g))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderGroup(g ledger.Group) string {
	s := m.styles

	lines := make([]string, 0, len(g.Items)+1)
	if m.ctrl.Mode() == ledger.ModeList {
		header := fmt.Sprintf("%s %s", dayNumber(g.Date), weekdayName(g.Date))
		lines = append(lines, s.GroupHeader.Render(header)+"  "+
			s.Faint.Render("-$"+formatMoney(g.Expense)))
	}
	for _, t := range g.Items {
		lines = append(lines, m.renderTransaction(t))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTransaction(t core.Transaction) string {
	s := m.styles
	cat := core.CategoryByName(t.Category)
	catStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(core.CategoryColor(t.Category))).Bold(true)

	amount := "$" + formatMoney(t.Amount)
	amountStyled := s.Expense.Render(amount)
	if core.IsIncome(t.Category) {
		amountStyled = s.Income.Render("+" + amount)
	}

	return fmt.Sprintf("  %s %s  %s %s  %s",
		cat.Icon,
		catStyle.Render(t.Category),
		s.Faint.Render(t.Note()),
		s.UserTag.Render("["+t.User+"]"),
		amountStyled,
	)
}
