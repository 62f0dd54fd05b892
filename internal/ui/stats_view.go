package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aperture/internal/core"
	"aperture/internal/ledger"
)

const statsBarWidth = 24

type statsModel struct {
	styles Styles
}

func newStatsModel(styles Styles) statsModel {
	return statsModel{styles: styles}
}

func (m Model) viewStats() string {
	s := m.styles
	data, _ := m.ctrl.Data()

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Header.Render("支出分析"),
		"  ",
		s.Faint.Render(ledger.MonthLabel(m.ctrl.Month())),
	)

	sections := []string{header}
	switch {
	case m.ctrl.Loading():
		sections = append(sections, m.ledgerView.spinner.View()+" "+s.Faint.Render("載入中…"))
	case m.ctrl.ErrorMessage() != "" && !m.isStale():
		sections = append(sections,
			s.Error.Render("無法載入資料: "+m.ctrl.ErrorMessage()),
			s.Hint.Render("按 r 重試"))
	default:
		shares := ledger.Breakdown(data.Transactions)
		if len(shares) == 0 {
			sections = append(sections, s.Faint.Render("本月尚無資料可分析"))
		} else {
			sections = append(sections, m.breakdownRows(shares))
		}
	}

	sections = append(sections, s.Hint.Render("[ ]月份  r重新整理  q離開"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) breakdownRows(shares []ledger.CategoryShare) string {
	s := m.styles

	rows := make([]string, 0, len(shares))
	for _, share := range shares {
		cat := core.CategoryByName(share.Name)
		catStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(core.CategoryColor(share.Name)))

		filled := int(share.Percent / 100 * statsBarWidth)
		if filled == 0 && share.Percent > 0 {
			filled = 1
		}
		bar := s.Bar.Render(strings.Repeat("█", filled)) +
			s.Faint.Render(strings.Repeat("░", statsBarWidth-filled))

		rows = append(rows, fmt.Sprintf("%s %s  %s  %s %s",
			cat.Icon,
			catStyle.Render(lipgloss.NewStyle().Width(8).Render(share.Name)),
			bar,
			s.Expense.Render("$"+formatMoney(share.Amount)),
			s.Faint.Render(fmt.Sprintf("(%.1f%%)", share.Percent)),
		))
	}
	return strings.Join(rows, "\n")
}
