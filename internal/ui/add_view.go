package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aperture/internal/controller"
	"aperture/internal/core"
	"aperture/internal/keypad"
)

const addCategoryColumns = 4

var quickTags = []string{"早餐", "午餐", "晚餐", "飲料", "日用品"}

type addModel struct {
	styles     Styles
	buffer     *keypad.Buffer
	catIndex   int
	note       textinput.Model
	date       core.Date
	focusNote  bool
	submitting bool
	errMsg     string
}

func newAddModel(styles Styles) addModel {
	note := textinput.New()
	note.Placeholder = "註記 (留空以分類名稱代替)"
	note.CharLimit = 60
	return addModel{
		styles: styles,
		buffer: keypad.New(),
		note:   note,
	}
}

func (am *addModel) reset(date core.Date) {
	am.buffer.Reset()
	am.catIndex = 0
	am.note.SetValue("")
	am.note.Blur()
	am.focusNote = false
	am.date = date
	am.submitting = false
	am.errMsg = ""
}

func (am *addModel) category() core.Category {
	return core.Categories[am.catIndex]
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	am := &m.addView

	if am.focusNote {
		switch msg.String() {
		case "esc", "enter", "tab":
			am.focusNote = false
			am.note.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		am.note, cmd = am.note.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "esc", "q":
		m.ctrl.SelectView(controller.ViewList)
		return m, m.maybeFetchCmd()
	case "n", "tab":
		am.focusNote = true
		return m, am.note.Focus()
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		am.buffer.Digit(key[0])
		am.errMsg = ""
		return m, nil
	case "+", "-":
		am.buffer.Operator(key[0])
		return m, nil
	case ".":
		am.buffer.Dot()
		return m, nil
	case "backspace":
		am.buffer.Backspace()
		return m, nil
	case "left":
		am.moveCategory(-1)
		return m, nil
	case "right":
		am.moveCategory(1)
		return m, nil
	case "up":
		am.moveCategory(-addCategoryColumns)
		return m, nil
	case "down":
		am.moveCategory(addCategoryColumns)
		return m, nil
	case "[":
		am.shiftDate(-1)
		return m, nil
	case "]":
		am.shiftDate(1)
		return m, nil
	case "ctrl+t":
		am.cycleQuickTag()
		return m, nil
	case "enter":
		return m.submitTransaction()
	}
	return m, nil
}

func (am *addModel) moveCategory(delta int) {
	next := am.catIndex + delta
	if next < 0 || next >= len(core.Categories) {
		return
	}
	am.catIndex = next
}

func (am *addModel) shiftDate(days int) {
	t, err := am.date.Time()
	if err != nil {
		return
	}
	am.date = core.NewDate(t.AddDate(0, 0, days))
}

func (am *addModel) cycleQuickTag() {
	current := am.note.Value()
	for i, tag := range quickTags {
		if tag == current {
			am.note.SetValue(quickTags[(i+1)%len(quickTags)])
			return
		}
	}
	am.note.SetValue(quickTags[0])
}

// submitTransaction validates the keypad buffer locally; nothing with a
// non-positive amount ever reaches the gateway.
func (m Model) submitTransaction() (tea.Model, tea.Cmd) {
	am := &m.addView
	if am.submitting {
		return m, nil
	}

	amount, err := am.buffer.Evaluate()
	if err != nil {
		if err == keypad.ErrNotPositive {
			am.errMsg = "金額必須大於 0"
		} else {
			am.errMsg = "金額格式錯誤"
		}
		return m, nil
	}

	s := m.ctrl.Settings()
	tx := core.Transaction{
		Date:     am.date,
		Category: am.category().Name,
		Amount:   amount,
		Item:     strings.TrimSpace(am.note.Value()),
		User:     s.Username,
		Currency: core.DefaultCurrency,
	}
	if err := tx.Validate(); err != nil {
		am.errMsg = err.Error()
		return m, nil
	}

	am.submitting = true
	am.errMsg = ""
	saver, endpoint := m.saver, s.ScriptURL
	return m, func() tea.Msg {
		return saveResultMsg(saver.SaveTransaction(context.Background(), endpoint, tx))
	}
}

func (m Model) viewAdd() string {
	am := m.addView
	s := m.styles

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Faint.Render(fmt.Sprintf("[%s]", am.date)),
		"  ",
		s.HeaderAccent.Render("$"+am.buffer.String()),
	)

	sections := []string{
		header,
		s.Banner.Render(am.category().Desc),
		m.categoryGrid(),
		m.noteRow(),
		m.keypadGrid(),
	}
	if am.errMsg != "" {
		sections = append(sections, s.Error.Render(am.errMsg))
	}
	if am.submitting {
		sections = append(sections, s.Faint.Render("儲存中…"))
	}
	sections = append(sections,
		s.Hint.Render("←→↑↓分類  n註記  [ ]日期  ctrl+t快速標籤  enter確認  esc取消"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) categoryGrid() string {
	am := m.addView
	s := m.styles

	var rows []string
	for start := 0; start < len(core.Categories); start += addCategoryColumns {
		end := start + addCategoryColumns
		if end > len(core.Categories) {
			end = len(core.Categories)
		}
		cells := make([]string, 0, addCategoryColumns)
		for i := start; i < end; i++ {
			cat := core.Categories[i]
			label := fmt.Sprintf("%s %s", cat.Icon, cat.Name)
			if i == am.catIndex {
				label = s.Selected.Render("▸" + label)
			} else {
				label = s.Faint.Render(" " + label)
			}
			cells = append(cells, lipgloss.NewStyle().Width(14).Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) noteRow() string {
	s := m.styles
	tags := make([]string, 0, len(quickTags))
	for _, tag := range quickTags {
		if tag == m.addView.note.Value() {
			tags = append(tags, s.Selected.Render(tag))
		} else {
			tags = append(tags, s.Faint.Render(tag))
		}
	}
	return m.addView.note.View() + "\n" + strings.Join(tags, " · ")
}

func (m Model) keypadGrid() string {
	s := m.styles
	rows := []string{
		" 7  8  9  ⌫",
		" 4  5  6  +",
		" 1  2  3  -",
		"TWD 0  .  ↵",
	}
	return s.Faint.Render(strings.Join(rows, "\n"))
}
