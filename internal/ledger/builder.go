// Package ledger derives the month view-model: the calendar grid, the
// date index, the visible transaction set with its day groupings, and
// the income/expense summary. Everything here is a pure function of its
// inputs; the wall-clock date is injected so renders stay reproducible.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"aperture/internal/core"
)

// ViewMode selects which transactions are visible.
type ViewMode int

const (
	// ModeCalendar shows only the selected day's transactions.
	ModeCalendar ViewMode = iota
	// ModeList shows the whole month.
	ModeList
)

type (
	// Cell is one day slot of the calendar grid.
	Cell struct {
		Date      core.Date
		Day       int
		InMonth   bool
		Today     bool
		Selected  bool
		HasData   bool
		HasIncome bool
	}

	// Group is a contiguous run of same-date transactions after the
	// descending date sort; one group per distinct visible date.
	Group struct {
		Date    core.Date
		Items   []core.Transaction
		Expense decimal.Decimal // day subtotal shown in list headers, income excluded
	}

	// Summary aggregates the visible set. Net = Income - Expense.
	Summary struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
		Net     decimal.Decimal
	}

	// ViewModel is the full derivation for one render.
	ViewModel struct {
		Month   string
		Cells   []Cell
		ByDate  map[core.Date][]core.Transaction
		Visible []core.Transaction
		Groups  []Group
		Summary Summary
	}
)

// Build derives the view-model for one month. It never mutates its
// inputs and carries no state between calls.
func Build(month string, txs []core.Transaction, selected core.Date, mode ViewMode, today time.Time) ViewModel {
	byDate := indexByDate(txs)
	visible := visibleSet(txs, selected, mode)

	return ViewModel{
		Month:   month,
		Cells:   grid(month, byDate, selected, today),
		ByDate:  byDate,
		Visible: visible,
		Groups:  groupByDay(visible),
		Summary: summarize(visible),
	}
}

// grid produces every date from the Sunday on or before the 1st through
// the Saturday on or after the month's last day. Length is always a
// multiple of 7.
func grid(month string, byDate map[core.Date][]core.Transaction, selected core.Date, today time.Time) []Cell {
	start := monthStart(month)
	if start.IsZero() {
		return nil
	}
	monthEnd := start.AddDate(0, 1, -1)
	gridStart := start.AddDate(0, 0, -int(start.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))
	todayKey := core.NewDate(today)

	var cells []Cell
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := core.NewDate(day)
		dayTxs := byDate[key]
		cells = append(cells, Cell{
			Date:      key,
			Day:       day.Day(),
			InMonth:   key.Month() == month,
			Today:     key == todayKey,
			Selected:  key == selected,
			HasData:   len(dayTxs) > 0,
			HasIncome: hasIncome(dayTxs),
		})
	}
	return cells
}

// indexByDate groups transactions under their own date key, preserving
// backend order within each day.
func indexByDate(txs []core.Transaction) map[core.Date][]core.Transaction {
	byDate := make(map[core.Date][]core.Transaction, len(txs))
	for _, t := range txs {
		byDate[t.Date] = append(byDate[t.Date], t)
	}
	return byDate
}

func visibleSet(txs []core.Transaction, selected core.Date, mode ViewMode) []core.Transaction {
	if mode == ModeList {
		return append([]core.Transaction(nil), txs...)
	}
	var out []core.Transaction
	for _, t := range txs {
		if t.Date == selected {
			out = append(out, t)
		}
	}
	return out
}

// groupByDay sorts the visible set by date descending (stable, so
// same-day rows keep backend order) and partitions it into contiguous
// same-date runs.
func groupByDay(visible []core.Transaction) []Group {
	sorted := append([]core.Transaction(nil), visible...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	var groups []Group
	for _, t := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Date == t.Date {
			g := &groups[n-1]
			g.Items = append(g.Items, t)
			if !core.IsIncome(t.Category) {
				g.Expense = g.Expense.Add(t.Amount)
			}
			continue
		}
		g := Group{Date: t.Date, Items: []core.Transaction{t}, Expense: decimal.Zero}
		if !core.IsIncome(t.Category) {
			g.Expense = t.Amount
		}
		groups = append(groups, g)
	}
	return groups
}

func summarize(visible []core.Transaction) Summary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range visible {
		if core.IsIncome(t.Category) {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return Summary{Income: income, Expense: expense, Net: income.Sub(expense)}
}

func hasIncome(txs []core.Transaction) bool {
	for _, t := range txs {
		if core.IsIncome(t.Category) {
			return true
		}
	}
	return false
}
