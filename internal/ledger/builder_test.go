package ledger

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"aperture/internal/core"
)

func tx(date core.Date, category string, amount int64) core.Transaction {
	return core.Transaction{
		Date:     date,
		Category: category,
		Amount:   decimal.NewFromInt(amount),
		User:     "Annie",
		Currency: core.DefaultCurrency,
	}
}

var fixedToday = time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)

func TestGridShape(t *testing.T) {
	months := []string{"2026-03", "2026-02", "2024-02", "2025-12", "2026-01", "1999-06"}
	for _, month := range months {
		vm := Build(month, nil, "", ModeCalendar, fixedToday)
		if len(vm.Cells) == 0 || len(vm.Cells)%7 != 0 {
			t.Fatalf("%s: grid length %d is not a positive multiple of 7", month, len(vm.Cells))
		}
		first, err := vm.Cells[0].Date.Time()
		if err != nil {
			t.Fatalf("%s: bad first cell date: %v", month, err)
		}
		last, err := vm.Cells[len(vm.Cells)-1].Date.Time()
		if err != nil {
			t.Fatalf("%s: bad last cell date: %v", month, err)
		}
		if first.Weekday() != time.Sunday {
			t.Fatalf("%s: grid starts on %v, want Sunday", month, first.Weekday())
		}
		if last.Weekday() != time.Saturday {
			t.Fatalf("%s: grid ends on %v, want Saturday", month, last.Weekday())
		}
	}
}

func TestGridCoversMonth(t *testing.T) {
	vm := Build("2026-03", nil, "", ModeCalendar, fixedToday)
	inMonth := 0
	for _, c := range vm.Cells {
		if c.InMonth {
			inMonth++
		}
	}
	if inMonth != 31 {
		t.Fatalf("expected 31 in-month cells for 2026-03, got %d", inMonth)
	}
}

func TestGridTodayAndSelected(t *testing.T) {
	vm := Build("2026-03", nil, "2026-03-05", ModeCalendar, fixedToday)
	var sawToday, sawSelected bool
	for _, c := range vm.Cells {
		if c.Today {
			sawToday = true
			if c.Date != "2026-03-17" {
				t.Fatalf("today marked on %s", c.Date)
			}
		}
		if c.Selected {
			sawSelected = true
			if c.Date != "2026-03-05" {
				t.Fatalf("selected marked on %s", c.Date)
			}
		}
	}
	if !sawToday || !sawSelected {
		t.Fatalf("today=%v selected=%v, want both marked", sawToday, sawSelected)
	}

	// Another month: no cell of 2026-05 is "today".
	vm = Build("2026-05", nil, "", ModeCalendar, fixedToday)
	for _, c := range vm.Cells {
		if c.InMonth && c.Today {
			t.Fatalf("2026-05 should not contain today")
		}
	}
}

func TestDateIndexComplete(t *testing.T) {
	txs := []core.Transaction{
		tx("2026-03-05", "飲食", 500),
		tx("2026-03-05", "交通", 30),
		tx("2026-03-09", "薪資", 50000),
		tx("2026-03-01", "娛樂", 220),
	}
	vm := Build("2026-03", txs, "", ModeList, fixedToday)

	total := 0
	for date, items := range vm.ByDate {
		total += len(items)
		for _, it := range items {
			if it.Date != date {
				t.Fatalf("transaction dated %s indexed under %s", it.Date, date)
			}
		}
	}
	if total != len(txs) {
		t.Fatalf("index holds %d transactions, want %d", total, len(txs))
	}
	// Input order preserved within a day.
	day := vm.ByDate["2026-03-05"]
	if len(day) != 2 || day[0].Category != "飲食" || day[1].Category != "交通" {
		t.Fatalf("per-day order not preserved: %+v", day)
	}
}

func TestVisibleSet(t *testing.T) {
	txs := []core.Transaction{
		tx("2026-03-05", "飲食", 500),
		tx("2026-03-09", "薪資", 50000),
	}

	cal := Build("2026-03", txs, "2026-03-05", ModeCalendar, fixedToday)
	if len(cal.Visible) != 1 || cal.Visible[0].Date != "2026-03-05" {
		t.Fatalf("calendar mode should show only the selected day, got %+v", cal.Visible)
	}

	list := Build("2026-03", txs, "2026-03-05", ModeList, fixedToday)
	if len(list.Visible) != 2 {
		t.Fatalf("list mode should show the whole month, got %d", len(list.Visible))
	}
}

func TestGroupsDescendingContiguous(t *testing.T) {
	txs := []core.Transaction{
		tx("2026-03-01", "娛樂", 220),
		tx("2026-03-09", "薪資", 50000),
		tx("2026-03-05", "飲食", 500),
		tx("2026-03-05", "交通", 30),
	}
	vm := Build("2026-03", txs, "", ModeList, fixedToday)

	wantDates := []core.Date{"2026-03-09", "2026-03-05", "2026-03-01"}
	if len(vm.Groups) != len(wantDates) {
		t.Fatalf("expected %d groups, got %d", len(wantDates), len(vm.Groups))
	}
	for i, g := range vm.Groups {
		if g.Date != wantDates[i] {
			t.Fatalf("group %d is %s, want %s", i, g.Date, wantDates[i])
		}
	}
	// Day subtotal excludes income.
	if !vm.Groups[0].Expense.IsZero() {
		t.Fatalf("income-only day should have zero expense subtotal, got %s", vm.Groups[0].Expense)
	}
	if !vm.Groups[1].Expense.Equal(decimal.NewFromInt(530)) {
		t.Fatalf("expected 530 day expense, got %s", vm.Groups[1].Expense)
	}
}

func TestSummaryIdentities(t *testing.T) {
	sets := [][]core.Transaction{
		nil,
		{tx("2026-03-05", "飲食", 500)},
		{tx("2026-03-09", "薪資", 50000)},
		{
			tx("2026-03-05", "飲食", 500),
			tx("2026-03-05", "交通", 30),
			tx("2026-03-09", "薪資", 50000),
			tx("2026-03-20", "娛樂", 1200),
		},
	}
	for i, txs := range sets {
		vm := Build("2026-03", txs, "", ModeList, fixedToday)
		s := vm.Summary
		if !s.Net.Equal(s.Income.Sub(s.Expense)) {
			t.Fatalf("set %d: net != income - expense", i)
		}
		sum := decimal.Zero
		for _, t2 := range txs {
			sum = sum.Add(t2.Amount)
		}
		if !s.Income.Add(s.Expense).Equal(sum) {
			t.Fatalf("set %d: income + expense != sum of amounts", i)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	txs := []core.Transaction{
		tx("2026-03-05", "飲食", 500),
		tx("2026-03-09", "薪資", 50000),
	}
	a := Build("2026-03", txs, "2026-03-05", ModeCalendar, fixedToday)
	b := Build("2026-03", txs, "2026-03-05", ModeCalendar, fixedToday)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different view-models")
	}
}

func TestEmptyMonthViewModel(t *testing.T) {
	vm := Build("2026-03", nil, "2026-03-05", ModeCalendar, fixedToday)
	if len(vm.Groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(vm.Groups))
	}
	if !vm.Summary.Income.IsZero() || !vm.Summary.Expense.IsZero() || !vm.Summary.Net.IsZero() {
		t.Fatalf("expected zero summary, got %+v", vm.Summary)
	}
	for _, c := range vm.Cells {
		if c.HasData || c.HasIncome {
			t.Fatalf("empty month should have no dots, cell %s", c.Date)
		}
	}
}

func TestFetchedMonthMarksCalendar(t *testing.T) {
	// Mirrors a backend month of 2026-03 with a single 飲食 row on the 5th.
	txs := []core.Transaction{{
		Date:     "2026-03-05",
		Category: "飲食",
		Amount:   decimal.NewFromInt(500),
		Item:     "午餐",
		User:     "Annie",
	}}
	vm := Build("2026-03", txs, "2026-03-01", ModeCalendar, fixedToday)
	for _, c := range vm.Cells {
		if c.Date == "2026-03-05" {
			if !c.HasData {
				t.Fatal("March 5 should have data")
			}
			if c.HasIncome {
				t.Fatal("March 5 should not be marked as income")
			}
			return
		}
	}
	t.Fatal("March 5 not present in grid")
}
