package controller

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"aperture/internal/core"
	"aperture/internal/ledger"
	"aperture/internal/settings"
)

var testNow = func() time.Time { return time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC) }

type recordingSaver struct {
	saved []settings.UserSettings
}

func (r *recordingSaver) Save(s settings.UserSettings) error {
	r.saved = append(r.saved, s)
	return nil
}

func configured() settings.UserSettings {
	return settings.UserSettings{ScriptURL: "https://s.example/exec", Username: "Annie"}
}

func TestEmptyUsernameForcesSettings(t *testing.T) {
	c := New(settings.UserSettings{ScriptURL: "https://s.example/exec"}, nil, testNow)
	if c.View() != ViewSettings {
		t.Fatalf("unconfigured start should land on settings, got %v", c.View())
	}

	// Explicitly choosing List must not stick while unconfigured.
	c.SelectView(ViewList)
	if c.View() != ViewSettings {
		t.Fatalf("list selection should be overridden, got %v", c.View())
	}
}

func TestConfiguredRestoresChosenView(t *testing.T) {
	c := New(settings.UserSettings{ScriptURL: "https://s.example/exec"}, &recordingSaver{}, testNow)
	c.SelectView(ViewStats)
	if c.View() != ViewSettings {
		t.Fatalf("expected forced settings, got %v", c.View())
	}

	if err := c.UpdateSettings(configured()); err != nil {
		t.Fatal(err)
	}
	if c.View() != ViewStats {
		t.Fatalf("expected chosen view restored after configuration, got %v", c.View())
	}
}

func TestUsernameClearedForcesSettingsAgain(t *testing.T) {
	saver := &recordingSaver{}
	c := New(configured(), saver, testNow)
	c.SelectView(ViewList)
	if c.View() != ViewList {
		t.Fatalf("expected list, got %v", c.View())
	}

	s := c.Settings()
	s.Username = ""
	if err := c.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	if c.View() != ViewSettings {
		t.Fatal("clearing the username must force settings again")
	}

	s.Username = "Annie"
	if err := c.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	s.Username = ""
	if err := c.UpdateSettings(s); err != nil {
		t.Fatal(err)
	}
	if c.View() != ViewSettings {
		t.Fatal("the rule must re-fire every time the username empties, not just once")
	}
	if len(saver.saved) != 3 {
		t.Fatalf("every settings change must persist, got %d saves", len(saver.saved))
	}
}

func TestMaybeFetchPolicy(t *testing.T) {
	c := New(configured(), nil, testNow)

	req := c.MaybeFetch()
	if req == nil {
		t.Fatal("first render of list should fetch")
	}
	if req.Month != "2026-03" || req.User != "Annie" {
		t.Fatalf("unexpected request %+v", req)
	}
	if !c.Loading() {
		t.Fatal("issuing a fetch should mark loading")
	}

	if again := c.MaybeFetch(); again != nil {
		t.Fatalf("unchanged tuple should not re-fetch, got %+v", again)
	}

	c.PrevMonth()
	req2 := c.MaybeFetch()
	if req2 == nil || req2.Month != "2026-02" {
		t.Fatalf("month change should re-fetch, got %+v", req2)
	}
	if req2.Generation <= req.Generation {
		t.Fatal("generation must be monotonic")
	}
}

func TestMaybeFetchSkipsAddAndSettings(t *testing.T) {
	c := New(configured(), nil, testNow)
	c.SelectView(ViewAdd)
	if c.MaybeFetch() != nil {
		t.Fatal("no fetch while add is active")
	}
	c.SelectView(ViewSettings)
	if c.MaybeFetch() != nil {
		t.Fatal("no fetch while settings is active")
	}
}

func TestMaybeFetchSkipsUnconfigured(t *testing.T) {
	c := New(settings.UserSettings{ScriptURL: "https://s.example/exec"}, nil, testNow)
	if c.MaybeFetch() != nil {
		t.Fatal("no fetch without a username")
	}
}

func TestViewSwitchBetweenListAndStatsRefetches(t *testing.T) {
	c := New(configured(), nil, testNow)
	if c.MaybeFetch() == nil {
		t.Fatal("expected initial fetch")
	}
	c.SelectView(ViewStats)
	if c.MaybeFetch() == nil {
		t.Fatal("switching to stats should fetch")
	}
}

func TestStaleGenerationDiscarded(t *testing.T) {
	c := New(configured(), nil, testNow)

	reqA := c.MaybeFetch() // month 2026-03
	c.NextMonth()
	reqB := c.MaybeFetch() // month 2026-04
	if reqA == nil || reqB == nil {
		t.Fatal("expected two fetches")
	}

	fresh := core.MonthData{Total: decimal.NewFromInt(1), Transactions: []core.Transaction{{
		Date: "2026-04-02", Category: "飲食", Amount: decimal.NewFromInt(1), User: "Annie",
	}}}
	c.Apply(FetchResult{Generation: reqB.Generation, Month: reqB.Month, Data: fresh, HasData: true})

	// Late arrival for the superseded month must be dropped.
	staleData := core.MonthData{Total: decimal.NewFromInt(999)}
	c.Apply(FetchResult{Generation: reqA.Generation, Month: reqA.Month, Data: staleData, HasData: true})

	got, ok := c.Data()
	if !ok || !got.Total.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("stale response overwrote fresh data: %+v", got)
	}
}

func TestApplyError(t *testing.T) {
	c := New(configured(), nil, testNow)
	req := c.MaybeFetch()
	c.Apply(FetchResult{Generation: req.Generation, Month: req.Month, Err: "Connection Failed"})
	if c.Loading() {
		t.Fatal("apply should clear loading")
	}
	if c.ErrorMessage() != "Connection Failed" {
		t.Fatalf("expected error surfaced, got %q", c.ErrorMessage())
	}

	// Retry clears the tuple memory so the same tuple fetches again.
	c.Retry()
	if c.MaybeFetch() == nil {
		t.Fatal("retry should allow an identical fetch")
	}
}

func TestCursorResetPolicy(t *testing.T) {
	c := New(configured(), nil, testNow)
	if c.SelectedDate() != "2026-03-17" {
		t.Fatalf("current month should start on today, got %s", c.SelectedDate())
	}

	c.NextMonth()
	if c.SelectedDate() != "2026-04-01" {
		t.Fatalf("other month should reset to the 1st, got %s", c.SelectedDate())
	}

	c.PrevMonth()
	if c.SelectedDate() != "2026-03-17" {
		t.Fatalf("returning to the current month should select today, got %s", c.SelectedDate())
	}
}

func TestSaveSucceededForcesListAndRefetch(t *testing.T) {
	c := New(configured(), nil, testNow)
	if c.MaybeFetch() == nil {
		t.Fatal("expected initial fetch")
	}
	c.SelectView(ViewAdd)

	c.SaveSucceeded()
	if c.View() != ViewList {
		t.Fatalf("save should land back on list, got %v", c.View())
	}
	if c.MaybeFetch() == nil {
		t.Fatal("save must force one additional fetch")
	}
}

func TestToggleMode(t *testing.T) {
	c := New(configured(), nil, testNow)
	if c.Mode() != ledger.ModeCalendar {
		t.Fatal("calendar is the default mode")
	}
	c.ToggleMode()
	if c.Mode() != ledger.ModeList {
		t.Fatal("toggle should switch to list")
	}
	c.ToggleMode()
	if c.Mode() != ledger.ModeCalendar {
		t.Fatal("toggle should switch back")
	}
}
