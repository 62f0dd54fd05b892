// Package controller owns which screen is active, the displayed month,
// the selected-date cursor, and the re-fetch policy. It performs no I/O
// itself: it emits FetchRequests and consumes FetchResults, so every
// transition is testable without a network.
package controller

import (
	"time"

	"aperture/internal/core"
	"aperture/internal/ledger"
	"aperture/internal/settings"
)

// View is the single active screen.
type View int

const (
	ViewList View = iota
	ViewAdd
	ViewStats
	ViewSettings
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewAdd:
		return "add"
	case ViewStats:
		return "stats"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// SettingsSaver persists the preference record; the controller invokes
// it explicitly on every mutation.
type SettingsSaver interface {
	Save(settings.UserSettings) error
}

// fetchTuple is the dependency set whose change triggers a re-fetch
// while List or Stats is active.
type fetchTuple struct {
	month    string
	endpoint string
	user     string
	view     View
}

// FetchRequest describes one month load. Generation tags the request so
// a late response for a superseded request can be discarded.
type FetchRequest struct {
	Generation uint64
	Endpoint   string
	Month      string
	User       string
}

// FetchResult is the completion of a FetchRequest. Stale means the data
// came from the local cache after a failed fetch.
type FetchResult struct {
	Generation uint64
	Month      string
	Data       core.MonthData
	HasData    bool
	Err        string
	Stale      bool
	FetchedAt  time.Time
}

// Controller is the view state machine. Not safe for concurrent use;
// the UI event loop is its single caller.
type Controller struct {
	now   func() time.Time
	saver SettingsSaver

	view     View
	chosen   View // the user's last explicit choice, restored when settings become valid
	month    string
	selected core.Date
	mode     ledger.ViewMode
	settings settings.UserSettings

	data      core.MonthData
	hasData   bool
	stale     bool
	fetchedAt time.Time
	loading   bool
	errMsg    string

	generation  uint64
	lastFetched fetchTuple
	fetchValid  bool
}

func New(s settings.UserSettings, saver SettingsSaver, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		now:      now,
		saver:    saver,
		view:     ViewList,
		chosen:   ViewList,
		settings: s,
	}
	c.month = ledger.MonthKey(now())
	c.selected = ledger.DefaultSelectedDate(c.month, now())
	c.enforceConfigured()
	return c
}

// --- accessors ---

func (c *Controller) View() View                       { return c.view }
func (c *Controller) Month() string                    { return c.month }
func (c *Controller) SelectedDate() core.Date          { return c.selected }
func (c *Controller) Mode() ledger.ViewMode            { return c.mode }
func (c *Controller) Settings() settings.UserSettings  { return c.settings }
func (c *Controller) Data() (core.MonthData, bool)     { return c.data, c.hasData }
func (c *Controller) Loading() bool                    { return c.loading }
func (c *Controller) ErrorMessage() string             { return c.errMsg }
func (c *Controller) Stale() (bool, time.Time)         { return c.stale, c.fetchedAt }
func (c *Controller) Now() time.Time                   { return c.now() }

// ViewModel derives the render model for the current state.
func (c *Controller) ViewModel() ledger.ViewModel {
	return ledger.Build(c.month, c.data.Transactions, c.selected, c.mode, c.now())
}

// --- transitions ---

// SelectView is the user picking a tab. The choice is remembered, but
// an unconfigured username always wins and forces Settings.
func (c *Controller) SelectView(v View) {
	c.chosen = v
	c.view = v
	c.enforceConfigured()
}

// enforceConfigured re-runs the redirect-to-settings rule. It must fire
// every time the username becomes empty, not just once.
func (c *Controller) enforceConfigured() {
	if !c.settings.Configured() {
		c.view = ViewSettings
		return
	}
	c.view = c.chosen
}

// UpdateSettings overwrites and persists the preference record, then
// re-applies the configured-username rule.
func (c *Controller) UpdateSettings(s settings.UserSettings) error {
	c.settings = s
	var err error
	if c.saver != nil {
		err = c.saver.Save(s)
	}
	c.enforceConfigured()
	return err
}

// PrevMonth moves the displayed month back and resets the cursor.
func (c *Controller) PrevMonth() { c.setMonth(ledger.ShiftMonth(c.month, -1)) }

// NextMonth moves the displayed month forward and resets the cursor.
func (c *Controller) NextMonth() { c.setMonth(ledger.ShiftMonth(c.month, 1)) }

func (c *Controller) setMonth(month string) {
	if month == c.month {
		return
	}
	c.month = month
	// Cursor policy: today when entering the current month, else the 1st.
	// Independent of fetched data and of loading/error state.
	c.selected = ledger.DefaultSelectedDate(month, c.now())
}

func (c *Controller) SelectDate(d core.Date) { c.selected = d }

func (c *Controller) SetMode(m ledger.ViewMode) { c.mode = m }

func (c *Controller) ToggleMode() {
	if c.mode == ledger.ModeCalendar {
		c.mode = ledger.ModeList
	} else {
		c.mode = ledger.ModeCalendar
	}
}

// SaveSucceeded is called after the gateway accepted a transaction:
// back to the ledger, then one forced re-fetch.
func (c *Controller) SaveSucceeded() {
	c.chosen = ViewList
	c.view = ViewList
	c.enforceConfigured()
	c.fetchValid = false
}

// Retry clears the fetched-tuple memory so the next MaybeFetch fires.
func (c *Controller) Retry() {
	c.fetchValid = false
}

// MaybeFetch issues a fetch when the active view wants month data and
// the (month, endpoint, username, view) tuple differs from the last
// issued one. Explicit comparison, no implicit dependency tracking.
func (c *Controller) MaybeFetch() *FetchRequest {
	if c.view != ViewList && c.view != ViewStats {
		return nil
	}
	if !c.settings.Configured() {
		return nil
	}
	tuple := fetchTuple{
		month:    c.month,
		endpoint: c.settings.ScriptURL,
		user:     c.settings.Username,
		view:     c.view,
	}
	if c.fetchValid && tuple == c.lastFetched {
		return nil
	}
	c.lastFetched = tuple
	c.fetchValid = true
	c.generation++
	c.loading = true
	c.errMsg = ""
	return &FetchRequest{
		Generation: c.generation,
		Endpoint:   tuple.endpoint,
		Month:      tuple.month,
		User:       tuple.user,
	}
}

// Apply consumes a fetch completion. Results tagged with a stale
// generation are dropped: a late response for a superseded month must
// never overwrite newer state.
func (c *Controller) Apply(res FetchResult) {
	if res.Generation != c.generation {
		return
	}
	c.loading = false
	c.errMsg = res.Err
	c.stale = res.Stale
	c.fetchedAt = res.FetchedAt
	if res.HasData {
		c.data = res.Data
		c.hasData = true
	}
}
