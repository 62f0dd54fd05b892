package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency tags every transaction sent to the backend.
const DefaultCurrency = "TWD"

type (
	// Date is a calendar day in canonical ISO form, e.g. "2026-03-05".
	// It doubles as the wire value and the date-index key.
	Date string

	// Transaction is one recorded monetary event. Created client-side,
	// sent once, never edited or deleted by this client.
	Transaction struct {
		Date     Date
		Category string
		Amount   decimal.Decimal
		Item     string // free-text note; blank falls back to the category name
		User     string
		Currency string
	}

	// MonthData is the server-computed aggregate for one month/user pair.
	// Replaced wholesale on each successful fetch.
	MonthData struct {
		Total        decimal.Decimal
		Transactions []Transaction
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyUser     = errors.New("empty user")
)

const dateLayout = "2006-01-02"

// NewDate formats a time as a canonical Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// Time parses the date. The zero time and an error are returned for
// non-canonical input.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Month returns the "YYYY-MM" month key the date belongs to.
func (d Date) Month() string {
	if len(d) < 7 {
		return ""
	}
	return string(d[:7])
}

func (d Date) Validate() error {
	if _, err := d.Time(); err != nil {
		return err
	}
	return nil
}

// Note returns the display note, falling back to the category name
// when the free-text item is blank.
func (t Transaction) Note() string {
	if strings.TrimSpace(t.Item) == "" {
		return t.Category
	}
	return t.Item
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.User) == "" {
		return ErrEmptyUser
	}
	return nil
}

// EmptyMonth is the normalized "no data" result: zero total, no rows.
func EmptyMonth() MonthData {
	return MonthData{Total: decimal.Zero}
}
