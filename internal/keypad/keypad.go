// Package keypad implements the amount-entry accumulator: a string
// buffer of non-negative numbers chained by '+'/'-', evaluated with a
// purpose-built parser for that grammar instead of a general expression
// engine.
package keypad

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMalformed   = errors.New("malformed amount expression")
	ErrNotPositive = errors.New("amount must be greater than zero")
)

// Buffer holds the expression under construction. The zero value is
// not usable; call New.
type Buffer struct {
	expr string
}

func New() *Buffer {
	return &Buffer{expr: "0"}
}

func (b *Buffer) String() string {
	return b.expr
}

// Digit appends a digit key, replacing the initial "0" placeholder.
func (b *Buffer) Digit(d byte) {
	if d < '0' || d > '9' {
		return
	}
	if b.expr == "0" {
		b.expr = string(d)
		return
	}
	b.expr += string(d)
}

// Dot appends a decimal point unless the trailing numeric segment
// already has one.
func (b *Buffer) Dot() {
	if strings.Contains(lastSegment(b.expr), ".") {
		return
	}
	b.expr += "."
}

// Operator appends '+' or '-' unless the last character is already an
// operator or a decimal point.
func (b *Buffer) Operator(op byte) {
	if op != '+' && op != '-' {
		return
	}
	switch b.expr[len(b.expr)-1] {
	case '+', '-', '.':
		return
	}
	b.expr += string(op)
}

// Backspace removes the last character, collapsing to "0" rather than
// ever going empty.
func (b *Buffer) Backspace() {
	if len(b.expr) <= 1 {
		b.expr = "0"
		return
	}
	b.expr = b.expr[:len(b.expr)-1]
}

// Reset returns the buffer to its initial state.
func (b *Buffer) Reset() {
	b.expr = "0"
}

// Evaluate parses the chained add/subtract expression left-to-right.
// A malformed buffer or a non-positive result is an error; nothing with
// amount <= 0 may reach the gateway.
func (b *Buffer) Evaluate() (decimal.Decimal, error) {
	return Evaluate(b.expr)
}

// Evaluate computes the value of `number (('+'|'-') number)*`.
func Evaluate(expr string) (decimal.Decimal, error) {
	if expr == "" || strings.Trim(expr, "0123456789+-.") != "" {
		return decimal.Zero, ErrMalformed
	}

	total := decimal.Zero
	sign := int64(1)
	rest := expr
	for {
		numEnd := strings.IndexAny(rest, "+-")
		var segment string
		if numEnd == -1 {
			segment = rest
		} else {
			segment = rest[:numEnd]
		}
		n, err := decimal.NewFromString(segment)
		if err != nil {
			return decimal.Zero, ErrMalformed
		}
		total = total.Add(n.Mul(decimal.NewFromInt(sign)))

		if numEnd == -1 {
			break
		}
		if rest[numEnd] == '+' {
			sign = 1
		} else {
			sign = -1
		}
		rest = rest[numEnd+1:]
	}

	if !total.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return total, nil
}

func lastSegment(expr string) string {
	if i := strings.LastIndexAny(expr, "+-"); i >= 0 {
		return expr[i+1:]
	}
	return expr
}
