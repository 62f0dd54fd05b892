package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"aperture/internal/core"
)

// CategoryShare is one slice of the monthly expense breakdown.
type CategoryShare struct {
	Name    string
	Amount  decimal.Decimal
	Percent float64 // share of total expense, 0-100
}

// Breakdown aggregates the month's expenses per category, income
// excluded, sorted by amount descending (ties by name so the order is
// stable across renders).
func Breakdown(txs []core.Transaction) []CategoryShare {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if core.IsIncome(t.Category) {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}
	if len(totals) == 0 {
		return nil
	}

	total := decimal.Zero
	shares := make([]CategoryShare, 0, len(totals))
	for name, amount := range totals {
		shares = append(shares, CategoryShare{Name: name, Amount: amount})
		total = total.Add(amount)
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		}
		return shares[i].Name < shares[j].Name
	})

	// A month of zero-amount rows sums to zero; leave every share at
	// 0% rather than dividing by it.
	if !total.IsZero() {
		for i := range shares {
			shares[i].Percent, _ = shares[i].Amount.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}
	}
	return shares
}
