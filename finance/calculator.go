// Package finance derives display totals from a budget draft. Everything here
// is synchronous and deterministic; it recomputes from scratch on every call.
package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/MiguelRivas11/studio/models"
)

// Summary holds the derived totals for a budget draft.
type Summary struct {
	TotalExpenses    float64 `json:"total_expenses"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Summarize computes totalExpenses = sum(expense.amount) and
// remainingBalance = income - totalExpenses. Amounts are summed as decimals
// so repeated cents never drift. Inputs reach this stage pre-validated; if
// validation was bypassed, NaN or infinite amounts count as 0 for display.
func Summarize(draft models.BudgetDraft) Summary {
	total := decimal.Zero
	for _, e := range draft.Expenses {
		total = total.Add(decimal.NewFromFloat(displayAmount(e.Amount)))
	}

	income := decimal.NewFromFloat(displayAmount(draft.Income))
	totalExpenses, _ := total.Float64()
	remaining, _ := income.Sub(total).Float64()

	return Summary{
		TotalExpenses:    totalExpenses,
		RemainingBalance: remaining,
	}
}

// Proportions returns each expense's share of the total, in draft order,
// keyed by entry name. An empty or zero-total draft yields no proportions.
func Proportions(draft models.BudgetDraft) map[string]float64 {
	summary := Summarize(draft)
	if summary.TotalExpenses <= 0 {
		return map[string]float64{}
	}

	total := decimal.NewFromFloat(summary.TotalExpenses)
	shares := make(map[string]float64, len(draft.Expenses))
	for _, e := range draft.Expenses {
		amount := displayAmount(e.Amount)
		if amount <= 0 {
			continue
		}
		share, _ := decimal.NewFromFloat(amount).Div(total).Float64()
		shares[e.Name] += share
	}
	return shares
}

func displayAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
