package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MiguelRivas11/studio/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		draft         models.BudgetDraft
		wantExpenses  float64
		wantRemaining float64
	}{
		{
			name: "typical budget",
			draft: models.BudgetDraft{
				Income: 5000,
				Expenses: []models.ExpenseEntry{
					{Name: "Renta", Amount: 1500},
					{Name: "Comida", Amount: 600},
				},
			},
			wantExpenses:  2100,
			wantRemaining: 2900,
		},
		{
			name:          "no expenses",
			draft:         models.BudgetDraft{Income: 3000},
			wantExpenses:  0,
			wantRemaining: 3000,
		},
		{
			name: "expenses exceed income",
			draft: models.BudgetDraft{
				Income: 1000,
				Expenses: []models.ExpenseEntry{
					{Name: "Renta", Amount: 1200},
				},
			},
			wantExpenses:  1200,
			wantRemaining: -200,
		},
		{
			name: "cent amounts do not drift",
			draft: models.BudgetDraft{
				Income: 1,
				Expenses: []models.ExpenseEntry{
					{Name: "a", Amount: 0.1},
					{Name: "b", Amount: 0.2},
				},
			},
			wantExpenses:  0.3,
			wantRemaining: 0.7,
		},
		{
			name: "NaN amount counts as zero",
			draft: models.BudgetDraft{
				Income: 500,
				Expenses: []models.ExpenseEntry{
					{Name: "roto", Amount: math.NaN()},
					{Name: "Comida", Amount: 100},
				},
			},
			wantExpenses:  100,
			wantRemaining: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.draft)
			assert.Equal(t, tt.wantExpenses, got.TotalExpenses)
			assert.Equal(t, tt.wantRemaining, got.RemainingBalance)
		})
	}
}

func TestProportions(t *testing.T) {
	draft := models.BudgetDraft{
		Income: 5000,
		Expenses: []models.ExpenseEntry{
			{Name: "Renta", Amount: 1500},
			{Name: "Comida", Amount: 500},
		},
	}

	shares := Proportions(draft)
	assert.InDelta(t, 0.75, shares["Renta"], 1e-9)
	assert.InDelta(t, 0.25, shares["Comida"], 1e-9)

	sum := 0.0
	for _, s := range shares {
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestProportionsEmpty(t *testing.T) {
	assert.Empty(t, Proportions(models.BudgetDraft{Income: 100}))
}
