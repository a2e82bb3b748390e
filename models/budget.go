package models

// ExpenseEntry is one named expense line in the budget simulator.
type ExpenseEntry struct {
	Name   string  `json:"name" bson:"name"`
	Amount float64 `json:"amount" bson:"amount"`
}

// BudgetDraft is the locally edited budget mirrored to storage. One per user;
// repeated saves merge with last-write-wins.
type BudgetDraft struct {
	UserID   string         `json:"user_id" bson:"user_id"`
	Income   float64        `json:"income" bson:"income"`
	Expenses []ExpenseEntry `json:"expenses" bson:"expenses"`
}
