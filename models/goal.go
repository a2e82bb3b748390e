package models

import "time"

// Goal is a savings goal. SavedAmount may exceed TargetAmount.
type Goal struct {
	ID           string    `json:"id" bson:"_id"`
	UserID       string    `json:"user_id" bson:"user_id"`
	Name         string    `json:"name" bson:"name"`
	TargetAmount float64   `json:"target_amount" bson:"target_amount"`
	SavedAmount  float64   `json:"saved_amount" bson:"saved_amount"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Completed reports whether the goal has been reached.
func (g Goal) Completed() bool {
	return g.SavedAmount >= g.TargetAmount
}
