package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MiguelRivas11/studio/docsync"
	"github.com/MiguelRivas11/studio/finance"
	"github.com/MiguelRivas11/studio/logger"
	"github.com/MiguelRivas11/studio/models"
	"github.com/MiguelRivas11/studio/mongodb"
)

type expenseEntryRequest struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type updateBudgetRequest struct {
	Income   float64               `json:"income" binding:"gte=0"`
	Expenses []expenseEntryRequest `json:"expenses" binding:"dive"`
}

// One tracker per signed-in user so unchanged drafts never reach the store.
var (
	budgetTrackersMu sync.Mutex
	budgetTrackers   = make(map[string]*docsync.Tracker[models.BudgetDraft])
)

func budgetTracker(userID string) *docsync.Tracker[models.BudgetDraft] {
	budgetTrackersMu.Lock()
	defer budgetTrackersMu.Unlock()

	tracker, ok := budgetTrackers[userID]
	if !ok {
		key := "users/" + userID + "/budget"
		tracker = docsync.NewTracker(WriteQueue, key, func(ctx context.Context, draft models.BudgetDraft) error {
			return mongodb.UpsertBudget(ctx, draft.UserID, &draft)
		})
		budgetTrackers[userID] = tracker
	}
	return tracker
}

// GetBudget returns the saved budget with its derived totals.
func GetBudget(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	draft, err := mongodb.GetBudget(c, claims.Sub)
	if err != nil {
		logger.Get().Error("error fetching budget",
			zap.String("user_id", claims.Sub),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"budget": nil})
		return
	}

	budgetTracker(claims.Sub).Seed(*draft)

	summary := finance.Summarize(*draft)
	c.JSON(http.StatusOK, gin.H{
		"budget":            draft,
		"total_expenses":    summary.TotalExpenses,
		"remaining_balance": summary.RemainingBalance,
		"proportions":       finance.Proportions(*draft),
	})
}

// UpdateBudget accepts the edited draft and persists it optimistically: the
// response never waits on the store, and an unchanged draft writes nothing.
func UpdateBudget(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Get().Error("error binding JSON", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := models.BudgetDraft{
		UserID:   claims.Sub,
		Income:   req.Income,
		Expenses: make([]models.ExpenseEntry, len(req.Expenses)),
	}
	for i, e := range req.Expenses {
		draft.Expenses[i] = models.ExpenseEntry{Name: e.Name, Amount: e.Amount}
	}

	queued := budgetTracker(claims.Sub).Flush(draft)

	summary := finance.Summarize(draft)
	c.JSON(http.StatusAccepted, gin.H{
		"queued":            queued,
		"total_expenses":    summary.TotalExpenses,
		"remaining_balance": summary.RemainingBalance,
		"proportions":       finance.Proportions(draft),
	})
}
