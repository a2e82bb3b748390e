package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func budgetRouter() *gin.Engine {
	router := gin.New()
	router.PUT("/api/budget", authAs("user-1"), UpdateBudget)
	return router
}

func TestUpdateBudgetRejectsNegativeIncome(t *testing.T) {
	w := performJSON(t, budgetRouter(), http.MethodPut, "/api/budget", gin.H{
		"income":   -500.0,
		"expenses": []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBudgetRejectsUnnamedExpense(t *testing.T) {
	w := performJSON(t, budgetRouter(), http.MethodPut, "/api/budget", gin.H{
		"income":   5000.0,
		"expenses": []gin.H{{"amount": 100.0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBudgetRejectsNonPositiveExpense(t *testing.T) {
	w := performJSON(t, budgetRouter(), http.MethodPut, "/api/budget", gin.H{
		"income":   5000.0,
		"expenses": []gin.H{{"name": "Renta", "amount": 0.0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBudgetRequiresAuth(t *testing.T) {
	router := gin.New()
	router.PUT("/api/budget", UpdateBudget)

	w := performJSON(t, router, http.MethodPut, "/api/budget", gin.H{"income": 100.0})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
