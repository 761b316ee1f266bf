package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/models"
	"budgetbox/internal/registry"
)

// CategoryHandler serves the built-in category and frequency registries
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// ListTransactionCategories returns the category registry for a transaction type
// @Summary     List transaction categories
// @Description Get the selectable categories for income or expense transactions
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Transaction type (income or expense)"
// @Success     200 {array} registry.Category "Categories"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/transactions [get]
func (h *CategoryHandler) ListTransactionCategories(c *gin.Context) {
	txType := models.TransactionType(c.Query("type"))
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		respondWithError(c, apperrors.ErrInvalidTransactionType)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": registry.TransactionCategories(txType)})
}

// ListBillCategories returns the bill category registry
// @Summary     List bill categories
// @Description Get the selectable categories for bills
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} registry.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/bills [get]
func (h *CategoryHandler) ListBillCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": registry.BillCategories()})
}

// ListFrequencies returns the bill frequency registry
// @Summary     List bill frequencies
// @Description Get the selectable payment frequencies for bills
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} registry.Frequency "Frequencies"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/frequencies [get]
func (h *CategoryHandler) ListFrequencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"frequencies": registry.Frequencies()})
}
