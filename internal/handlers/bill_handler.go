package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/forms"
	"budgetbox/internal/models"
	"budgetbox/internal/pagination"
	"budgetbox/internal/services"
)

// BillHandler handles bill-related requests
type BillHandler struct {
	billService  services.BillServicer
	auditService services.AuditServicer
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService services.BillServicer, auditService services.AuditServicer) *BillHandler {
	return &BillHandler{
		billService:  billService,
		auditService: auditService,
	}
}

// CreateBillRequest represents the bill creation payload. Amount and due date
// arrive as strings and go through form validation for per-field messages.
type CreateBillRequest struct {
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	Amount      string               `json:"amount"`
	DueDate     string               `json:"due_date"`
	Frequency   models.BillFrequency `json:"frequency" binding:"required,bill_frequency"`
	Description string               `json:"description"`
}

// UpdateBillRequest represents the bill update payload
type UpdateBillRequest struct {
	Name        *string               `json:"name"`
	Category    *string               `json:"category"`
	Amount      *float64              `json:"amount" binding:"omitempty,gt=0"`
	DueDate     *string               `json:"due_date"`
	Frequency   *models.BillFrequency `json:"frequency" binding:"omitempty,bill_frequency"`
	Description *string               `json:"description"`
}

// CreateBill handles bill creation
// @Summary     Create a bill
// @Description Add a new bill with a due date and payment frequency
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBillRequest true "Bill data"
// @Success     201 {object} models.Bill "Bill created"
// @Failure     400 {object} ValidationErrorResponse "Validation failed"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [post]
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	form := forms.BillForm{
		Name:        req.Name,
		Category:    req.Category,
		Amount:      forms.SanitizeAmount(req.Amount),
		DueDate:     req.DueDate,
		Frequency:   req.Frequency,
		Description: req.Description,
	}
	if fieldErrors := forms.ValidateBill(form); len(fieldErrors) > 0 {
		respondWithFieldErrors(c, fieldErrors)
		return
	}

	amount, err := forms.ParseAmount(form.Amount)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount"))
		return
	}
	dueDate, err := forms.ParseDate(form.DueDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid due date"))
		return
	}

	bill, err := h.billService.CreateBill(userID, req.Name, req.Category, amount, dueDate, req.Frequency, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "bill.create", "bill", bill.ID, c.ClientIP(), map[string]interface{}{
		"name":      bill.Name,
		"amount":    bill.Amount,
		"frequency": bill.Frequency,
	})

	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}

// ListBills handles listing the user's bills
// @Summary     List bills
// @Description Get the user's bills ordered by due date, optionally filtered by status
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Param       status query string false "Filter by status (pending or paid)"
// @Success     200 {object} pagination.PageResponse[models.Bill] "Bills"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills [get]
func (h *BillHandler) ListBills(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	var status *models.BillStatus
	if v := c.Query("status"); v != "" {
		billStatus := models.BillStatus(v)
		if billStatus != models.BillStatusPending && billStatus != models.BillStatusPaid {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid status filter"))
			return
		}
		status = &billStatus
	}

	result, err := h.billService.GetUserBills(userID, page, status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetBill handles fetching a single bill
// @Summary     Get a bill
// @Description Get one of the user's bills by ID
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.Bill "Bill"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [get]
func (h *BillHandler) GetBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.GetBillByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// UpdateBill handles updating a bill
// @Summary     Update a bill
// @Description Update fields of one of the user's bills
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Param       request body UpdateBillRequest true "Fields to update"
// @Success     200 {object} models.Bill "Bill updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [put]
func (h *BillHandler) UpdateBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.BillUpdateFields{
		Name:        req.Name,
		Category:    req.Category,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		Description: req.Description,
	}
	if req.DueDate != nil {
		t, err := parseFlexibleTime(*req.DueDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid due date"))
			return
		}
		fields.DueDate = &t
	}

	bill, err := h.billService.UpdateBill(userID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "bill.update", "bill", bill.ID, c.ClientIP(), map[string]interface{}{
		"name":   bill.Name,
		"amount": bill.Amount,
	})

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill handles deleting a bill
// @Summary     Delete a bill
// @Description Delete one of the user's bills
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} MessageResponse "Bill deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id} [delete]
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	billID := c.Param("id")
	if err := h.billService.DeleteBill(userID, billID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "bill.delete", "bill", billID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "bill deleted"})
}

// MarkBillPaid handles marking a bill as paid
// @Summary     Mark a bill paid
// @Description Mark a pending bill as paid
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.Bill "Bill marked paid"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     409 {object} ErrorResponse "Bill already paid"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/pay [post]
func (h *BillHandler) MarkBillPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.MarkBillPaid(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "bill.pay", "bill", bill.ID, c.ClientIP(), map[string]interface{}{
		"amount": bill.Amount,
	})

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}

// AdvanceBill handles rolling a recurring bill to its next due date
// @Summary     Advance a recurring bill
// @Description Move a recurring bill to its next due date and reset it to pending
// @Tags        bills
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Bill ID"
// @Success     200 {object} models.Bill "Bill advanced"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Bill not found"
// @Failure     400 {object} ErrorResponse "Bill is not recurring"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /bills/{id}/advance [post]
func (h *BillHandler) AdvanceBill(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	bill, err := h.billService.AdvanceRecurringBill(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "bill.advance", "bill", bill.ID, c.ClientIP(), map[string]interface{}{
		"due_date": bill.DueDate,
	})

	c.JSON(http.StatusOK, gin.H{"bill": bill})
}
