package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"budgetbox/internal/analytics"
	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/live"
	"budgetbox/internal/models"
	"budgetbox/internal/pagination"
	"budgetbox/internal/registry"
)

// billService handles bill-related business logic.
type billService struct {
	db       *gorm.DB
	notifier live.Notifier
}

// NewBillService creates a new BillServicer. The notifier is signalled after
// every committed write; it may be nil in tests.
func NewBillService(db *gorm.DB, notifier live.Notifier) BillServicer {
	return &billService{db: db, notifier: notifier}
}

func (s *billService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Notify(userID)
	}
}

// CreateBill creates a new bill. Status is always pending on creation
// regardless of what the caller submits.
func (s *billService) CreateBill(
	userID, name, category string,
	amount float64,
	dueDate time.Time,
	frequency models.BillFrequency,
	description string,
) (*models.Bill, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill name is required")
	}
	if !registry.IsBillCategory(category) {
		return nil, apperrors.ErrUnknownCategory
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	if _, ok := registry.FrequencyDays(frequency); !ok {
		return nil, apperrors.ErrUnknownFrequency
	}

	bill := &models.Bill{
		UserID:      userID,
		Name:        name,
		Category:    category,
		Amount:      amount,
		DueDate:     dueDate,
		Frequency:   frequency,
		Status:      models.BillStatusPending,
		Description: description,
	}

	if err := s.db.Create(bill).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify(userID)
	return bill, nil
}

// GetUserBills retrieves a paginated list of the user's bills ordered by due
// date ascending, optionally filtered by status.
func (s *billService) GetUserBills(userID string, page pagination.PageRequest, status *models.BillStatus) (*pagination.PageResponse[models.Bill], error) {
	page.Defaults()

	base := s.db.Model(&models.Bill{}).Where("user_id = ?", userID)
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bills []models.Bill
	if err := base.Scopes(pagination.Paginate(page)).
		Order("due_date ASC").
		Find(&bills).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(bills, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBillByID retrieves a bill by ID for a specific user
func (s *billService) GetBillByID(userID, billID string) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Where("id = ? AND user_id = ?", billID, userID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBillNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bill, nil
}

// UpdateBill updates an existing bill's editable fields. Status cannot be
// changed here: the only transition is MarkBillPaid.
func (s *billService) UpdateBill(userID, billID string, fields BillUpdateFields) (*models.Bill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		if strings.TrimSpace(*fields.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bill name is required")
		}
		updates["name"] = *fields.Name
	}
	if fields.Category != nil {
		if !registry.IsBillCategory(*fields.Category) {
			return nil, apperrors.ErrUnknownCategory
		}
		updates["category"] = *fields.Category
	}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.DueDate != nil {
		updates["due_date"] = *fields.DueDate
	}
	if fields.Frequency != nil {
		if _, ok := registry.FrequencyDays(*fields.Frequency); !ok {
			return nil, apperrors.ErrUnknownFrequency
		}
		updates["frequency"] = *fields.Frequency
		updates["is_recurring"] = *fields.Frequency != models.BillFrequencyOneTime
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(bill).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.notify(userID)
	}

	return bill, nil
}

// DeleteBill deletes a bill
func (s *billService) DeleteBill(userID, billID string) error {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(bill).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify(userID)
	return nil
}

// MarkBillPaid transitions a pending bill to paid and records the payment
// time. The transition is one-directional: a paid bill stays paid.
func (s *billService) MarkBillPaid(userID, billID string) (*models.Bill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status == models.BillStatusPaid {
		return nil, apperrors.ErrBillAlreadyPaid
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":  models.BillStatusPaid,
		"paid_at": now,
	}
	if err := s.db.Model(bill).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bill.Status = models.BillStatusPaid
	bill.PaidAt = &now

	s.notify(userID)
	return bill, nil
}

// AdvanceRecurringBill moves a recurring bill to its next cycle: the due
// date advances by the frequency's fixed interval and the bill resets to
// pending. Advancement is never applied automatically; callers invoke this
// explicitly.
func (s *billService) AdvanceRecurringBill(userID, billID string) (*models.Bill, error) {
	bill, err := s.GetBillByID(userID, billID)
	if err != nil {
		return nil, err
	}

	next := analytics.NextDueDate(bill.DueDate, bill.Frequency)
	if next == nil {
		return nil, apperrors.ErrBillNotRecurring
	}

	updates := map[string]interface{}{
		"due_date": *next,
		"status":   models.BillStatusPending,
		"paid_at":  nil,
	}
	if err := s.db.Model(bill).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bill.DueDate = *next
	bill.Status = models.BillStatusPending
	bill.PaidAt = nil

	s.notify(userID)
	return bill, nil
}
