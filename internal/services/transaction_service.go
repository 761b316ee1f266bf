package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/live"
	"budgetbox/internal/models"
	"budgetbox/internal/pagination"
	"budgetbox/internal/registry"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	notifier live.Notifier
}

// NewTransactionService creates a new TransactionServicer. The notifier is
// signalled after every committed write so live subscribers receive a fresh
// snapshot; it may be nil in tests.
func NewTransactionService(db *gorm.DB, notifier live.Notifier) TransactionServicer {
	return &transactionService{db: db, notifier: notifier}
}

func (s *transactionService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Notify(userID)
	}
}

// CreateTransaction creates a new income or expense record for a user.
func (s *transactionService) CreateTransaction(
	userID string,
	txType models.TransactionType,
	category string,
	amount float64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !registry.IsTransactionCategory(txType, category) {
		return nil, apperrors.ErrUnknownCategory
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify(userID)
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, most recent date first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction updates an existing transaction. The final type/category
// combination must remain valid against the registry.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	finalType := transaction.Type
	if fields.Type != nil {
		if *fields.Type != models.TransactionTypeIncome && *fields.Type != models.TransactionTypeExpense {
			return nil, apperrors.ErrInvalidTransactionType
		}
		finalType = *fields.Type
	}
	finalCategory := transaction.Category
	if fields.Category != nil {
		finalCategory = *fields.Category
	}
	if !registry.IsTransactionCategory(finalType, finalCategory) {
		return nil, apperrors.ErrUnknownCategory
	}

	updates := map[string]interface{}{
		"type":     finalType,
		"category": finalCategory,
	}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.Description != nil {
		if strings.TrimSpace(*fields.Description) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
		}
		updates["description"] = *fields.Description
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}

	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify(userID)
	return transaction, nil
}

// DeleteTransaction deletes a transaction
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.notify(userID)
	return nil
}
