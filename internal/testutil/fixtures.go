package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetbox/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type, category and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, userID, txType, category, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction dated on the given day.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBill creates a pending bill with the given frequency and due date.
func CreateTestBill(t *testing.T, db *gorm.DB, userID string, frequency models.BillFrequency, dueDate time.Time) *models.Bill {
	t.Helper()
	return CreateTestBillWithAmount(t, db, userID, frequency, dueDate, 50.00)
}

// CreateTestBillWithAmount creates a pending bill with the given amount.
func CreateTestBillWithAmount(t *testing.T, db *gorm.DB, userID string, frequency models.BillFrequency, dueDate time.Time, amount float64) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Bill %d", nextID()),
		Category:  "Utilities",
		Amount:    amount,
		DueDate:   dueDate,
		Frequency: frequency,
		Status:    models.BillStatusPending,
	}
	if err := db.Create(bill).Error; err != nil {
		t.Fatalf("failed to create test bill: %v", err)
	}
	return bill
}

// CreateTestPreference creates a preference row with the given layout JSON.
func CreateTestPreference(t *testing.T, db *gorm.DB, userID, layout string) *models.Preference {
	t.Helper()

	pref := &models.Preference{
		UserID: userID,
		Layout: layout,
	}
	if err := db.Create(pref).Error; err != nil {
		t.Fatalf("failed to create test preference: %v", err)
	}
	return pref
}
