package services

import (
	"sort"

	"gorm.io/gorm"

	"budgetbox/internal/live"
	"budgetbox/internal/models"
)

// TransactionSnapshot returns a snapshot loader for a user's transactions.
// The query itself is unordered (equality on user_id only, no composite
// index needed); the sort by date descending is applied here after every
// fetch, as consumers of the live stream expect.
func TransactionSnapshot(db *gorm.DB) live.Loader[models.Transaction] {
	return func(userID string) ([]models.Transaction, error) {
		var transactions []models.Transaction
		if err := db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
			return nil, err
		}
		sort.SliceStable(transactions, func(i, j int) bool {
			return transactions[i].Date.After(transactions[j].Date)
		})
		return transactions, nil
	}
}

// BillSnapshot returns a snapshot loader for a user's bills, sorted by due
// date ascending after the unordered fetch.
func BillSnapshot(db *gorm.DB) live.Loader[models.Bill] {
	return func(userID string) ([]models.Bill, error) {
		var bills []models.Bill
		if err := db.Where("user_id = ?", userID).Find(&bills).Error; err != nil {
			return nil, err
		}
		sort.SliceStable(bills, func(i, j int) bool {
			return bills[i].DueDate.Before(bills[j].DueDate)
		})
		return bills, nil
	}
}
