package models

import (
	"time"

	"gorm.io/gorm"
)

// BillFrequency represents how often a bill recurs
type BillFrequency string

const (
	BillFrequencyWeekly    BillFrequency = "weekly"
	BillFrequencyBiweekly  BillFrequency = "biweekly"
	BillFrequencyMonthly   BillFrequency = "monthly"
	BillFrequencyQuarterly BillFrequency = "quarterly"
	BillFrequencyYearly    BillFrequency = "yearly"
	BillFrequencyOneTime   BillFrequency = "one_time"
)

// BillStatus represents the payment state of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
)

// Bill represents a scheduled payment. Status only ever moves from pending
// to paid; advancing a recurring bill to its next cycle resets it to pending
// with a new due date.
type Bill struct {
	Base
	UserID      string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string        `gorm:"not null" json:"name"`
	Category    string        `gorm:"not null" json:"category"`
	Amount      float64       `gorm:"not null" json:"amount"`
	DueDate     time.Time     `gorm:"not null" json:"due_date"`
	Frequency   BillFrequency `gorm:"not null" json:"frequency"`
	IsRecurring bool          `gorm:"not null" json:"is_recurring"`
	Status      BillStatus    `gorm:"not null;default:pending" json:"status"`
	Description string        `json:"description"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
}

// BeforeSave keeps the derived is_recurring flag consistent with the frequency.
func (b *Bill) BeforeSave(tx *gorm.DB) error {
	b.IsRecurring = b.Frequency != BillFrequencyOneTime
	return nil
}
