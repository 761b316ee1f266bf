// Package analytics implements the pure aggregation functions the dashboard
// widgets are derived from. Every function takes a freshly delivered record
// set and returns plain numbers; nothing here touches the database.
package analytics

import (
	"time"

	"budgetbox/internal/models"
	"budgetbox/internal/registry"
)

// Sum adds up the amounts of all transactions satisfying pred.
// An empty or nil slice sums to 0.
func Sum(transactions []models.Transaction, pred func(models.Transaction) bool) float64 {
	var total float64
	for _, t := range transactions {
		if pred(t) {
			total += t.Amount
		}
	}
	return total
}

// SumByType adds up the amounts of all transactions of the given type.
func SumByType(transactions []models.Transaction, txType models.TransactionType) float64 {
	return Sum(transactions, func(t models.Transaction) bool { return t.Type == txType })
}

// CategoryTotals accumulates amounts per category for transactions of the
// given type. The map's totals sum to the same value as SumByType.
func CategoryTotals(transactions []models.Transaction, txType models.TransactionType) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type == txType {
			totals[t.Category] += t.Amount
		}
	}
	return totals
}

// NextDueDate returns the next due date for a recurring bill, or nil for
// one_time and unknown frequencies. Each frequency advances by its fixed
// registry day count, so monthly is a 30-day approximation rather than a
// calendar month.
func NextDueDate(due time.Time, frequency models.BillFrequency) *time.Time {
	days, ok := registry.FrequencyDays(frequency)
	if !ok || days == 0 {
		return nil
	}
	next := due.AddDate(0, 0, days)
	return &next
}

// TotalBillsDue sums the amounts of pending bills. Paid bills are excluded
// regardless of due date.
func TotalBillsDue(bills []models.Bill) float64 {
	var total float64
	for _, b := range bills {
		if b.Status == models.BillStatusPending {
			total += b.Amount
		}
	}
	return total
}

// IsOverdue reports whether a bill is pending with a due date in the past.
func IsOverdue(b models.Bill, now time.Time) bool {
	return b.Status == models.BillStatusPending && daysUntil(b.DueDate, now) < 0
}

// IsUpcoming reports whether a bill is pending and due within the next week.
func IsUpcoming(b models.Bill, now time.Time) bool {
	if b.Status != models.BillStatusPending {
		return false
	}
	d := daysUntil(b.DueDate, now)
	return d >= 0 && d <= 7
}

// PercentChange returns the percentage change from previous to current,
// or 0 when previous is 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// PercentOfTotal returns amount/total as a percentage, or 0 when total is 0.
func PercentOfTotal(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return amount / total * 100
}

// InMonth reports whether d falls in the same calendar month as ref.
func InMonth(d, ref time.Time) bool {
	return d.Year() == ref.Year() && d.Month() == ref.Month()
}
