// Package forms validates transaction and bill submission forms. Validation
// is pure: each function returns a field→message map (empty means valid) and
// the caller decides whether to block the write.
package forms

import (
	"strconv"
	"strings"
	"time"

	"budgetbox/internal/models"
	"budgetbox/internal/registry"
)

// TransactionForm carries raw form values for a transaction submission.
type TransactionForm struct {
	Type        models.TransactionType
	Category    string
	Amount      string
	Description string
	Date        string
}

// BillForm carries raw form values for a bill submission.
type BillForm struct {
	Name        string
	Category    string
	Amount      string
	DueDate     string
	Frequency   models.BillFrequency
	Description string
}

// ValidateTransaction checks every field independently and returns all
// failures at once.
func ValidateTransaction(f TransactionForm) map[string]string {
	errs := make(map[string]string)

	if f.Category == "" || !registry.IsTransactionCategory(f.Type, f.Category) {
		errs["category"] = "Please select a category"
	}
	if !amountValid(f.Amount) {
		errs["amount"] = "Please enter a valid amount"
	}
	if strings.TrimSpace(f.Description) == "" {
		errs["description"] = "Please enter a description"
	}
	if !dateValid(f.Date) {
		errs["date"] = "Please select a date"
	}

	return errs
}

// ValidateBill checks every field independently and returns all failures
// at once.
func ValidateBill(f BillForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Please enter a bill name"
	}
	if f.Category == "" || !registry.IsBillCategory(f.Category) {
		errs["category"] = "Please select a category"
	}
	if !amountValid(f.Amount) {
		errs["amount"] = "Please enter a valid amount"
	}
	if !dateValid(f.DueDate) {
		errs["dueDate"] = "Please select a due date"
	}
	if _, ok := registry.FrequencyDays(f.Frequency); !ok {
		errs["frequency"] = "Please select a frequency"
	}

	return errs
}

// SanitizeAmount strips everything except digits and a single decimal point.
// Extra decimal points after the first are dropped, matching the input
// filtering the submission form applies while typing. A leading minus sign
// survives so negative input still fails the positivity check instead of
// being silently flipped positive.
func SanitizeAmount(s string) string {
	trimmed := strings.TrimSpace(s)
	var b strings.Builder
	seenPoint := false
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	if strings.HasPrefix(trimmed, "-") {
		return "-" + b.String()
	}
	return b.String()
}

// ParseAmount sanitizes and parses an amount string. The error is non-nil
// when the sanitized value does not parse or is not strictly positive.
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(SanitizeAmount(s), 64)
}

// ParseDate parses a form date value, accepting a plain calendar date or a
// full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func amountValid(s string) bool {
	v, err := ParseAmount(s)
	return err == nil && v > 0
}

func dateValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}
