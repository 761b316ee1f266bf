// Package registry holds the static category and frequency registries.
// The data is compile-time constant: there are no mutation operations, and
// the slice order is the order categories are rendered in selection grids.
package registry

import "budgetbox/internal/models"

// Category describes a selectable transaction or bill category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Frequency describes a bill recurrence option. Days is the fixed interval
// added to the due date on each cycle; one_time has no interval.
type Frequency struct {
	ID   models.BillFrequency `json:"id"`
	Name string               `json:"name"`
	Days int                  `json:"days"`
}

var incomeCategories = []Category{
	{ID: "salary", Name: "Salary", Icon: "💼", Color: "#10B981"},
	{ID: "freelance", Name: "Freelance", Icon: "💻", Color: "#3B82F6"},
	{ID: "investment", Name: "Investment", Icon: "📈", Color: "#8B5CF6"},
	{ID: "business", Name: "Business", Icon: "🏢", Color: "#F59E0B"},
	{ID: "other_income", Name: "Other Income", Icon: "💰", Color: "#06B6D4"},
}

var expenseCategories = []Category{
	{ID: "food", Name: "Food & Dining", Icon: "🍽️", Color: "#EF4444"},
	{ID: "transportation", Name: "Transportation", Icon: "🚗", Color: "#3B82F6"},
	{ID: "shopping", Name: "Shopping", Icon: "🛍️", Color: "#8B5CF6"},
	{ID: "bills", Name: "Bills", Icon: "📄", Color: "#F59E0B"},
	{ID: "entertainment", Name: "Entertainment", Icon: "🎬", Color: "#EC4899"},
	{ID: "health", Name: "Healthcare", Icon: "🏥", Color: "#10B981"},
	{ID: "education", Name: "Education", Icon: "📚", Color: "#6366F1"},
	{ID: "travel", Name: "Travel", Icon: "✈️", Color: "#06B6D4"},
	{ID: "other_expense", Name: "Other Expense", Icon: "💸", Color: "#6B7280"},
}

var billCategories = []Category{
	{ID: "utilities", Name: "Utilities", Icon: "⚡", Color: "#F59E0B"},
	{ID: "rent", Name: "Rent", Icon: "🏠", Color: "#3B82F6"},
	{ID: "insurance", Name: "Insurance", Icon: "🛡️", Color: "#10B981"},
	{ID: "subscription", Name: "Subscriptions", Icon: "📱", Color: "#8B5CF6"},
	{ID: "credit_card", Name: "Credit Card", Icon: "💳", Color: "#EF4444"},
	{ID: "loan", Name: "Loan", Icon: "🏦", Color: "#6366F1"},
	{ID: "internet", Name: "Internet", Icon: "🌐", Color: "#06B6D4"},
	{ID: "phone", Name: "Phone", Icon: "📞", Color: "#EC4899"},
	{ID: "other_bill", Name: "Other Bill", Icon: "📄", Color: "#6B7280"},
}

var frequencies = []Frequency{
	{ID: models.BillFrequencyWeekly, Name: "Weekly", Days: 7},
	{ID: models.BillFrequencyBiweekly, Name: "Bi-weekly", Days: 14},
	// Monthly is a fixed 30-day approximation; it does not track
	// variable month lengths.
	{ID: models.BillFrequencyMonthly, Name: "Monthly", Days: 30},
	{ID: models.BillFrequencyQuarterly, Name: "Quarterly", Days: 90},
	{ID: models.BillFrequencyYearly, Name: "Yearly", Days: 365},
	{ID: models.BillFrequencyOneTime, Name: "One Time", Days: 0},
}

// TransactionCategories returns the ordered categories for a transaction type.
// Unknown types return nil.
func TransactionCategories(t models.TransactionType) []Category {
	switch t {
	case models.TransactionTypeIncome:
		return incomeCategories
	case models.TransactionTypeExpense:
		return expenseCategories
	}
	return nil
}

// BillCategories returns the ordered bill categories.
func BillCategories() []Category {
	return billCategories
}

// Frequencies returns the ordered bill frequency options.
func Frequencies() []Frequency {
	return frequencies
}

// IsTransactionCategory reports whether name is a registered category display
// name for the given transaction type. Records store the display name.
func IsTransactionCategory(t models.TransactionType, name string) bool {
	for _, c := range TransactionCategories(t) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// IsBillCategory reports whether name is a registered bill category display name.
func IsBillCategory(name string) bool {
	for _, c := range billCategories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// FrequencyDays returns the recurrence interval in days for a frequency.
// The second return value is false for unknown frequencies.
func FrequencyDays(f models.BillFrequency) (int, bool) {
	for _, fr := range frequencies {
		if fr.ID == f {
			return fr.Days, true
		}
	}
	return 0, false
}
