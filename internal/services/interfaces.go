package services

import (
	"time"

	"budgetbox/internal/models"
	"budgetbox/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.TransactionType
	Category *string
}

// TransactionUpdateFields holds the optional fields of a transaction update.
// Nil pointers leave the stored value unchanged.
type TransactionUpdateFields struct {
	Type        *models.TransactionType
	Category    *string
	Amount      *float64
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, txType models.TransactionType, category string, amount float64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// BillUpdateFields holds the optional fields of a bill update. Status is
// deliberately absent: the only status transition is MarkBillPaid.
type BillUpdateFields struct {
	Name        *string
	Category    *string
	Amount      *float64
	DueDate     *time.Time
	Frequency   *models.BillFrequency
	Description *string
}

// BillServicer defines the contract for bill-related business logic.
type BillServicer interface {
	CreateBill(userID, name, category string, amount float64, dueDate time.Time, frequency models.BillFrequency, description string) (*models.Bill, error)
	GetUserBills(userID string, page pagination.PageRequest, status *models.BillStatus) (*pagination.PageResponse[models.Bill], error)
	GetBillByID(userID, billID string) (*models.Bill, error)
	UpdateBill(userID, billID string, fields BillUpdateFields) (*models.Bill, error)
	DeleteBill(userID, billID string) error
	MarkBillPaid(userID, billID string) (*models.Bill, error)
	AdvanceRecurringBill(userID, billID string) (*models.Bill, error)
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// DashboardSummary contains the widget-ready numbers derived from a user's
// current transactions and bills.
type DashboardSummary struct {
	TotalIncome      float64         `json:"total_income"`
	TotalExpense     float64         `json:"total_expense"`
	MonthIncome      float64         `json:"month_income"`
	MonthExpense     float64         `json:"month_expense"`
	LastMonthIncome  float64         `json:"last_month_income"`
	LastMonthExpense float64         `json:"last_month_expense"`
	IncomeChangePct  float64         `json:"income_change_pct"`
	ExpenseChangePct float64         `json:"expense_change_pct"`
	TotalBillsDue    float64         `json:"total_bills_due"`
	OverdueBills     int             `json:"overdue_bills"`
	UpcomingBills    int             `json:"upcoming_bills"`
	ExpenseBreakdown []CategoryShare `json:"expense_breakdown"`
}

// SummaryServicer defines the contract for dashboard summary derivation.
type SummaryServicer interface {
	GetDashboardSummary(userID string, now time.Time) (*DashboardSummary, error)
}

// PreferenceServicer defines the contract for user dashboard preferences.
type PreferenceServicer interface {
	GetLayout(userID string) (*models.Preference, error)
	SaveLayout(userID, layout string) (*models.Preference, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
