package services

import (
	"time"

	"gorm.io/gorm"

	"budgetbox/internal/analytics"
	apperrors "budgetbox/internal/errors"
	"budgetbox/internal/live"
	"budgetbox/internal/models"
	"budgetbox/internal/registry"
)

// summaryService derives dashboard numbers from fresh record sets. It loads
// through the same snapshot loaders the live hubs use, so a summary always
// reflects what subscribers were last pushed.
type summaryService struct {
	loadTransactions live.Loader[models.Transaction]
	loadBills        live.Loader[models.Bill]
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{
		loadTransactions: TransactionSnapshot(db),
		loadBills:        BillSnapshot(db),
	}
}

// GetDashboardSummary computes all widget-ready numbers for a user as of now.
func (s *summaryService) GetDashboardSummary(userID string, now time.Time) (*DashboardSummary, error) {
	transactions, err := s.loadTransactions(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	bills, err := s.loadBills(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	summary := &DashboardSummary{
		TotalIncome:  analytics.SumByType(transactions, models.TransactionTypeIncome),
		TotalExpense: analytics.SumByType(transactions, models.TransactionTypeExpense),
		MonthIncome: analytics.Sum(transactions, func(t models.Transaction) bool {
			return t.Type == models.TransactionTypeIncome && analytics.InMonth(t.Date, thisMonth)
		}),
		MonthExpense: analytics.Sum(transactions, func(t models.Transaction) bool {
			return t.Type == models.TransactionTypeExpense && analytics.InMonth(t.Date, thisMonth)
		}),
		LastMonthIncome: analytics.Sum(transactions, func(t models.Transaction) bool {
			return t.Type == models.TransactionTypeIncome && analytics.InMonth(t.Date, lastMonth)
		}),
		LastMonthExpense: analytics.Sum(transactions, func(t models.Transaction) bool {
			return t.Type == models.TransactionTypeExpense && analytics.InMonth(t.Date, lastMonth)
		}),
		TotalBillsDue: analytics.TotalBillsDue(bills),
	}
	summary.IncomeChangePct = analytics.PercentChange(summary.MonthIncome, summary.LastMonthIncome)
	summary.ExpenseChangePct = analytics.PercentChange(summary.MonthExpense, summary.LastMonthExpense)

	for _, b := range bills {
		if analytics.IsOverdue(b, now) {
			summary.OverdueBills++
		}
		if analytics.IsUpcoming(b, now) {
			summary.UpcomingBills++
		}
	}

	summary.ExpenseBreakdown = expenseBreakdown(transactions)
	return summary, nil
}

// expenseBreakdown returns per-category expense shares in registry order.
// Categories with no spending are omitted; percentages are 0 when there is
// no expense total at all.
func expenseBreakdown(transactions []models.Transaction) []CategoryShare {
	totals := analytics.CategoryTotals(transactions, models.TransactionTypeExpense)
	total := analytics.SumByType(transactions, models.TransactionTypeExpense)

	shares := make([]CategoryShare, 0, len(totals))
	for _, c := range registry.TransactionCategories(models.TransactionTypeExpense) {
		amount, ok := totals[c.Name]
		if !ok {
			continue
		}
		shares = append(shares, CategoryShare{
			Category: c.Name,
			Amount:   amount,
			Percent:  analytics.PercentOfTotal(amount, total),
		})
	}
	return shares
}
