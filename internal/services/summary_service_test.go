package services

import (
	"math"
	"testing"
	"time"

	"budgetbox/internal/models"
	"budgetbox/internal/testutil"
)

func TestGetDashboardSummary(t *testing.T) {
	t.Run("totals_and_breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeIncome, "Salary", 1000, now)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food & Dining", 300, now)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food & Dining", 200, now.AddDate(0, 0, -1))
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Transportation", 100, now)

		summary, err := svc.GetDashboardSummary(user.ID, now)
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 1000 {
			t.Errorf("expected total income 1000, got %f", summary.TotalIncome)
		}
		if summary.TotalExpense != 600 {
			t.Errorf("expected total expense 600, got %f", summary.TotalExpense)
		}
		if summary.MonthExpense != 600 {
			t.Errorf("expected month expense 600, got %f", summary.MonthExpense)
		}

		if len(summary.ExpenseBreakdown) != 2 {
			t.Fatalf("expected 2 breakdown entries, got %d", len(summary.ExpenseBreakdown))
		}
		// Registry order puts Food & Dining before Transportation.
		food := summary.ExpenseBreakdown[0]
		if food.Category != "Food & Dining" || food.Amount != 500 {
			t.Errorf("expected Food & Dining 500, got %s %f", food.Category, food.Amount)
		}
		wantPct := 500.0 / 600.0 * 100.0
		if math.Abs(food.Percent-wantPct) > 1e-9 {
			t.Errorf("expected percent %f, got %f", wantPct, food.Percent)
		}
	})

	t.Run("month_over_month_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		lastMonth := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food & Dining", 100, lastMonth)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food & Dining", 150, now)

		summary, err := svc.GetDashboardSummary(user.ID, now)
		testutil.AssertNoError(t, err)

		if summary.ExpenseChangePct != 50 {
			t.Errorf("expected expense change 50%%, got %f", summary.ExpenseChangePct)
		}
	})

	t.Run("no_previous_month_yields_zero_change", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		testutil.CreateTestTransactionOn(t, db, user.ID, models.TransactionTypeExpense, "Food & Dining", 150, now)

		summary, err := svc.GetDashboardSummary(user.ID, now)
		testutil.AssertNoError(t, err)

		if summary.ExpenseChangePct != 0 {
			t.Errorf("expected 0%% change with no prior month, got %f", summary.ExpenseChangePct)
		}
		if math.IsNaN(summary.ExpenseChangePct) || math.IsInf(summary.ExpenseChangePct, 0) {
			t.Error("percent change should never be NaN or Inf")
		}
	})

	t.Run("bill_counters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		billSvc := NewBillService(db, nil)
		user := testutil.CreateTestUser(t, db)

		now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
		overdue := testutil.CreateTestBillWithAmount(t, db, user.ID, models.BillFrequencyMonthly, now.AddDate(0, 0, -3), 40)
		testutil.CreateTestBillWithAmount(t, db, user.ID, models.BillFrequencyMonthly, now.AddDate(0, 0, 3), 60)
		testutil.CreateTestBillWithAmount(t, db, user.ID, models.BillFrequencyMonthly, now.AddDate(0, 0, 20), 100)

		summary, err := svc.GetDashboardSummary(user.ID, now)
		testutil.AssertNoError(t, err)

		if summary.OverdueBills != 1 {
			t.Errorf("expected 1 overdue bill, got %d", summary.OverdueBills)
		}
		if summary.UpcomingBills != 1 {
			t.Errorf("expected 1 upcoming bill, got %d", summary.UpcomingBills)
		}
		if summary.TotalBillsDue != 200 {
			t.Errorf("expected total due 200, got %f", summary.TotalBillsDue)
		}

		// Paying the overdue bill removes it from every pending-based number.
		_, err = billSvc.MarkBillPaid(user.ID, overdue.ID)
		testutil.AssertNoError(t, err)

		summary, err = svc.GetDashboardSummary(user.ID, now)
		testutil.AssertNoError(t, err)
		if summary.OverdueBills != 0 {
			t.Errorf("expected no overdue bills after paying, got %d", summary.OverdueBills)
		}
		if summary.TotalBillsDue != 160 {
			t.Errorf("expected total due 160 after paying, got %f", summary.TotalBillsDue)
		}
	})

	t.Run("empty_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSummaryService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.GetDashboardSummary(user.ID, time.Now())
		testutil.AssertNoError(t, err)

		if summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.TotalBillsDue != 0 {
			t.Error("expected all totals to be zero for a fresh user")
		}
		if len(summary.ExpenseBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %d entries", len(summary.ExpenseBreakdown))
		}
	})
}
