package testutil_test

import (
	"testing"
	"time"

	"budgetbox/internal/errors"
	"budgetbox/internal/models"
	"budgetbox/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "transactions", "bills", "preferences", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}

	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salary", 1000)
	if tx.Amount != 1000 {
		t.Errorf("expected amount 1000, got %f", tx.Amount)
	}

	bill := testutil.CreateTestBill(t, db, user.ID, models.BillFrequencyMonthly, time.Now().AddDate(0, 0, 7))
	if bill.Status != models.BillStatusPending {
		t.Errorf("expected pending bill, got %s", bill.Status)
	}
	if !bill.IsRecurring {
		t.Error("monthly bill should be recurring")
	}

	pref := testutil.CreateTestPreference(t, db, user.ID, `{"widgets":[]}`)
	if pref.Layout != `{"widgets":[]}` {
		t.Errorf("unexpected layout %q", pref.Layout)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrBillNotFound, "custom message")
	testutil.AssertAppError(t, err, "BILL_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
