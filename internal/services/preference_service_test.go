package services

import (
	"testing"

	"budgetbox/internal/testutil"
)

func TestGetLayout(t *testing.T) {
	t.Run("default_before_first_save", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		pref, err := svc.GetLayout(user.ID)
		testutil.AssertNoError(t, err)
		if pref.Layout != "{}" {
			t.Errorf("expected default layout, got %q", pref.Layout)
		}
	})

	t.Run("returns_saved_layout", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPreference(t, db, user.ID, `{"widgets":["summary"]}`)

		pref, err := svc.GetLayout(user.ID)
		testutil.AssertNoError(t, err)
		if pref.Layout != `{"widgets":["summary"]}` {
			t.Errorf("unexpected layout %q", pref.Layout)
		}
	})
}

func TestSaveLayout(t *testing.T) {
	t.Run("creates_then_updates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveLayout(user.ID, `{"a":1}`)
		testutil.AssertNoError(t, err)

		pref, err := svc.SaveLayout(user.ID, `{"a":2}`)
		testutil.AssertNoError(t, err)
		if pref.Layout != `{"a":2}` {
			t.Errorf("expected updated layout, got %q", pref.Layout)
		}

		// Still exactly one row for the user.
		var count int64
		if err := db.Table("preferences").Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 preference row, got %d", count)
		}
	})

	t.Run("rejects_invalid_json", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SaveLayout(user.ID, `{not json`)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
