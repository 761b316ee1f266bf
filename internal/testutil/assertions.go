package testutil

import (
	"errors"
	"testing"

	apperrors "budgetbox/internal/errors"
)

// AssertAppError checks that err unwraps to an *AppError carrying wantCode.
func AssertAppError(t *testing.T, err error, wantCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", wantCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != wantCode {
		t.Errorf("expected error code %q, got %q (message: %s)", wantCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
