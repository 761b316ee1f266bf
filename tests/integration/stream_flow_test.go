package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// closeNotifyRecorder adds the http.CloseNotifier method gin's Stream requires;
// httptest.ResponseRecorder alone does not implement it.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

// streamRequest opens an SSE stream with a deadline so the handler's loop exits.
func (app *testApp) streamRequest(path, token string, timeout time.Duration) *httptest.ResponseRecorder {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool)}
	app.Router.ServeHTTP(rec, req)
	return rec.ResponseRecorder
}

func TestStreamFlow_TransactionSnapshot(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "stream@test.com", "password123")

	app.createTransaction(t, token, "income", "Freelance", "350.00", "2026-08-20")

	rec := app.streamRequest("/api/v1/stream/transactions", token, 200*time.Millisecond)
	if rec.Code != http.StatusOK {
		t.Fatalf("stream failed: %d %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event:snapshot") {
		t.Errorf("expected snapshot event, got %q", body)
	}
	if !strings.Contains(body, "Freelance") {
		t.Errorf("expected created transaction in snapshot, got %q", body)
	}
}

func TestStreamFlow_NotifyAfterWrite(t *testing.T) {
	app := setupApp(t)
	token, _, userID := app.registerUser(t, "notify@test.com", "password123")

	// Subscribe directly on the hub the write path notifies
	sub, err := app.BillHub.Subscribe(userID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer sub.Unsubscribe()

	// Initial snapshot is empty
	select {
	case snap := <-sub.Snapshots():
		if len(snap) != 0 {
			t.Fatalf("expected empty initial snapshot, got %d bills", len(snap))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial snapshot")
	}

	// Creating a bill over the API pushes a fresh snapshot
	app.createBill(t, token, "Water", "Utilities", "25.00", "2026-09-10", "monthly")

	select {
	case snap := <-sub.Snapshots():
		if len(snap) != 1 {
			t.Fatalf("expected 1 bill in snapshot, got %d", len(snap))
		}
		if snap[0].Name != "Water" {
			t.Errorf("expected Water bill, got %s", snap[0].Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot after create")
	}
}

func TestStreamFlow_RequiresAuth(t *testing.T) {
	app := setupApp(t)

	rec := app.streamRequest("/api/v1/stream/transactions", "", 200*time.Millisecond)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
