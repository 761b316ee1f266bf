package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"budgetbox/internal/middleware"
)

func setupCategoryRouter() *gin.Engine {
	handler := NewCategoryHandler()

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(injectUserID("user-123"))
	r.GET("/categories/transactions", handler.ListTransactionCategories)
	r.GET("/categories/bills", handler.ListBillCategories)
	r.GET("/categories/frequencies", handler.ListFrequencies)
	return r
}

func TestListTransactionCategories(t *testing.T) {
	r := setupCategoryRouter()

	t.Run("income categories", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/transactions?type=income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		categories, ok := result["categories"].([]interface{})
		if !ok {
			t.Fatalf("expected categories array, got %T", result["categories"])
		}
		if len(categories) != 5 {
			t.Errorf("expected 5 income categories, got %d", len(categories))
		}
		first, _ := categories[0].(map[string]interface{})
		if first["name"] != "Salary" {
			t.Errorf("expected first income category Salary, got %v", first["name"])
		}
	})

	t.Run("expense categories", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/transactions?type=expense", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		categories, _ := result["categories"].([]interface{})
		if len(categories) != 9 {
			t.Errorf("expected 9 expense categories, got %d", len(categories))
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/transactions?type=transfer", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_TRANSACTION_TYPE")
	})

	t.Run("missing type is rejected", func(t *testing.T) {
		rec := doRequest(r, http.MethodGet, "/categories/transactions", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestListBillCategories(t *testing.T) {
	r := setupCategoryRouter()

	rec := doRequest(r, http.MethodGet, "/categories/bills", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	categories, ok := result["categories"].([]interface{})
	if !ok {
		t.Fatalf("expected categories array, got %T", result["categories"])
	}
	if len(categories) != 9 {
		t.Errorf("expected 9 bill categories, got %d", len(categories))
	}
}

func TestListFrequencies(t *testing.T) {
	r := setupCategoryRouter()

	rec := doRequest(r, http.MethodGet, "/categories/frequencies", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	frequencies, ok := result["frequencies"].([]interface{})
	if !ok {
		t.Fatalf("expected frequencies array, got %T", result["frequencies"])
	}
	if len(frequencies) != 6 {
		t.Errorf("expected 6 frequencies, got %d", len(frequencies))
	}
}
