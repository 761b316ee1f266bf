package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetbox/internal/handlers"
	"budgetbox/internal/live"
	"budgetbox/internal/logger"
	"budgetbox/internal/middleware"
	"budgetbox/internal/models"
	"budgetbox/internal/services"
	"budgetbox/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB             *gorm.DB
	Router         *gin.Engine
	TransactionHub *live.Hub[models.Transaction]
	BillHub        *live.Hub[models.Bill]
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
		&models.Bill{},
		&models.Preference{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	transactionHub := live.NewHub(services.TransactionSnapshot(db))
	billHub := live.NewHub(services.BillSnapshot(db))

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, transactionHub)
	billService := services.NewBillService(db, billHub)
	summaryService := services.NewSummaryService(db)
	preferenceService := services.NewPreferenceService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	billHandler := handlers.NewBillHandler(billService, auditService)
	categoryHandler := handlers.NewCategoryHandler()
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
	streamHandler := handlers.NewStreamHandler(transactionHub, billHub)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.ListBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.POST("/:id/pay", billHandler.MarkBillPaid)
	bills.POST("/:id/advance", billHandler.AdvanceBill)

	categories := protected.Group("/categories")
	categories.GET("/transactions", categoryHandler.ListTransactionCategories)
	categories.GET("/bills", categoryHandler.ListBillCategories)
	categories.GET("/frequencies", categoryHandler.ListFrequencies)

	protected.GET("/summary", summaryHandler.GetSummary)

	preferences := protected.Group("/preferences")
	preferences.GET("/layout", preferenceHandler.GetLayout)
	preferences.PUT("/layout", preferenceHandler.SaveLayout)

	stream := protected.Group("/stream")
	stream.GET("/transactions", streamHandler.StreamTransactions)
	stream.GET("/bills", streamHandler.StreamBills)

	return &testApp{
		DB:             db,
		Router:         router,
		TransactionHub: transactionHub,
		BillHub:        billHub,
	}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(string)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string), result["refresh_token"].(string)
}

// createTransaction creates a transaction through the API and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token, txType, category, amount, date string) string {
	t.Helper()
	body := fmt.Sprintf(`{"type":%q,"category":%q,"amount":%q,"description":"integration test","date":%q}`,
		txType, category, amount, date)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return tx["id"].(string)
}

// createBill creates a bill through the API and returns its ID.
func (app *testApp) createBill(t *testing.T, token, name, category, amount, dueDate, frequency string) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"category":%q,"amount":%q,"due_date":%q,"frequency":%q}`,
		name, category, amount, dueDate, frequency)
	rec := app.request("POST", "/api/v1/bills", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bill failed: %d %s", rec.Code, rec.Body.String())
	}
	bill := parseJSON(t, rec)["bill"].(map[string]interface{})
	return bill["id"].(string)
}
