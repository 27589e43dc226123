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

	"billow/internal/handlers"
	"billow/internal/logger"
	"billow/internal/middleware"
	"billow/internal/models"
	"billow/internal/services"
	"billow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
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
		&models.Bill{},
		&models.BillPayment{},
		&models.BillDeferment{},
		&models.Paycheck{},
		&models.Deposit{},
		&models.Gig{},
		&models.RecurringIncome{},
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

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	billService := services.NewBillService(db)
	incomeService := services.NewIncomeService(db)
	recurringService := services.NewRecurringService(db)
	plannerService := services.NewPlannerService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	billHandler := handlers.NewBillHandler(billService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, auditService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)

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

	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.GetBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.PUT("/:id", billHandler.UpdateBill)
	bills.DELETE("/:id", billHandler.DeleteBill)
	bills.PUT("/:id/deferred", billHandler.SetDeferredFlag)
	bills.POST("/:id/payments", billHandler.RecordPayment)
	bills.DELETE("/:id/payments/:payment_id", billHandler.DeletePayment)
	bills.POST("/:id/deferments", billHandler.DeferBill)
	bills.DELETE("/:id/deferments/:deferment_id", billHandler.ResolveDeferment)

	paychecks := protected.Group("/paychecks")
	paychecks.POST("", incomeHandler.CreatePaycheck)
	paychecks.GET("", incomeHandler.GetPaychecks)
	paychecks.PUT("/:id", incomeHandler.UpdatePaycheck)
	paychecks.DELETE("/:id", incomeHandler.DeletePaycheck)

	deposits := protected.Group("/deposits")
	deposits.POST("", incomeHandler.CreateDeposit)
	deposits.GET("", incomeHandler.GetDeposits)
	deposits.PUT("/:id", incomeHandler.UpdateDeposit)
	deposits.DELETE("/:id", incomeHandler.DeleteDeposit)

	gigs := protected.Group("/gigs")
	gigs.POST("", incomeHandler.CreateGig)
	gigs.GET("", incomeHandler.GetGigs)
	gigs.POST("/link", incomeHandler.LinkIncome)
	gigs.POST("/unlink", incomeHandler.UnlinkIncome)
	gigs.GET("/:id", incomeHandler.GetGig)
	gigs.PUT("/:id", incomeHandler.UpdateGig)
	gigs.DELETE("/:id", incomeHandler.DeleteGig)

	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.GET("/:id/preview", recurringHandler.PreviewRecurring)

	planner := protected.Group("/planner")
	planner.GET("/weeks", plannerHandler.GetWeeks)
	planner.GET("/unscheduled", plannerHandler.GetUnscheduled)

	return &testApp{DB: db, Router: router}
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
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(string)
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
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createBill creates a recurring bill with a due day and returns its ID.
func (app *testApp) createBill(t *testing.T, token, name string, amount int64, dueDay int) string {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"amount":%d,"due_day":%d}`, name, amount, dueDay)
	rec := app.request("POST", "/api/v1/bills", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create bill failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	bill := result["bill"].(map[string]interface{})
	return bill["id"].(string)
}
