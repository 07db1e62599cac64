package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"inventori/internal/handlers"
	"inventori/internal/middleware"
	"inventori/internal/models"
	"inventori/internal/repositories"
	"inventori/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test_jwt_secret"

var dbCounter int64

// setupApp builds the full request pipeline against a fresh in-memory SQLite
// database, mirroring the wiring in main. Dev mode is off so the role
// elevation rule behaves as in production.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	// SQLite allows a single writer; one pooled connection keeps concurrent
	// requests on the constraint path instead of failing with a busy error.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	authService := services.NewAuthService(userRepo, testSecret, 24*time.Hour, false)
	productService := services.NewProductService(productRepo, nil)

	authHandler := handlers.NewAuthHandler(authService, userRepo)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "OK"})
	})

	authRequired := middleware.AuthRequired(authService, userRepo)
	api := app.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"), authRequired)
	productHandler.RegisterRoutes(api, authRequired)
	root := app.Group("")
	authHandler.RegisterRoutes(root, authRequired)
	productHandler.RegisterRoutes(root, authRequired)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})

	return app
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON performs a JSON request against the app and decodes the response
// envelope into a map.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// registerAndLogin creates a user and returns a bearer token for it.
func registerAndLogin(t *testing.T, app *fiber.App, username, role string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": "password123"}
	if role != "" {
		body["role"] = role
	}
	status, resp := doJSON(t, app, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, status)
	token, _ := resp["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

// productBody returns a valid create-product payload.
func productBody(name, sku string, quantity int, price float64) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"type":     "Hardware",
		"sku":      sku,
		"quantity": quantity,
		"price":    price,
	}
}

func createProduct(t *testing.T, app *fiber.App, token string, body map[string]interface{}) string {
	t.Helper()
	status, resp := doJSON(t, app, http.MethodPost, "/products", token, body)
	require.Equal(t, http.StatusCreated, status)
	id, _ := resp["product_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestRegister(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["access_token"])
	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "testuser", user["username"])
	assert.Equal(t, models.RoleUser, user["role"])

	// Duplicate username loses with a conflict.
	status, resp = doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "testuser",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Username already exists", resp["message"])
}

func TestRegister_InvalidInput(t *testing.T) {
	app := setupApp(t)

	// Missing password.
	status, _ := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "testuser",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Bad username characters.
	status, resp := doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "bad user!",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["message"], "3-30 characters")

	// Too-short password.
	status, resp = doJSON(t, app, http.MethodPost, "/register", "", map[string]string{
		"username": "testuser",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp["message"], "at least 6 characters")
}

func TestLogin_UniformFailureMessage(t *testing.T) {
	app := setupApp(t)
	registerAndLogin(t, app, "alice", "")

	status, wrongPass := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"username": "alice",
		"password": "not the password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, unknownUser := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"username": "nosuchuser",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Wrong password and unknown user must be indistinguishable.
	assert.Equal(t, wrongPass["message"], unknownUser["message"])
	assert.Equal(t, "Invalid credentials", wrongPass["message"])
}

func TestLogin_Success(t *testing.T) {
	app := setupApp(t)
	registerAndLogin(t, app, "alice", "")

	status, resp := doJSON(t, app, http.MethodPost, "/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp["access_token"])

	token := resp["access_token"].(string)
	status, me := doJSON(t, app, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", me["user"].(map[string]interface{})["username"])
}

func TestAuthGate_TokenFailures(t *testing.T) {
	app := setupApp(t)

	// No token at all.
	status, resp := doJSON(t, app, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Access denied. No token provided.", resp["message"])

	// Garbage token.
	status, resp = doJSON(t, app, http.MethodGet, "/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token is not valid.", resp["message"])

	// Expired token gets its own message.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	status, resp = doJSON(t, app, http.MethodGet, "/me", expiredString, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token expired. Please login again.", resp["message"])

	// A signed token whose subject no longer exists is stale.
	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "deleted-user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	staleString, err := stale.SignedString([]byte(testSecret))
	require.NoError(t, err)
	status, resp = doJSON(t, app, http.MethodGet, "/me", staleString, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token is not valid. User not found.", resp["message"])
}

func TestProductRoutesRequireAuth(t *testing.T) {
	app := setupApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/products"},
		{http.MethodPost, "/products"},
		{http.MethodGet, "/products/analytics"},
		{http.MethodGet, "/api/products"},
	} {
		status, resp := doJSON(t, app, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", route.method, route.path)
		assert.Equal(t, false, resp["success"])
	}
}

func TestLogout(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	status, resp := doJSON(t, app, http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	// Tokens are stateless: the token still works until it expires.
	status, _ = doJSON(t, app, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProductCreate(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	status, resp := doJSON(t, app, http.MethodPost, "/products", token, productBody("Widget", "wid-001", 5, 9.99))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["product_id"])

	product := resp["product"].(map[string]interface{})
	// SKU is normalized to upper case at the storage boundary.
	assert.Equal(t, "WID-001", product["sku"])
	assert.NotEmpty(t, product["createdBy"])
}

func TestProductCreate_CollectsAllValidationErrors(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	// Only the name is present: type, sku, quantity and price must all be
	// reported in a single response.
	status, resp := doJSON(t, app, http.MethodPost, "/products", token, map[string]interface{}{
		"name": "Widget",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", resp["message"])
	errs := resp["errors"].([]interface{})
	assert.Len(t, errs, 4)
}

func TestProductCreate_DuplicateSKU(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))

	// Same SKU in different case still collides.
	status, resp := doJSON(t, app, http.MethodPost, "/products", token, productBody("Other", "wid-001", 1, 1))
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "SKU already exists", resp["message"])
}

func TestProductCreate_ConcurrentDuplicateSKU(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	// Two callers race to create the same SKU: the unique index decides, so
	// exactly one create succeeds and the other loses with a conflict.
	statuses := make(chan int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			payload, err := json.Marshal(productBody(fmt.Sprintf("Racer %d", n), "RACE-001", 1, 1))
			if err != nil {
				statuses <- 0
				return
			}
			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req, -1)
			if err != nil {
				statuses <- 0
				return
			}
			resp.Body.Close()
			statuses <- resp.StatusCode
		}(i)
	}
	wg.Wait()
	close(statuses)

	got := []int{}
	for s := range statuses {
		got = append(got, s)
	}
	sort.Ints(got)
	assert.Equal(t, []int{http.StatusCreated, http.StatusConflict}, got)
}

func TestProductGetByID(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	id := createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))

	status, resp := doJSON(t, app, http.MethodGet, "/products/"+id, token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Widget", resp["product"].(map[string]interface{})["name"])

	// Malformed identifier.
	status, resp = doJSON(t, app, http.MethodGet, "/products/not-a-valid-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid product ID format", resp["message"])

	// Well-formed but absent.
	status, resp = doJSON(t, app, http.MethodGet, "/products/7e4f9ad1-74c6-4e6c-9ab5-21f3ca3e1a77", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", resp["message"])
}

func TestProductUpdateQuantity(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	id := createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))

	status, resp := doJSON(t, app, http.MethodPut, "/products/"+id+"/quantity", token, map[string]interface{}{
		"quantity": 42,
	})
	assert.Equal(t, http.StatusOK, status)
	product := resp["product"].(map[string]interface{})
	assert.Equal(t, float64(42), product["quantity"])

	// Missing quantity.
	status, resp = doJSON(t, app, http.MethodPut, "/products/"+id+"/quantity", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Quantity is required", resp["message"])

	// Negative quantity.
	status, resp = doJSON(t, app, http.MethodPut, "/products/"+id+"/quantity", token, map[string]interface{}{
		"quantity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Quantity must be a non-negative integer", resp["message"])

	// Absent product.
	status, _ = doJSON(t, app, http.MethodPut, "/products/7e4f9ad1-74c6-4e6c-9ab5-21f3ca3e1a77/quantity", token, map[string]interface{}{
		"quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductUpdate(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	id := createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))

	status, resp := doJSON(t, app, http.MethodGet, "/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, status)
	originalCreatedBy := resp["product"].(map[string]interface{})["createdBy"]

	// Partial update changes only the provided fields; immutable fields in
	// the body are ignored.
	status, resp = doJSON(t, app, http.MethodPut, "/products/"+id, token, map[string]interface{}{
		"name":      "Widget Pro",
		"price":     19.99,
		"createdBy": "someone-else",
	})
	assert.Equal(t, http.StatusOK, status)
	product := resp["product"].(map[string]interface{})
	assert.Equal(t, "Widget Pro", product["name"])
	assert.Equal(t, 19.99, product["price"])
	assert.Equal(t, "WID-001", product["sku"])
	assert.Equal(t, originalCreatedBy, product["createdBy"])
}

func TestProductUpdate_SKUConflict(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))
	id := createProduct(t, app, token, productBody("Gadget", "GAD-001", 5, 4.99))

	status, resp := doJSON(t, app, http.MethodPut, "/products/"+id, token, map[string]interface{}{
		"sku": "wid-001",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "SKU already exists", resp["message"])
}

func TestProductDelete(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	id := createProduct(t, app, token, productBody("Widget", "WID-001", 5, 9.99))

	status, resp := doJSON(t, app, http.MethodDelete, "/products/"+id, token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product deleted successfully", resp["message"])

	// Gone now.
	status, _ = doJSON(t, app, http.MethodDelete, "/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodGet, "/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func seedCatalog(t *testing.T, app *fiber.App, token string) {
	t.Helper()
	items := []map[string]interface{}{
		{"name": "Cheap Cable", "type": "Accessory", "sku": "CAB-001", "quantity": 50, "price": 2.50},
		{"name": "Laptop", "type": "Hardware", "sku": "LAP-001", "quantity": 4, "price": 1200.00, "description": "portable workstation"},
		{"name": "Monitor", "type": "Hardware", "sku": "MON-001", "quantity": 15, "price": 220.00},
		{"name": "Mouse", "type": "Accessory", "sku": "MOU-001", "quantity": 7, "price": 25.00},
	}
	for _, item := range items {
		status, _ := doJSON(t, app, http.MethodPost, "/products", token, item)
		require.Equal(t, http.StatusCreated, status)
	}
}

func listData(t *testing.T, app *fiber.App, token, query string) ([]interface{}, map[string]interface{}) {
	t.Helper()
	status, resp := doJSON(t, app, http.MethodGet, "/products"+query, token, nil)
	require.Equal(t, http.StatusOK, status)
	data := resp["data"].([]interface{})
	pagination, _ := resp["pagination"].(map[string]interface{})
	return data, pagination
}

func TestProductList_SortByPriceAsc(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	seedCatalog(t, app, token)

	data, _ := listData(t, app, token, "?sortBy=price&sortOrder=asc")
	require.Len(t, data, 4)
	prev := -1.0
	for _, item := range data {
		price := item.(map[string]interface{})["price"].(float64)
		assert.GreaterOrEqual(t, price, prev)
		prev = price
	}
}

func TestProductList_SortFallback(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	seedCatalog(t, app, token)

	// A sort field outside the allow-list falls back to createdAt desc:
	// the most recently created product comes first.
	data, _ := listData(t, app, token, "?sortBy=password")
	require.Len(t, data, 4)
	assert.Equal(t, "Mouse", data[0].(map[string]interface{})["name"])
}

func TestProductList_FilterAndPaginate(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	seedCatalog(t, app, token)

	// Case-insensitive substring search over name/sku/description.
	data, _ := listData(t, app, token, "?search=laptop")
	require.Len(t, data, 1)
	assert.Equal(t, "Laptop", data[0].(map[string]interface{})["name"])

	data, _ = listData(t, app, token, "?search=workstation")
	require.Len(t, data, 1)

	// Exact type filter.
	data, _ = listData(t, app, token, "?type=Accessory")
	assert.Len(t, data, 2)

	// Pagination metadata reflects the filtered total.
	data, pagination := listData(t, app, token, "?limit=3&page=2")
	assert.Len(t, data, 1)
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(4), pagination["totalItems"])
	assert.Equal(t, false, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPrevPage"])
}

func TestProductList_SearchTreatsWildcardsLiterally(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")

	createProduct(t, app, token, map[string]interface{}{
		"name": "100% Cotton Tee", "type": "Apparel", "sku": "COT-100", "quantity": 5, "price": 12.50,
	})
	createProduct(t, app, token, map[string]interface{}{
		"name": "1009 Cotton Tee", "type": "Apparel", "sku": "COT-101", "quantity": 5, "price": 12.50,
	})

	// "%" in the search term is a literal character, not a wildcard: only
	// the product whose name actually contains "100%" matches.
	data, _ := listData(t, app, token, "?search=100%25")
	require.Len(t, data, 1)
	assert.Equal(t, "100% Cotton Tee", data[0].(map[string]interface{})["name"])

	// Same for "_": it must not match an arbitrary single character.
	data, _ = listData(t, app, token, "?search=100_")
	assert.Empty(t, data)
}

func TestProductAnalytics(t *testing.T) {
	app := setupApp(t)
	token := registerAndLogin(t, app, "alice", "")
	seedCatalog(t, app, token)

	status, resp := doJSON(t, app, http.MethodGet, "/products/analytics", token, nil)
	assert.Equal(t, http.StatusOK, status)

	analytics := resp["analytics"].(map[string]interface{})
	assert.Equal(t, float64(4), analytics["totalProducts"])
	// Laptop (4) and Mouse (7) are below the low-stock threshold.
	assert.Equal(t, float64(2), analytics["lowStockProducts"])

	recent := analytics["mostRecentProducts"].([]interface{})
	assert.Len(t, recent, 4)
	assert.Equal(t, "Mouse", recent[0].(map[string]interface{})["name"])

	byType := analytics["productsByType"].([]interface{})
	require.Len(t, byType, 2)
	// Both types count 2, quantities confirm the grouping.
	for _, entry := range byType {
		stats := entry.(map[string]interface{})
		assert.Equal(t, float64(2), stats["count"])
		switch stats["type"] {
		case "Accessory":
			assert.Equal(t, float64(57), stats["totalQuantity"])
		case "Hardware":
			assert.Equal(t, float64(19), stats["totalQuantity"])
		default:
			t.Fatalf("unexpected type %v", stats["type"])
		}
	}
}

func TestAdminRoleGate(t *testing.T) {
	app := setupApp(t)

	// First registrant requesting admin gets it; the next one is demoted.
	adminToken := registerAndLogin(t, app, "firstadmin", models.RoleAdmin)
	userToken := registerAndLogin(t, app, "wannabe", models.RoleAdmin)

	status, resp := doJSON(t, app, http.MethodGet, "/me", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, models.RoleUser, resp["user"].(map[string]interface{})["role"])

	// Admin-only user listing.
	status, resp = doJSON(t, app, http.MethodGet, "/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, resp["users"].([]interface{}), 2)

	status, resp = doJSON(t, app, http.MethodGet, "/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Access denied. Admin privileges required.", resp["message"])
}

func TestHealthAndUnmatchedRoutes(t *testing.T) {
	app := setupApp(t)

	status, resp := doJSON(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", resp["status"])

	status, resp = doJSON(t, app, http.MethodGet, "/no/such/route", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", resp["message"])
}
