package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"rapidreads/internal/config"
	"rapidreads/internal/database"
	"rapidreads/internal/models"
	"rapidreads/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *repositories.Store
	svc   *Services
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            "development",
		JWTSecret:      "test_jwt_secret",
		BcryptCost:     bcrypt.MinCost,
		AllowedOrigins: []string{"http://localhost:5500"},
	}
}

// newTestEnv builds the app over a private in-memory SQLite database seeded
// with the sample catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenGORM(config.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	store := repositories.NewGORMStore(db, func(context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	t.Cleanup(func() { _ = store.Close(ctx) })

	_, err = database.SeedSampleProducts(ctx, store.Products, zap.NewNop())
	require.NoError(t, err)

	cfg := testConfig()
	svc := NewServices(cfg, store, nil, zap.NewNop())
	t.Cleanup(svc.Auth.Wait)

	return &testEnv{app: New(cfg, zap.NewNop(), svc), db: db, store: store, svc: svc}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	status, body := e.do(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Test",
		"lastName":  "User",
		"email":     email,
		"password":  "password123",
	}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Token
}

func (e *testEnv) countUsers(t *testing.T) int64 {
	n, err := e.store.Users.Count(context.Background())
	require.NoError(t, err)
	return n
}

func (e *testEnv) inventory(t *testing.T, legacyID int) int {
	p, err := e.store.Products.GetByLegacyID(context.Background(), legacyID)
	require.NoError(t, err)
	return p.AvailableInventory
}

func message(t *testing.T, body []byte) string {
	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	msg, _ := resp["message"].(string)
	return msg
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"version":"1.0.0"`)
	assert.Contains(t, string(body), "GET /collection/Products/search?q=searchterm")
}

func TestRegister_MissingFieldsNeverWrite(t *testing.T) {
	env := newTestEnv(t)
	full := map[string]string{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "secret1"}

	for field := range full {
		t.Run("without "+field, func(t *testing.T) {
			payload := map[string]string{}
			for k, v := range full {
				if k != field {
					payload[k] = v
				}
			}
			status, body := env.do(t, http.MethodPost, "/auth/register", payload, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "All fields are required", message(t, body))
		})
	}

	status, body := env.do(t, http.MethodPost, "/auth/register", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "All fields are required", message(t, body))

	assert.Zero(t, env.countUsers(t))
}

func TestRegister_FieldRules(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		payload map[string]string
		message string
	}{
		{map[string]string{"firstName": "A", "lastName": "Lovelace", "email": "ada@example.com", "password": "secret1"}, "First name must be at least 2 characters"},
		{map[string]string{"firstName": "Ada", "lastName": "L", "email": "ada@example.com", "password": "secret1"}, "Last name must be at least 2 characters"},
		{map[string]string{"firstName": "Ada", "lastName": "Lovelace", "email": "not-an-email", "password": "secret1"}, "Please provide a valid email address"},
		{map[string]string{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "12345"}, "Password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/auth/register", tt.payload, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, message(t, body))
		})
	}
	assert.Zero(t, env.countUsers(t))
}

func TestRegister_MalformedBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"firstName":`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", message(t, body))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "ada@example.com")

	status, body := env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "Other",
		"lastName":  "Person",
		"email":     "ADA@Example.com",
		"password":  "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already registered", message(t, body))
	assert.Equal(t, int64(1), env.countUsers(t))
}

func TestRegister_ResponseShape(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"firstName": "  Ada ",
		"lastName":  "Lovelace",
		"email":     "Ada@Example.com",
		"password":  "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, status)

	var resp struct {
		Message string         `json:"message"`
		Token   string         `json:"token"`
		User    map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User["firstName"])
	assert.Equal(t, "ada@example.com", resp.User["email"])
	assert.NotEmpty(t, resp.User["_id"])
	assert.NotContains(t, resp.User, "password")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "test@example.com")

	status, body := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "TEST@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Message string            `json:"message"`
		Token   string            `json:"token"`
		User    models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "Login successful", resp.Message)

	identity, err := env.svc.Tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)

	// last login is stamped in the background
	env.svc.Auth.Wait()
	user, err := env.store.Users.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestLogin_DoesNotRevealWhichPartFailed(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "test@example.com")

	wrongStatus, wrongBody := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	}, "")
	unknownStatus, unknownBody := env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")

	assert.Equal(t, http.StatusBadRequest, wrongStatus)
	assert.Equal(t, wrongStatus, unknownStatus)
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, string(wrongBody))
	assert.JSONEq(t, string(wrongBody), string(unknownBody))

	status, body := env.do(t, http.MethodPost, "/auth/login", map[string]string{"email": "test@example.com"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email and password are required", message(t, body))
}

func TestProducts_List(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/collection/Products", nil, "")
	require.Equal(t, http.StatusOK, status)

	var products []models.Product
	require.NoError(t, json.Unmarshal(body, &products))
	assert.Len(t, products, 12)
	assert.Equal(t, 201, products[0].LegacyID)
	assert.Contains(t, string(body), `"AvailableInventory"`)
}

func TestProducts_Search(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/collection/Products/search?q=Alchemist", nil, "")
	require.Equal(t, http.StatusOK, status)
	var products []models.Product
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "The Alchemist", products[0].Title)

	status, body = env.do(t, http.MethodGet, "/collection/Products/search?q=zzzz", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = env.do(t, http.MethodGet, "/collection/Products/search?q=%20%20", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Search query is required", message(t, body))

	status, _ = env.do(t, http.MethodGet, "/collection/Products/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProducts_Get(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/collection/Products/205", nil, "")
	require.Equal(t, http.StatusOK, status)
	var product models.Product
	require.NoError(t, json.Unmarshal(body, &product))
	assert.Equal(t, "Atomic Habits", product.Title)
	assert.Equal(t, 10, product.AvailableInventory)

	// the store identifier works too
	status, body = env.do(t, http.MethodGet, "/collection/Products/"+product.ID, nil, "")
	require.Equal(t, http.StatusOK, status)
	var byID models.Product
	require.NoError(t, json.Unmarshal(body, &byID))
	assert.Equal(t, 205, byID.LegacyID)

	for _, id := range []string{"999", "abc", uuid.NewString()} {
		status, body = env.do(t, http.MethodGet, "/collection/Products/"+id, nil, "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Product not found", message(t, body))
	}
}

func TestProducts_GetRequiresWholeNumericID(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"205abc", "%20205", "205.0", "+205x"} {
		status, body := env.do(t, http.MethodGet, "/collection/Products/"+id, nil, "")
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, "Product not found", message(t, body), id)
	}
}

func TestCart_RejectsFractionalProductID(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "buyer@example.com")

	for _, id := range []any{205.5, "205.5", 1e21} {
		status, body := env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": id}, token)
		assert.Equal(t, http.StatusBadRequest, status, id)
		assert.Equal(t, "Product ID must be an integer", message(t, body), id)
	}
	assert.Equal(t, 10, env.inventory(t, 205))
}

func TestCart_Add(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "buyer@example.com")

	status, body := env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 205, "quantity": 3}, token)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{"message":"Product added to cart successfully"}`, string(body))
	assert.Equal(t, 7, env.inventory(t, 205))

	var items []models.CartItem
	require.NoError(t, env.db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, 205, items[0].ProductID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.NotEmpty(t, items[0].UserID)

	// productId as a string, quantity defaults to 1
	status, _ = env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": "205"}, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 6, env.inventory(t, 205))
}

func TestCart_InsufficientInventory(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "buyer@example.com")

	status, body := env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 205, "quantity": 11}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient inventory", message(t, body))
	assert.Equal(t, 10, env.inventory(t, 205))

	var n int64
	require.NoError(t, env.db.Model(&models.CartItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCart_Failures(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "buyer@example.com")

	status, body := env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 999}, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found", message(t, body))

	status, body = env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 205, "quantity": 0}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Quantity must be at least 1", message(t, body))

	status, body = env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 205}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", message(t, body))

	status, body = env.do(t, http.MethodPost, "/cart/add", map[string]any{"productId": 205}, "forged")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", message(t, body))

	assert.Equal(t, 10, env.inventory(t, 205))
}

func TestChatbot(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/chatbot/respond", map[string]string{"message": "Hello, do you have books?"}, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"response":"Hello! Welcome to RapidReads! How can I help you find your next great book today?"}`, string(body))

	status, body = env.do(t, http.MethodPost, "/chatbot/respond", map[string]string{"message": "how many books"}, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"response":"We currently have 12 books available in our collection across various genres!"}`, string(body))

	status, body = env.do(t, http.MethodPost, "/chatbot/respond", map[string]string{"message": "   "}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Message is required", message(t, body))
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "admin@example.com")

	status, body := env.do(t, http.MethodGet, "/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"users":1,"products":12,"serverStatus":"Running"}`, string(body))
}

type countingUserRepository struct {
	mock.Mock
	repositories.UserRepository
}

func (m *countingUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type countingProductRepository struct {
	mock.Mock
	repositories.ProductRepository
}

func (m *countingProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestAdminStats_WithoutTokenNeverQueriesStore(t *testing.T) {
	users := new(countingUserRepository)
	products := new(countingProductRepository)
	store := repositories.NewStore(users, products, nil, nil)
	cfg := testConfig()
	app := New(cfg, zap.NewNop(), NewServices(cfg, store, nil, zap.NewNop()))

	for _, header := range []string{"", "Bearer", "Bearer not-a-token", "Token abc"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}

	users.AssertNotCalled(t, "Count", mock.Anything)
	products.AssertNotCalled(t, "Count", mock.Anything)
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/orders", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Route not found", message(t, body))
	assert.Contains(t, string(body), "availableRoutes")
}

func TestInternalErrorsHideDetailsInProduction(t *testing.T) {
	tests := []struct {
		env      string
		wantBody string
	}{
		{"development", `{"message":"Failed to fetch stats","error":"connection reset"}`},
		{"production", `{"message":"Failed to fetch stats"}`},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			users := new(countingUserRepository)
			users.On("Count", mock.Anything).Return(int64(1), nil)
			products := new(countingProductRepository)
			products.On("Count", mock.Anything).Return(int64(0), errors.New("connection reset"))

			cfg := testConfig()
			cfg.Env = tt.env
			svc := NewServices(cfg, repositories.NewStore(users, products, nil, nil), nil, zap.NewNop())
			app := New(cfg, zap.NewNop(), svc)

			token, err := svc.Tokens.Issue(models.Identity{UserID: "user-1"})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}

func TestImagesAreServed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book1.jpeg"), []byte("jpeg"), 0o600))

	cfg := testConfig()
	cfg.ImagesDir = dir
	app := New(cfg, zap.NewNop(), NewServices(cfg, repositories.NewMemoryStore(), nil, zap.NewNop()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/images/book1.jpeg", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jpeg", string(body))
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:5500")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:5500", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}
