package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authsvc "github.com/samotors/vehicle-backend/internal/auth"
	"github.com/samotors/vehicle-backend/internal/users"
	"github.com/samotors/vehicle-backend/internal/vehicles"
	"github.com/samotors/vehicle-backend/pkg/config"
	"github.com/samotors/vehicle-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

func setupRouterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  user_level TEXT NOT NULL DEFAULT 'user',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  token TEXT NOT NULL UNIQUE,
  expires_at DATETIME NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vehicles (
  id TEXT PRIMARY KEY,
  vehicle_title TEXT NOT NULL,
  category TEXT NOT NULL,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  condition TEXT NOT NULL,
  mileage INTEGER,
  fuel_type TEXT,
  transmission TEXT,
  engine TEXT,
  color TEXT,
  body TEXT,
  reference TEXT,
  date_added DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db := setupRouterTestDB(t)

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "router-test-secret",
			Issuer:                 "samotors-test",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		// Zero windows disable the auth rate limiter.
	}

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	userRepo := users.NewRepository(db)
	vehicleRepo := vehicles.NewRepository(db)
	tokenRepo := authsvc.NewRefreshTokenRepository(db)

	svc, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		TokenRepo:      tokenRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	require.NoError(t, err)

	handler := NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          stubPinger{},
		AuthService: svc,
		UserRepo:    userRepo,
		VehicleRepo: vehicleRepo,
	})
	return handler, db
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func registerAndLogin(t *testing.T, handler http.Handler, email string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "Thandi",
		"last_name":  "Nkosi",
		"email":      email,
		"password":   "road-trip-7",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	token, ok := data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestHealthLive(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doJSON(t, handler, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-SaMotors-Env"))
}

func TestRegisterLoginAndProfile(t *testing.T) {
	handler, _ := setupRouter(t)

	token := registerAndLogin(t, handler, "thandi@example.com")

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "thandi@example.com",
		"password": "road-trip-7",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "thandi@example.com", data["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterValidationCollectsAllViolations(t *testing.T) {
	handler, _ := setupRouter(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"first_name": "T",
		"email":      "not-an-email",
		"password":   "tiny",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	violations, ok := envelope["errors"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(violations), 4)
}

func TestVehicleWritesRequireAuth(t *testing.T) {
	handler, _ := setupRouter(t)

	payload := map[string]any{
		"vehicle_title": "2021 Toyota Corolla 1.8 XS",
		"brand":         "Toyota",
		"model":         "Corolla",
		"year":          2021,
		"price":         "189999.00",
		"category":      "sedan",
		"condition":     "used",
	}

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/vehicles", "", payload)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := registerAndLogin(t, handler, "seller@example.com")
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/vehicles", token, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	id, ok := data["id"].(string)
	require.True(t, ok)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/vehicles/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestVehicleListIsPublicAndPaginated(t *testing.T) {
	handler, _ := setupRouter(t)

	token := registerAndLogin(t, handler, "fleet@example.com")
	for i := 0; i < 3; i++ {
		rec := doJSON(t, handler, http.MethodPost, "/api/v1/vehicles", token, map[string]any{
			"vehicle_title": fmt.Sprintf("Volkswagen Polo %d", i),
			"brand":         "Volkswagen",
			"model":         fmt.Sprintf("Polo %d", i),
			"year":          2020 + i,
			"price":         "215000.00",
			"category":      "hatchback",
			"condition":     "new",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/vehicles?limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].([]any)
	assert.Len(t, data, 2)
	meta := envelope["pagination"].(map[string]any)
	assert.EqualValues(t, 3, meta["totalItems"])
	assert.EqualValues(t, 2, meta["totalPages"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/vehicles/year/2021/2022?limit=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope = decodeEnvelope(t, rec)
	assert.Len(t, envelope["data"].([]any), 2)
}

func TestUserAdminSurfaceRequiresLevel(t *testing.T) {
	handler, db := setupRouter(t)

	token := registerAndLogin(t, handler, "plain@example.com")

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	require.NoError(t, db.Exec(
		`UPDATE users SET user_level = 'admin' WHERE email = ?`, "plain@example.com",
	).Error)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
