package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"spendbot/config"
	"spendbot/database"
	"spendbot/middleware"
	"spendbot/models"
	"spendbot/tokens"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func setupTokenTestConfig() func() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Dashboard: config.DashboardConfig{
			SharedSecret:   "bot-shared-secret",
			AccessTokenTTL: 30 * time.Minute,
			SessionTTL:     24 * time.Hour,
		},
		JWT: config.JWTConfig{Secret: "test-jwt-secret"},
	}
	middleware.InitJWT(config.GlobalConfig)
	return func() { config.GlobalConfig = nil }
}

func setOwnerMiddleware(ownerID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("ownerID", ownerID)
		c.Next()
	}
}

func mockUserRow(pinHash interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"owner_id", "display_name", "pin_hash", "monthly_budget",
		"currency_symbol", "budget_alerted_at", "created_at", "updated_at",
	}).AddRow("6591234567", "Alice", pinHash, 0.0, "$", nil, time.Now(), time.Now())
}

func TestTokenHandler_CreateAccessToken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	// 用户已存在，直接返回
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("6591234567").
		WillReturnRows(mockUserRow(nil))

	store := tokens.NewMemoryStore()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/create-access-token", NewTokenHandler(store).CreateAccessToken)

	body := `{"owner_id":"6591234567","display_name":"Alice","secret":"bot-shared-secret"}`
	req := httptest.NewRequest("POST", "/api/create-access-token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	assert.Len(t, token, 32)
	assert.Equal(t, float64(1800), resp["expires_in"])

	// 发出的令牌确实可解析回用户
	ownerID, ok := store.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, "6591234567", ownerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 密钥错误时拒绝且不触碰数据库
func TestTokenHandler_CreateAccessToken_WrongSecret(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/create-access-token", NewTokenHandler(tokens.NewMemoryStore()).CreateAccessToken)

	body := `{"owner_id":"6591234567","secret":"wrong"}`
	req := httptest.NewRequest("POST", "/api/create-access-token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenHandler_VerifyPin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("6591234567").
		WillReturnRows(mockUserRow(models.HashPin("1234")))

	store := tokens.NewMemoryStore()
	token, err := store.Issue("6591234567", 30*time.Minute)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/verify-pin", NewTokenHandler(store).VerifyPin)

	body := `{"token":"` + token + `","pin":"1234"}`
	req := httptest.NewRequest("POST", "/api/verify-pin", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	session, _ := resp["session_token"].(string)
	assert.NotEmpty(t, session)

	// 签发的会话令牌归属正确的用户
	claims, err := middleware.ParseSessionToken(session)
	require.NoError(t, err)
	assert.Equal(t, "6591234567", claims.OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenHandler_VerifyPin_WrongPin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("6591234567").
		WillReturnRows(mockUserRow(models.HashPin("1234")))

	store := tokens.NewMemoryStore()
	token, err := store.Issue("6591234567", 30*time.Minute)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/verify-pin", NewTokenHandler(store).VerifyPin)

	body := `{"token":"` + token + `","pin":"9999"}`
	req := httptest.NewRequest("POST", "/api/verify-pin", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect PIN")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenHandler_VerifyPin_ExpiredToken(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	store := tokens.NewMemoryStore()
	token, err := store.Issue("6591234567", -time.Minute)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/verify-pin", NewTokenHandler(store).VerifyPin)

	body := `{"token":"` + token + `","pin":"1234"}`
	req := httptest.NewRequest("POST", "/api/verify-pin", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestTokenHandler_HasPin(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("6591234567").
		WillReturnRows(mockUserRow(nil))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/has-pin", setOwnerMiddleware("6591234567"), NewTokenHandler(tokens.NewMemoryStore()).HasPin)

	req := httptest.NewRequest("GET", "/api/has-pin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"has_pin":false`)
	require.NoError(t, mock.ExpectationsWereMet())
}
