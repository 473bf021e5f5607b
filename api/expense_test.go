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
)

func TestExpenseHandler_Create_AutoCategorize(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/expenses", setOwnerMiddleware("6591234567"), NewExpenseHandler().Create)

	body := `{"description":"grab to office","amount":15.50}`
	req := httptest.NewRequest("POST", "/api/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "transport", resp["category"])
	assert.Equal(t, 15.5, resp["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// 金额必须为正
func TestExpenseHandler_Create_InvalidAmount(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/expenses", setOwnerMiddleware("6591234567"), NewExpenseHandler().Create)

	body := `{"description":"coffee","amount":0}`
	req := httptest.NewRequest("POST", "/api/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 未知类别按宽松匹配兜底为 other
func TestExpenseHandler_Create_UnknownCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `expenses`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/expenses", setOwnerMiddleware("6591234567"), NewExpenseHandler().Create)

	body := `{"description":"mystery","amount":9.99,"category":"gadgets"}`
	req := httptest.NewRequest("POST", "/api/expenses", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "other", resp["category"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Update_NotOwned(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	// 按 id+owner 查不到该记录
	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/api/expenses/:id", setOwnerMiddleware("6591234567"), NewExpenseHandler().Update)

	body := `{"description":"lunch","amount":18}`
	req := httptest.NewRequest("PUT", "/api/expenses/99", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Update(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectQuery("SELECT .* FROM `expenses`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "description", "amount", "category",
			"expense_time", "created_at", "updated_at",
		}).AddRow(12, "6591234567", "lunch", 15.0, "food", time.Now(), time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/api/expenses/:id", setOwnerMiddleware("6591234567"), NewExpenseHandler().Update)

	body := `{"amount":18.50,"category":"food"}`
	req := httptest.NewRequest("PUT", "/api/expenses/12", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 18.5, resp["amount"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/api/expenses/:id", setOwnerMiddleware("6591234567"), NewExpenseHandler().Delete)

	req := httptest.NewRequest("DELETE", "/api/expenses/12", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseHandler_Delete_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	defer setupTokenTestConfig()()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `expenses`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/api/expenses/:id", setOwnerMiddleware("6591234567"), NewExpenseHandler().Delete)

	req := httptest.NewRequest("DELETE", "/api/expenses/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
