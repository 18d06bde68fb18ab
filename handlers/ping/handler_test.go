package ping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nostalgic-food-map/testutils"
	"nostalgic-food-map/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ping(t *testing.T) (*httptest.ResponseRecorder, utils.Response) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handler := New()
	r.GET("/ping", handler.HandlePing)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	var response utils.Response
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return w, response
}

func TestHandlePing(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	w, response := ping(t)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, response.Success)
	assert.Equal(t, "Ping successful", response.Message)

	data, ok := response.Data.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "pong", data["message"])
	assert.Equal(t, "up", data["database"])
}

func TestHandlePing_DatabaseDown(t *testing.T) {
	gormDB, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	sqlDB, err := gormDB.DB()
	assert.NoError(t, err)
	sqlDB.Close()

	w, response := ping(t)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, response.Success)
	assert.Equal(t, "Database unreachable", response.Error)
}
