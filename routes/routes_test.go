package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nostalgic-food-map/config"
	_ "nostalgic-food-map/docs"
	"nostalgic-food-map/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter() *gin.Engine {
	testutils.InitTestMain()
	return SetupRouter(&config.Config{
		Supabase: config.SupabaseConfig{
			URL:           "https://demo.supabase.co",
			JWTSecret:     testutils.JWTSecret,
			OAuthProvider: "github",
		},
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	})
}

func TestSwaggerDocListsRoutes(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &doc))
	assert.Equal(t, "Nostalgic Food Map API", doc.Info.Title)
	assert.Contains(t, doc.Paths["/posts"], "get")
	assert.Contains(t, doc.Paths["/posts"], "post")
	assert.Contains(t, doc.Paths["/admin/reports/{id}/resolve"], "patch")
}

func TestSwaggerUIServed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "swagger")
}

func TestLoginRouteRedirectsToProvider(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "/auth/login", nil)
	resp := httptest.NewRecorder()
	testRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "https://demo.supabase.co/auth/v1/authorize?provider=github", resp.Header().Get("Location"))
}
