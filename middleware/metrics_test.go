package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"nostalgic-food-map/testutils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Metrics())
	r.GET("/stores/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	counter := httpRequests.WithLabelValues(http.MethodGet, "/stores/:id", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		req, _ := http.NewRequest(http.MethodGet, "/stores/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.Use(Metrics())

	counter := httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	req, _ := http.NewRequest(http.MethodGet, "/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
