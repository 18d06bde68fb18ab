package report

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"nostalgic-food-map/models"
	"nostalgic-food-map/session"
	"nostalgic-food-map/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

const (
	postID   = "123e4567-e89b-12d3-a456-426614174000"
	userID   = "abc12345-e89b-12d3-a456-426614174000"
	reportID = "fe3d2c1b-e89b-12d3-a456-426614174000"
)

func setupRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.Use(func(c *gin.Context) {
		session.Attach(c, &session.Session{UserID: userID})
	})
	r.POST("/posts/:id/report", ReportPost)
	r.GET("/admin/reports", GetAllReports)
	r.PATCH("/admin/reports/:id/resolve", ResolveReport)
	return r
}

func sendReport(body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/posts/"+postID+"/report", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)
	return resp
}

func expectPost(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT "id" FROM "posts" WHERE id = \$1`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(postID))
}

func TestReportPost_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectPost(mock)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports" WHERE post_id = \$1 AND reporter_id = \$2`).
		WithArgs(postID, userID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reports" (.+) RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "resolved"}).AddRow(reportID, false))
	mock.ExpectCommit()

	resp := sendReport(`{"reason":"  Store closed years ago  "}`)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var respBody struct {
		Report   models.Report `json:"report"`
		Reported bool          `json:"reported"`
	}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.True(t, respBody.Reported)
	assert.Equal(t, reportID, respBody.Report.ID)
	assert.Equal(t, "Store closed years ago", respBody.Report.Reason)
	assert.Equal(t, userID, respBody.Report.ReporterID)
	assert.False(t, respBody.Report.Resolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPost_SecondReportBySameUserIsConflict(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectPost(mock)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	resp := sendReport(`{"reason":"spam"}`)

	assert.Equal(t, http.StatusConflict, resp.Code)
	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You have already reported this post", respBody["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPost_InvalidInput(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected string
	}{
		{"BlankReason", `{"reason":"   "}`, "Reason is required"},
		{"MissingReason", `{}`, "Reason is required"},
		{"BrokenJSON", `{"reason"`, "Invalid input"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, mock, cleanup := testutils.SetupTestDB(t)
			defer cleanup()

			resp := sendReport(tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			var respBody map[string]string
			json.Unmarshal(resp.Body.Bytes(), &respBody)
			assert.Equal(t, tc.expected, respBody["error"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportPost_PostNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT "id" FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := sendReport(`{"reason":"spam"}`)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllReports(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT reports.id, (.+) FROM "reports" LEFT JOIN posts ON posts.id = reports.post_id LEFT JOIN users ON users.id = reports.reporter_id ORDER BY reports.created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "post_title", "reporter_id", "reporter_name", "reporter_email", "reason", "resolved", "created_at"}).
			AddRow(reportID, postID, "Old Ramen Shop", userID, "Taro", "taro@example.com", "wrong address", false, created).
			AddRow("r2", postID, "", userID, "", "", "spam", true, created.Add(-time.Hour)))

	req, _ := http.NewRequest(http.MethodGet, "/admin/reports", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var reports []models.ReportView
	json.Unmarshal(resp.Body.Bytes(), &reports)
	assert.Len(t, reports, 2)
	assert.Equal(t, "Old Ramen Shop", reports[0].PostTitle)
	assert.Equal(t, "taro@example.com", reports[0].ReporterEmail)
	assert.True(t, reports[1].Resolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllReports_DBError(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`FROM "reports"`).WillReturnError(sqlmock.ErrCancelled)

	req, _ := http.NewRequest(http.MethodGet, "/admin/reports", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func resolve(id string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPatch, "/admin/reports/"+id+"/resolve", nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)
	return resp
}

func TestResolveReport_Idempotent(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "reports" SET "resolved"=\$1 WHERE id = \$2`).
			WithArgs(true, reportID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	for i := 0; i < 2; i++ {
		resp := resolve(reportID)
		assert.Equal(t, http.StatusOK, resp.Code)

		var respBody map[string]interface{}
		json.Unmarshal(resp.Body.Bytes(), &respBody)
		assert.Equal(t, true, respBody["resolved"])
		assert.Equal(t, reportID, respBody["id"])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReport_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports" SET "resolved"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	resp := resolve(reportID)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReport_InvalidID(t *testing.T) {
	resp := resolve("abc")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
