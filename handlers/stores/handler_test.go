package stores

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"nostalgic-food-map/models"
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

const storeID = "0b8f6f8e-1d0e-4c43-9b6a-7f1c2d3e4f50"

func setupRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.GET("/stores", ListStores)
	r.GET("/stores/:id", GetStore)
	return r
}

func get(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, req)
	return resp
}

func TestListStores(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "stores" ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "founding_year", "deep_night"}).
			AddRow("s1", "Akari Diner", "1-2-3 Shibuya", 1971, false).
			AddRow("s2", "Midnight Soba", "", nil, true))

	resp := get("/stores")

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string][]models.Store
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	stores := respBody["stores"]
	assert.Len(t, stores, 2)
	assert.Equal(t, 1971, *stores[0].FoundingYear)
	assert.Nil(t, stores[1].FoundingYear)
	assert.True(t, stores[1].DeepNight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListStores_Empty(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "stores"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := get("/stores")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"stores":[]}`, resp.Body.String())
}

func TestGetStore_WithPosts(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1 ORDER BY "stores"."id" LIMIT \$2`).
		WithArgs(storeID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "deep_night"}).AddRow(storeID, "Midnight Soba", true))
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE store_id = \$1 ORDER BY created_at DESC`).
		WithArgs(storeID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "store_id", "title", "created_at"}).
			AddRow("p2", "u1", storeID, "Second visit", now).
			AddRow("p1", "u1", storeID, "First visit", now.Add(-time.Hour)))
	mock.ExpectQuery(`SELECT \* FROM "post_images" WHERE post_id IN \(\$1,\$2\) ORDER BY created_at ASC`).
		WithArgs("p2", "p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "image_url"}).
			AddRow("i1", "p1", "https://img.test/p1.jpg"))

	resp := get("/stores/" + storeID)

	assert.Equal(t, http.StatusOK, resp.Code)

	var detail models.StoreDetail
	json.Unmarshal(resp.Body.Bytes(), &detail)
	assert.Equal(t, "Midnight Soba", detail.Store.Name)
	assert.Len(t, detail.Posts, 2)
	assert.Equal(t, "p2", detail.Posts[0].ID)
	assert.Empty(t, detail.Posts[0].ImageURL)
	assert.Equal(t, "https://img.test/p1.jpg", detail.Posts[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStore_NotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "stores" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := get("/stores/" + storeID)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStore_InvalidID(t *testing.T) {
	resp := get("/stores/xyz")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
