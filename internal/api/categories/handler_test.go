package categories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cms-backend/database"
	postsdomain "cms-backend/internal/domain/posts"
	"cms-backend/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api")
	g.GET("/categories", List)
	g.GET("/categories/:id", Get)
	g.POST("/categories", Create)
	g.PUT("/categories/:id", Update)
	g.DELETE("/categories/:id", Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCategory(t *testing.T, w *httptest.ResponseRecorder) postsdomain.Category {
	t.Helper()
	var category postsdomain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	return category
}

func TestCreateCategorySlugFromName(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter()

	w := doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Tech & Gadgets"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	category := decodeCategory(t, w)
	assert.Equal(t, "Tech & Gadgets", category.Name)
	assert.Equal(t, "tech-gadgets", category.Slug)
}

func TestCreateCategoryValidation(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter()

	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "  "}).Code)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "News"}).Code)

	// Same name slugs to the same value, rejected by the unique index.
	assert.Equal(t, http.StatusConflict,
		doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "News"}).Code)
}

func TestUpdateCategory(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter()

	category := decodeCategory(t, doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Old Name"}))
	other := decodeCategory(t, doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Taken"}))

	url := fmt.Sprintf("/api/categories/%d", category.ID)

	desc := "about new things"
	updated := decodeCategory(t, doJSON(t, r, http.MethodPut, url, gin.H{"name": "New Name", "description": desc}))
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	// Renaming onto another category's slug conflicts.
	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodPut, url, gin.H{"name": other.Name}).Code)

	assert.Equal(t, http.StatusNotFound,
		doJSON(t, r, http.MethodPut, "/api/categories/9999", gin.H{"name": "Ghost"}).Code)
}

func TestListAndDeleteCategory(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter()

	doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Zebra"})
	doJSON(t, r, http.MethodPost, "/api/categories", gin.H{"name": "Apple"})

	var listed []postsdomain.Category
	w := doJSON(t, r, http.MethodGet, "/api/categories", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 2)

	// Alphabetical by name.
	assert.Equal(t, "Apple", listed[0].Name)
	assert.Equal(t, "Zebra", listed[1].Name)

	url := fmt.Sprintf("/api/categories/%d", listed[0].ID)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodDelete, url, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, url, nil).Code)

	var count int64
	database.DB.Model(&postsdomain.Category{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
