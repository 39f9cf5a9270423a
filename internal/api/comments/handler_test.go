package comments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cms-backend/database"
	commentsdomain "cms-backend/internal/domain/comments"
	postsdomain "cms-backend/internal/domain/posts"
	"cms-backend/internal/domain/users"
	"cms-backend/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asUser(id uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("role", role)
	}
}

func newRouter(identity gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api")
	g.GET("/comments/post/:postId", ListByPost)
	if identity != nil {
		g.Use(identity)
	}
	g.POST("/comments", Create)
	g.PUT("/comments/:id", Update)
	g.DELETE("/comments/:id", Delete)
	g.GET("/admin/comments", AdminList)
	g.POST("/admin/comments/:id/approve", SetApproval(true))
	g.POST("/admin/comments/:id/reject", SetApproval(false))
	return r
}

func seedPost(t *testing.T) postsdomain.Post {
	t.Helper()
	post := postsdomain.Post{Title: "Post", Slug: "post", UserID: 1, Status: postsdomain.StatusPublished}
	require.NoError(t, database.DB.Create(&post).Error)
	return post
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

func TestCreateCommentValidation(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter(asUser(1, users.RoleSubscriber))
	post := seedPost(t)

	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"postId": post.ID, "content": "  "}).Code)

	assert.Equal(t, http.StatusBadRequest,
		doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"postId": post.ID, "content": strings.Repeat("x", 2001)}).Code)

	assert.Equal(t, http.StatusNotFound,
		doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"postId": 999, "content": "hello"}).Code)

	w := doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"postId": post.ID, "content": "hello"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCommentModeration(t *testing.T) {
	database.DB = testdb.Open(t)
	r := newRouter(asUser(1, users.RoleAdmin))
	post := seedPost(t)

	w := doJSON(t, r, http.MethodPost, "/api/comments", gin.H{"postId": post.ID, "content": "nice post"})
	require.Equal(t, http.StatusOK, w.Code)
	var comment commentsdomain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	listURL := fmt.Sprintf("/api/comments/post/%d", post.ID)
	listed := func() []commentsdomain.Comment {
		var out []commentsdomain.Comment
		w := doJSON(t, r, http.MethodGet, listURL, nil)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	// Approved by default, visible publicly.
	require.Len(t, listed(), 1)

	rejectURL := fmt.Sprintf("/api/admin/comments/%d/reject", comment.ID)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, rejectURL, nil).Code)
	assert.Empty(t, listed())

	approveURL := fmt.Sprintf("/api/admin/comments/%d/approve", comment.ID)
	require.Equal(t, http.StatusOK, doJSON(t, r, http.MethodPost, approveURL, nil).Code)
	assert.Len(t, listed(), 1)
}

func TestCommentEditAndDeleteRules(t *testing.T) {
	database.DB = testdb.Open(t)
	author := newRouter(asUser(1, users.RoleSubscriber))
	stranger := newRouter(asUser(2, users.RoleSubscriber))
	editor := newRouter(asUser(3, users.RoleEditor))
	post := seedPost(t)

	w := doJSON(t, author, http.MethodPost, "/api/comments", gin.H{"postId": post.ID, "content": "mine"})
	require.Equal(t, http.StatusOK, w.Code)
	var comment commentsdomain.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	url := fmt.Sprintf("/api/comments/%d", comment.ID)

	// Editing is strictly author-only, even moderators go through
	// approve/reject instead.
	assert.Equal(t, http.StatusForbidden, doJSON(t, stranger, http.MethodPut, url, gin.H{"content": "hijacked"}).Code)
	assert.Equal(t, http.StatusForbidden, doJSON(t, editor, http.MethodPut, url, gin.H{"content": "hijacked"}).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, author, http.MethodPut, url, gin.H{"content": "edited"}).Code)

	// Deletion: owner or moderator.
	assert.Equal(t, http.StatusForbidden, doJSON(t, stranger, http.MethodDelete, url, nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, editor, http.MethodDelete, url, nil).Code)
}
