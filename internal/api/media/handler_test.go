package media

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"cms-backend/config"
	"cms-backend/database"
	mediadomain "cms-backend/internal/domain/media"
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
	g.Use(identity)
	g.POST("/media/upload", Upload)
	g.GET("/media", List)
	g.GET("/media/:id", Get)
	g.PUT("/media/:id", Update)
	g.DELETE("/media/:id", SoftDelete)
	g.DELETE("/media/:id/permanent", HardDelete)
	return r
}

func setupMedia(t *testing.T) {
	t.Helper()
	database.DB = testdb.Open(t)
	config.UPLOAD_DIR = t.TempDir()
}

// multipartUpload builds a multipart body whose file part carries an
// explicit Content-Type, the way browsers send it.
func multipartUpload(t *testing.T, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	setupMedia(t)
	r := newRouter(asUser(1, users.RoleAuthor))

	body, contentType := multipartUpload(t, "evil.exe", "application/x-executable", []byte("MZ"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unsupported file type")

	var count int64
	database.DB.Model(&mediadomain.MediaItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadImageGeneratesThumbnail(t *testing.T) {
	setupMedia(t)
	r := newRouter(asUser(1, users.RoleAuthor))

	body, contentType := multipartUpload(t, "photo.png", "image/png", pngBytes(t, 12, 8), map[string]string{
		"title":   "Test Photo",
		"altText": "a gradient",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item mediadomain.MediaItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	assert.Equal(t, "image/png", item.MimeType)
	assert.Equal(t, "photo.png", item.OriginalFileName)
	assert.Equal(t, "Test Photo", item.Title)
	require.NotNil(t, item.AltText)
	assert.Equal(t, "a gradient", *item.AltText)
	assert.Equal(t, uint(1), item.UploadedByUserID)

	require.NotNil(t, item.Width)
	require.NotNil(t, item.Height)
	assert.Equal(t, 12, *item.Width)
	assert.Equal(t, 8, *item.Height)
	require.NotNil(t, item.ThumbnailURL)
	assert.Contains(t, *item.ThumbnailURL, "thumb_")

	// Original and thumbnail are both on disk.
	var stored mediadomain.MediaItem
	require.NoError(t, database.DB.First(&stored, "id = ?", item.ID).Error)
	_, err := os.Stat(stored.StoragePath)
	assert.NoError(t, err)
	require.NotNil(t, stored.ThumbnailPath)
	_, err = os.Stat(*stored.ThumbnailPath)
	assert.NoError(t, err)
}

func TestUploadDocumentSkipsThumbnail(t *testing.T) {
	setupMedia(t)
	r := newRouter(asUser(1, users.RoleAuthor))

	body, contentType := multipartUpload(t, "paper.pdf", "application/pdf", []byte("%PDF-1.4"), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var item mediadomain.MediaItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Nil(t, item.ThumbnailURL)
	assert.Nil(t, item.Width)

	// Defaults to the filename without extension.
	assert.Equal(t, "paper", item.Title)
}

func TestUploadOctetStreamExtensionFallback(t *testing.T) {
	setupMedia(t)
	r := newRouter(asUser(1, users.RoleAuthor))

	body, contentType := multipartUpload(t, "clip.mp4", "application/octet-stream", []byte{0, 0, 0, 24}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body, contentType = multipartUpload(t, "tool.bin", "application/octet-stream", []byte{1, 2, 3}, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaOwnershipAndDeletion(t *testing.T) {
	setupMedia(t)
	owner := newRouter(asUser(1, users.RoleAuthor))
	otherAuthor := newRouter(asUser(2, users.RoleAuthor))
	editor := newRouter(asUser(3, users.RoleEditor))

	body, contentType := multipartUpload(t, "photo.png", "image/png", pngBytes(t, 4, 4), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/media/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var item mediadomain.MediaItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	update := func(r *gin.Engine) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(gin.H{"title": "renamed"})
		req := httptest.NewRequest(http.MethodPut, "/api/media/"+item.ID, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusForbidden, update(otherAuthor).Code)
	assert.Equal(t, http.StatusOK, update(owner).Code)
	assert.Equal(t, http.StatusOK, update(editor).Code)

	// Trash, then purge. The file disappears with the hard delete.
	var stored mediadomain.MediaItem
	require.NoError(t, database.DB.First(&stored, "id = ?", item.ID).Error)

	req = httptest.NewRequest(http.MethodDelete, "/api/media/"+item.ID, nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/media/"+item.ID, nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/media/"+item.ID+"/permanent", nil)
	w = httptest.NewRecorder()
	editor.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(stored.StoragePath)
	assert.True(t, os.IsNotExist(err))

	var count int64
	database.DB.Model(&mediadomain.MediaItem{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
