package media

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"cms-backend/config"
	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	"cms-backend/internal/api/request"
	"cms-backend/internal/domain/access"
	"cms-backend/internal/domain/activity"
	mediadomain "cms-backend/internal/domain/media"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 100 << 20 // 100 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/gif": true,
	"image/webp": true, "image/svg+xml": true,
}

var allowedDocTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/zip":              true,
	"application/x-zip-compressed": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4": true, "video/webm": true, "video/ogg": true,
	"video/x-matroska": true, "video/quicktime": true,
}

// Extension fallback for clients that upload everything as octet-stream.
var allowedOctetExtensions = map[string]bool{
	".zip": true, ".mp4": true, ".webm": true, ".ogg": true,
	".mkv": true, ".mov": true, ".pdf": true,
}

func isAllowedUpload(contentType, ext string) bool {
	return allowedImageTypes[contentType] ||
		allowedDocTypes[contentType] ||
		allowedVideoTypes[contentType] ||
		(contentType == "application/octet-stream" && allowedOctetExtensions[ext])
}

var mediaSortColumns = map[string]string{
	"created": "created_at",
	"title":   "title",
	"size":    "size",
}

// ------------------------------
// POST /api/media/upload
// ------------------------------
func Upload(c *gin.Context) {
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No file uploaded"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File exceeds the 100MB upload limit"})
		return
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedUpload(contentType, ext) {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Unsupported file type: %s", contentType)})
		return
	}

	now := time.Now().UTC()
	relDir := path.Join(now.Format("2006"), now.Format("01"))
	absDir := filepath.Join(config.UPLOAD_DIR, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store file"})
		return
	}

	uniqueName := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	absPath := filepath.Join(absDir, uniqueName)
	if err := c.SaveUploadedFile(file, absPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store file"})
		return
	}

	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = contentType
	}

	title := c.PostForm("title")
	if title == "" {
		title = strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))
	}

	item := mediadomain.MediaItem{
		FileName:         uniqueName,
		OriginalFileName: file.Filename,
		MimeType:         mimeType,
		Size:             file.Size,
		URL:              "/" + path.Join("uploads", relDir, uniqueName),
		StoragePath:      absPath,
		Title:            title,
		AltText:          optionalForm(c, "altText"),
		Caption:          optionalForm(c, "caption"),
		Description:      optionalForm(c, "description"),
		UploadedByUserID: userID,
		CreatedAt:        now,
	}

	// Best-effort thumbnail; a failure never blocks the upload.
	if isThumbnailable(mimeType) {
		thumbName := "thumb_" + strings.TrimSuffix(uniqueName, ext) + ".jpg"
		thumbAbsPath := filepath.Join(absDir, thumbName)
		width, height, err := generateThumbnail(absPath, thumbAbsPath)
		if err != nil {
			log.Println("thumbnail generation failed:", err)
		} else {
			thumbURL := "/" + path.Join("uploads", relDir, thumbName)
			item.ThumbnailPath = &thumbAbsPath
			item.ThumbnailURL = &thumbURL
			item.Width = &width
			item.Height = &height
		}
	}

	if err := database.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save media"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func optionalForm(c *gin.Context, field string) *string {
	if v, ok := c.GetPostForm(field); ok && v != "" {
		return &v
	}
	return nil
}

// ------------------------------
// GET /api/media
// ------------------------------
func List(c *gin.Context) {
	params := pagination.Parse(c)

	q := database.DB.Model(&mediadomain.MediaItem{}).Where("is_deleted = ?", false)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ? OR original_file_name LIKE ?", like, like, like)
	}
	if mimeType := c.Query("mimeType"); mimeType != "" {
		q = q.Where("mime_type LIKE ?", mimeType+"%")
	}
	if uploadedBy := c.Query("uploadedBy"); uploadedBy != "" {
		q = q.Where("uploaded_by_user_id = ?", uploadedBy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load media"})
		return
	}

	var items []mediadomain.MediaItem
	err := q.Order(params.OrderClause(mediaSortColumns, "created_at")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(params, total),
	})
}

// ------------------------------
// GET /api/media/:id
// ------------------------------
func Get(c *gin.Context) {
	var item mediadomain.MediaItem
	err := database.DB.First(&item, "id = ? AND is_deleted = ?", c.Param("id"), false).Error
	if err != nil {
		respondMediaError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type UpdateMediaRequest struct {
	Title       *string `json:"title"`
	AltText     *string `json:"altText"`
	Caption     *string `json:"caption"`
	Description *string `json:"description"`
}

// ------------------------------
// PUT /api/media/:id  (metadata only)
// ------------------------------
func Update(c *gin.Context) {
	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var item mediadomain.MediaItem
	if err := database.DB.First(&item, "id = ? AND is_deleted = ?", c.Param("id"), false).Error; err != nil {
		respondMediaError(c, err)
		return
	}

	if !access.CanEditOwned(request.Role(c), item.UploadedByUserID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this media item"})
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.AltText != nil {
		item.AltText = req.AltText
	}
	if req.Caption != nil {
		item.Caption = req.Caption
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	now := time.Now().UTC()
	item.UpdatedAt = &now

	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update media"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// ------------------------------
// DELETE /api/media/:id  (trash)
// ------------------------------
func SoftDelete(c *gin.Context) {
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var item mediadomain.MediaItem
	if err := database.DB.First(&item, "id = ? AND is_deleted = ?", c.Param("id"), false).Error; err != nil {
		respondMediaError(c, err)
		return
	}

	if !access.CanEditOwned(request.Role(c), item.UploadedByUserID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to delete this media item"})
		return
	}

	now := time.Now().UTC()
	item.IsDeleted = true
	item.DeletedAt = &now
	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete media"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Media moved to trash"})
}

// ------------------------------
// DELETE /api/media/:id/permanent
// ------------------------------
// Removes the row first, then the files; file-removal failures are logged
// and ignored so storage faults cannot block the API.
func HardDelete(c *gin.Context) {
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var item mediadomain.MediaItem
	if err := database.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMediaError(c, err)
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete media"})
		return
	}

	if err := os.Remove(item.StoragePath); err != nil && !os.IsNotExist(err) {
		log.Println("media file removal failed:", err)
	}
	if item.ThumbnailPath != nil {
		if err := os.Remove(*item.ThumbnailPath); err != nil && !os.IsNotExist(err) {
			log.Println("thumbnail removal failed:", err)
		}
	}

	activity.Log(database.DB, c, userID, activity.ActionHardDelete, "Media permanently deleted: "+item.ID, true, "")
	c.JSON(http.StatusOK, gin.H{"message": "Media permanently deleted"})
}

func respondMediaError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Media not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load media"})
}
