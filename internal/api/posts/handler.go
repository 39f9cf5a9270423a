package posts

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	"cms-backend/internal/api/request"
	"cms-backend/internal/domain/access"
	postsdomain "cms-backend/internal/domain/posts"
	"cms-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var postSortColumns = map[string]string{
	"title":     "title",
	"created":   "created_at",
	"published": "published_at",
	"views":     "view_count",
}

func generateUniquePostSlug(db *gorm.DB, input string, excludeID uint) (string, error) {
	base := util.Slugify(input)
	if base == "" {
		base = "post"
	}
	slug := base
	for i := 1; ; i++ {
		var count int64
		q := db.Model(&postsdomain.Post{}).Where("slug = ?", slug)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

type CreatePostRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Summary    *string `json:"summary"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID *uint   `json:"categoryId"`
	Tags       *string `json:"tags"`
	Status     *string `json:"status"` // draft|published
	Featured   *bool   `json:"featured"`
}

type UpdatePostRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Summary    *string `json:"summary"`
	ImageURL   *string `json:"imageUrl"`
	CategoryID *uint   `json:"categoryId"`
	Tags       *string `json:"tags"`
	Status     *string `json:"status"`
	Featured   *bool   `json:"featured"`
}

// ------------------------------
// GET /api/posts
// ------------------------------
func List(c *gin.Context) {
	params := pagination.Parse(c)

	q := database.DB.Model(&postsdomain.Post{})

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if featured := c.Query("featured"); featured != "" {
		q = q.Where("featured = ?", featured == "true")
	}
	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("title LIKE ? OR content LIKE ? OR summary LIKE ?", like, like, like)
	}
	if tags := c.Query("tags"); tags != "" {
		q = q.Where("tags LIKE ?", "%"+tags+"%")
	}
	if from := c.Query("dateFrom"); from != "" {
		q = q.Where("created_at >= ?", from)
	}
	if to := c.Query("dateTo"); to != "" {
		q = q.Where("created_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load posts"})
		return
	}

	var items []postsdomain.Post
	err := q.Preload("Category").
		Order(params.OrderClause(postSortColumns, "created_at")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(params, total),
	})
}

// ------------------------------
// GET /api/posts/:id
// ------------------------------
func Get(c *gin.Context) {
	var post postsdomain.Post
	err := database.DB.Preload("Category").First(&post, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load post"})
		return
	}

	database.DB.Model(&post).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	c.JSON(http.StatusOK, post)
}

// ------------------------------
// POST /api/posts
// ------------------------------
func Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	status := postsdomain.StatusDraft
	if req.Status != nil && *req.Status != "" {
		status = strings.ToLower(*req.Status)
		if status != postsdomain.StatusDraft && status != postsdomain.StatusPublished {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
	}

	slug, err := generateUniquePostSlug(database.DB, req.Title, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	now := time.Now().UTC()
	post := postsdomain.Post{
		Title:      req.Title,
		Slug:       slug,
		Content:    req.Content,
		Summary:    req.Summary,
		ImageURL:   req.ImageURL,
		UserID:     userID,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
		Status:     status,
		CreatedAt:  now,
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if status == postsdomain.StatusPublished {
		post.PublishedAt = &now
	}

	if err := database.DB.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "A post with this slug already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create post"})
		return
	}

	database.DB.Exec("UPDATE users SET posts_count = posts_count + 1 WHERE id = ?", userID)
	c.JSON(http.StatusOK, post)
}

// ------------------------------
// PUT /api/posts/:id
// ------------------------------
func Update(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var post postsdomain.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load post"})
		return
	}

	if !access.CanEditOwned(request.Role(c), post.UserID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this post"})
		return
	}

	now := time.Now().UTC()
	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		slug, err := generateUniquePostSlug(database.DB, post.Title, post.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update post"})
			return
		}
		post.Slug = slug
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Summary != nil {
		post.Summary = req.Summary
	}
	if req.ImageURL != nil {
		post.ImageURL = req.ImageURL
	}
	if req.CategoryID != nil {
		post.CategoryID = req.CategoryID
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Featured != nil {
		post.Featured = *req.Featured
	}
	if req.Status != nil {
		status := strings.ToLower(*req.Status)
		if status != postsdomain.StatusDraft && status != postsdomain.StatusPublished {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
		post.Status = status
		if status == postsdomain.StatusPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
	}
	post.UpdatedAt = &now

	if err := database.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ------------------------------
// DELETE /api/posts/:id
// ------------------------------
func Delete(c *gin.Context) {
	var post postsdomain.Post
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load post"})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete post"})
		return
	}
	database.DB.Exec("UPDATE users SET posts_count = posts_count - 1 WHERE id = ? AND posts_count > 0", post.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
