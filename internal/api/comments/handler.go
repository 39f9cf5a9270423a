package comments

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	"cms-backend/internal/api/request"
	"cms-backend/internal/domain/access"
	commentsdomain "cms-backend/internal/domain/comments"
	postsdomain "cms-backend/internal/domain/posts"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxCommentLength = 2000

type CreateCommentRequest struct {
	PostID  uint   `json:"postId"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// ------------------------------
// GET /api/comments/post/:postId
// ------------------------------
// Public: approved comments only, oldest first.
func ListByPost(c *gin.Context) {
	var comments []commentsdomain.Comment
	err := database.DB.
		Where("post_id = ? AND is_approved = ?", c.Param("postId"), true).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// ------------------------------
// GET /api/comments/:id
// ------------------------------
func Get(c *gin.Context) {
	var comment commentsdomain.Comment
	err := database.DB.Preload("User").First(&comment, "id = ?", c.Param("id")).Error
	if err != nil {
		respondCommentError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ------------------------------
// POST /api/comments
// ------------------------------
func Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
		return
	}
	if len(req.Content) > maxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content cannot exceed 2000 characters"})
		return
	}
	if req.PostID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "postId is required"})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var count int64
	if err := database.DB.Model(&postsdomain.Post{}).Where("id = ?", req.PostID).Count(&count).Error; err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	comment := commentsdomain.Comment{
		PostID:     req.PostID,
		UserID:     userID,
		Content:    req.Content,
		IsApproved: true,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create comment"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ------------------------------
// PUT /api/comments/:id
// ------------------------------
func Update(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content is required"})
		return
	}
	if len(req.Content) > maxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Content cannot exceed 2000 characters"})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var comment commentsdomain.Comment
	if err := database.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		respondCommentError(c, err)
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only edit your own comments"})
		return
	}

	now := time.Now().UTC()
	comment.Content = req.Content
	comment.UpdatedAt = &now
	if err := database.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update comment"})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ------------------------------
// DELETE /api/comments/:id
// ------------------------------
func Delete(c *gin.Context) {
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var comment commentsdomain.Comment
	if err := database.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
		respondCommentError(c, err)
		return
	}

	if !access.CanEditOwned(request.Role(c), comment.UserID, userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to delete this comment"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// ------------------------------
// GET /api/admin/comments  (moderation queue)
// ------------------------------
func AdminList(c *gin.Context) {
	params := pagination.Parse(c)

	q := database.DB.Model(&commentsdomain.Comment{})
	if approved := c.Query("approved"); approved != "" {
		q = q.Where("is_approved = ?", approved == "true")
	}
	if params.Search != "" {
		q = q.Where("content LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load comments"})
		return
	}

	var items []commentsdomain.Comment
	err := q.Preload("User").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(params, total),
	})
}

// ------------------------------
// POST /api/admin/comments/:id/approve and /reject
// ------------------------------
func SetApproval(approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comment commentsdomain.Comment
		if err := database.DB.First(&comment, "id = ?", c.Param("id")).Error; err != nil {
			respondCommentError(c, err)
			return
		}

		now := time.Now().UTC()
		comment.IsApproved = approve
		comment.UpdatedAt = &now
		if err := database.DB.Save(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update comment"})
			return
		}
		c.JSON(http.StatusOK, comment)
	}
}

func respondCommentError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load comment"})
}
