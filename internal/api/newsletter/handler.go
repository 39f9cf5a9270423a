package newsletter

import (
	"errors"
	"net/http"
	"time"

	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	newsletterdomain "cms-backend/internal/domain/newsletter"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscribeRequest struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// ------------------------------
// POST /api/newsletter/subscribe
// ------------------------------
// Idempotent: re-subscribing an existing email reactivates it.
func Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	now := time.Now().UTC()
	var existing newsletterdomain.Subscriber
	err := database.DB.Where("email = ?", req.Email).First(&existing).Error
	switch {
	case err == nil:
		existing.Status = newsletterdomain.StatusActive
		existing.UnsubscribedAt = nil
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to subscribe"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := newsletterdomain.Subscriber{
			Email:        req.Email,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Status:       newsletterdomain.StatusActive,
			Source:       "website",
			SubscribedAt: now,
		}
		if err := database.DB.Create(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to subscribe"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscribed successfully"})
}

// ------------------------------
// POST /api/newsletter/unsubscribe
// ------------------------------
func Unsubscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}

	var sub newsletterdomain.Subscriber
	if err := database.DB.Where("email = ?", req.Email).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Subscriber not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to unsubscribe"})
		return
	}

	now := time.Now().UTC()
	sub.Status = newsletterdomain.StatusUnsubscribed
	sub.UnsubscribedAt = &now
	if err := database.DB.Save(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to unsubscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unsubscribed successfully"})
}

// ------------------------------
// GET /api/admin/newsletter/subscribers
// ------------------------------
func AdminListSubscribers(c *gin.Context) {
	params := pagination.Parse(c)

	q := database.DB.Model(&newsletterdomain.Subscriber{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if params.Search != "" {
		q = q.Where("email LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving subscribers"})
		return
	}

	var items []newsletterdomain.Subscriber
	err := q.Order("subscribed_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving subscribers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(params, total),
	})
}
