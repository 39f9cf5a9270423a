package admin

import (
	"net/http"

	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	"cms-backend/internal/domain/activity"
	"cms-backend/internal/domain/comments"
	"cms-backend/internal/domain/media"
	"cms-backend/internal/domain/pages"
	"cms-backend/internal/domain/posts"
	"cms-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type DashboardStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalPosts      int64 `json:"totalPosts"`
	TotalPages      int64 `json:"totalPages"`
	TotalCategories int64 `json:"totalCategories"`
	TotalComments   int64 `json:"totalComments"`
	TotalMedia      int64 `json:"totalMedia"`
	TotalViews      int64 `json:"totalViews"`
	PublishedPosts  int64 `json:"publishedPosts"`
	DraftPosts      int64 `json:"draftPosts"`
}

// ------------------------------
// GET /api/admin/dashboard/stats
// ------------------------------
func GetStats(c *gin.Context) {
	var stats DashboardStats

	database.DB.Model(&users.User{}).Count(&stats.TotalUsers)
	database.DB.Model(&posts.Post{}).Count(&stats.TotalPosts)
	database.DB.Model(&pages.Page{}).Where("is_deleted = ?", false).Count(&stats.TotalPages)
	database.DB.Model(&posts.Category{}).Count(&stats.TotalCategories)
	database.DB.Model(&comments.Comment{}).Count(&stats.TotalComments)
	database.DB.Model(&media.MediaItem{}).Where("is_deleted = ?", false).Count(&stats.TotalMedia)
	database.DB.Model(&posts.Post{}).Where("status = ?", posts.StatusPublished).Count(&stats.PublishedPosts)
	database.DB.Model(&posts.Post{}).Where("status = ?", posts.StatusDraft).Count(&stats.DraftPosts)

	var totalViews *int64
	database.DB.Model(&posts.Post{}).Select("SUM(view_count)").Scan(&totalViews)
	if totalViews != nil {
		stats.TotalViews = *totalViews
	}

	c.JSON(http.StatusOK, stats)
}

type recentEntry struct {
	Type  string      `json:"type"`
	Title string      `json:"title"`
	Date  interface{} `json:"date"`
}

// ------------------------------
// GET /api/admin/dashboard/recent-activity
// ------------------------------
func GetRecentActivity(c *gin.Context) {
	entries := []recentEntry{}

	var recentUsers []users.User
	database.DB.Order("created_at DESC").Limit(5).Find(&recentUsers)
	for _, u := range recentUsers {
		entries = append(entries, recentEntry{Type: "user", Title: "New user: " + u.Name, Date: u.CreatedAt})
	}

	var recentPosts []posts.Post
	database.DB.Where("published_at IS NOT NULL").Order("published_at DESC").Limit(5).Find(&recentPosts)
	for _, p := range recentPosts {
		entries = append(entries, recentEntry{Type: "post", Title: "Published: " + p.Title, Date: p.PublishedAt})
	}

	var recentPages []pages.Page
	database.DB.Where("is_deleted = ?", false).Order("created_at DESC").Limit(5).Find(&recentPages)
	for _, p := range recentPages {
		entries = append(entries, recentEntry{Type: "page", Title: "Page: " + p.Title, Date: p.CreatedAt})
	}

	c.JSON(http.StatusOK, entries)
}

// ------------------------------
// GET /api/admin/activity  (audit log)
// ------------------------------
func ListActivity(c *gin.Context) {
	params := pagination.Parse(c)

	q := database.DB.Model(&activity.UserActivity{})
	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load activity"})
		return
	}

	var items []activity.UserActivity
	err := q.Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": pagination.NewMeta(params, total),
	})
}
