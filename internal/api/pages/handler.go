package pages

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
	"cms-backend/internal/domain/activity"
	pagesdomain "cms-backend/internal/domain/pages"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errForbidden        = errors.New("forbidden")
	errParentNotFound   = errors.New("parent not found")
	errRevisionNotFound = errors.New("revision not found")
	errParentCycle      = errors.New("parent cycle")
)

var pageSortColumns = map[string]string{
	"created": "created_at",
	"updated": "updated_at",
	"title":   "title",
	"menu":    "menu_order",
}

func validStatus(s string) bool {
	return s == pagesdomain.StatusDraft || s == pagesdomain.StatusPublished || s == pagesdomain.StatusPrivate
}

// ------------------------------
// POST /api/pages
// ------------------------------
func Create(c *gin.Context) {
	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required"})
		return
	}

	status := pagesdomain.StatusDraft
	if req.Status != nil && *req.Status != "" {
		status = strings.ToLower(*req.Status)
		if !validStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
			return
		}
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var created pagesdomain.Page
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if req.ParentID != nil {
			var count int64
			if err := tx.Model(&pagesdomain.Page{}).Where("id = ? AND is_deleted = ?", *req.ParentID, false).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errParentNotFound
			}
		}

		slugInput := req.Title
		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
			slugInput = *req.Slug
		}
		slug, err := pagesdomain.GenerateUniqueSlug(tx, slugInput, "")
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		page := pagesdomain.Page{
			Title:           req.Title,
			Slug:            slug,
			Content:         req.Content,
			Excerpt:         req.Excerpt,
			Status:          status,
			ParentID:        req.ParentID,
			Template:        req.Template,
			AuthorID:        userID,
			FeaturedMediaID: req.FeaturedMediaID,
			SeoTitle:        req.SeoTitle,
			SeoDescription:  req.SeoDescription,
			MetaJson:        req.MetaJson,
			CreatedAt:       now,
		}
		if req.MenuOrder != nil {
			page.MenuOrder = *req.MenuOrder
		}
		if status == pagesdomain.StatusPublished {
			page.PublishedAt = &now
		}
		if err := tx.Create(&page).Error; err != nil {
			return err
		}

		summary := "Initial version"
		if req.ChangeSummary != nil && *req.ChangeSummary != "" {
			summary = *req.ChangeSummary
		}
		if _, err := pagesdomain.AppendRevision(tx, &page, summary, userID, now); err != nil {
			return err
		}

		created = page
		return nil
	})

	if err != nil {
		respondPageError(c, err, "Failed to create page")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(created))
}

// ------------------------------
// PUT /api/pages/:id
// ------------------------------
func Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.Status != nil && !validStatus(strings.ToLower(*req.Status)) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}
	role := request.Role(c)

	var updated pagesdomain.Page
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page pagesdomain.Page
		if err := tx.First(&page, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
			return err
		}

		if !access.CanEditOwned(role, page.AuthorID, userID) {
			return errForbidden
		}

		if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" && *req.Slug != page.Slug {
			slug, err := pagesdomain.GenerateUniqueSlug(tx, *req.Slug, page.ID)
			if err != nil {
				return err
			}
			page.Slug = slug
		}

		if req.ParentID != nil && (page.ParentID == nil || *req.ParentID != *page.ParentID) {
			var count int64
			if err := tx.Model(&pagesdomain.Page{}).Where("id = ? AND is_deleted = ?", *req.ParentID, false).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errParentNotFound
			}
			cycle, err := pagesdomain.WouldCreateCycle(tx, page.ID, *req.ParentID)
			if err != nil {
				return err
			}
			if cycle {
				return errParentCycle
			}
			page.ParentID = req.ParentID
		}

		now := time.Now().UTC()
		if req.Title != nil {
			page.Title = *req.Title
		}
		if req.Content != nil {
			page.Content = *req.Content
		}
		if req.Excerpt != nil {
			page.Excerpt = req.Excerpt
		}
		if req.Status != nil {
			page.Status = strings.ToLower(*req.Status)
			if page.Status == pagesdomain.StatusPublished {
				if page.PublishedAt == nil {
					page.PublishedAt = &now
				}
			} else {
				// Leaving published clears the publish timestamp.
				page.PublishedAt = nil
			}
		}
		if req.MenuOrder != nil {
			page.MenuOrder = *req.MenuOrder
		}
		if req.Template != nil {
			page.Template = req.Template
		}
		if req.FeaturedMediaID != nil {
			page.FeaturedMediaID = req.FeaturedMediaID
		}
		if req.SeoTitle != nil {
			page.SeoTitle = req.SeoTitle
		}
		if req.SeoDescription != nil {
			page.SeoDescription = req.SeoDescription
		}
		if req.MetaJson != nil {
			page.MetaJson = req.MetaJson
		}
		page.UpdatedAt = &now

		if err := tx.Save(&page).Error; err != nil {
			return err
		}

		summary := "Updated"
		if req.ChangeSummary != nil && *req.ChangeSummary != "" {
			summary = *req.ChangeSummary
		}
		if _, err := pagesdomain.AppendRevision(tx, &page, summary, userID, now); err != nil {
			return err
		}

		updated = page
		return nil
	})

	if err != nil {
		respondPageError(c, err, "Failed to update page")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(updated))
}

// ------------------------------
// GET /api/pages/:id
// ------------------------------
func Get(c *gin.Context) {
	var page pagesdomain.Page
	err := database.DB.First(&page, "id = ? AND is_deleted = ?", c.Param("id"), false).Error
	if err != nil {
		respondPageError(c, err, "Failed to load page")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(page))
}

// ------------------------------
// GET /api/pages/slug/:slug
// ------------------------------
// Anonymous callers only see published pages; any authenticated caller sees
// every non-deleted status.
func GetBySlug(c *gin.Context) {
	q := database.DB.Where("slug = ? AND is_deleted = ?", c.Param("slug"), false)
	if !request.IsAuthenticated(c) {
		q = q.Where("status = ?", pagesdomain.StatusPublished)
	}

	var page pagesdomain.Page
	if err := q.First(&page).Error; err != nil {
		respondPageError(c, err, "Failed to load page")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(page))
}

// ------------------------------
// GET /api/pages
// ------------------------------
func List(c *gin.Context) {
	params := pagination.Parse(c)
	if params.SortBy == "" {
		params.SortBy = "created"
	}

	q := database.DB.Model(&pagesdomain.Page{}).Where("is_deleted = ?", false)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("title LIKE ? OR excerpt LIKE ? OR content LIKE ?", like, like, like)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if parentID := c.Query("parentId"); parentID != "" {
		q = q.Where("parent_id = ?", parentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load pages"})
		return
	}

	var items []pagesdomain.Page
	err := q.Order(params.OrderClause(pageSortColumns, "created_at")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load pages"})
		return
	}

	dtos := make([]PageDTO, 0, len(items))
	for _, p := range items {
		dtos = append(dtos, toPageDTO(p))
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      dtos,
		"pagination": pagination.NewMeta(params, total),
	})
}

// ------------------------------
// DELETE /api/pages/:id  (soft)
// ------------------------------
func SoftDelete(c *gin.Context) {
	var page pagesdomain.Page
	if err := database.DB.First(&page, "id = ? AND is_deleted = ?", c.Param("id"), false).Error; err != nil {
		respondPageError(c, err, "Failed to delete page")
		return
	}

	now := time.Now().UTC()
	page.IsDeleted = true
	page.DeletedAt = &now
	if err := database.DB.Save(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete page"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page moved to trash"})
}

// ------------------------------
// DELETE /api/admin/pages/:id/permanent
// ------------------------------
func HardDelete(c *gin.Context) {
	id := c.Param("id")
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page pagesdomain.Page
		if err := tx.First(&page, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", id).Delete(&pagesdomain.PageRevision{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})

	if err != nil {
		respondPageError(c, err, "Failed to delete page")
		return
	}

	activity.Log(database.DB, c, userID, activity.ActionHardDelete, "Page permanently deleted: "+id, true, "")
	c.JSON(http.StatusOK, gin.H{"message": "Page permanently deleted"})
}

// ------------------------------
// GET /api/pages/:id/revisions
// ------------------------------
func ListRevisions(c *gin.Context) {
	var revs []pagesdomain.PageRevision
	err := database.DB.
		Where("page_id = ?", c.Param("id")).
		Order("version DESC").
		Find(&revs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load revisions"})
		return
	}

	dtos := make([]RevisionDTO, 0, len(revs))
	for _, r := range revs {
		dtos = append(dtos, toRevisionDTO(r))
	}
	c.JSON(http.StatusOK, dtos)
}

// ------------------------------
// POST /api/pages/:id/revisions/:revisionId/restore
// ------------------------------
func Restore(c *gin.Context) {
	id := c.Param("id")
	revisionID := c.Param("revisionId")

	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}
	role := request.Role(c)

	var restored pagesdomain.Page
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var page pagesdomain.Page
		if err := tx.First(&page, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
			return err
		}
		if !access.CanEditOwned(role, page.AuthorID, userID) {
			return errForbidden
		}

		var rev pagesdomain.PageRevision
		if err := tx.First(&rev, "id = ? AND page_id = ?", revisionID, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRevisionNotFound
			}
			return err
		}

		now := time.Now().UTC()
		page.Title = rev.Title
		page.Content = rev.Content
		page.Excerpt = rev.Excerpt
		page.UpdatedAt = &now
		if err := tx.Save(&page).Error; err != nil {
			return err
		}

		summary := fmt.Sprintf("Restore from v%d", rev.Version)
		if _, err := pagesdomain.AppendRevision(tx, &page, summary, userID, now); err != nil {
			return err
		}

		restored = page
		return nil
	})

	if err != nil {
		respondPageError(c, err, "Failed to restore revision")
		return
	}
	c.JSON(http.StatusOK, toPageDTO(restored))
}

// respondPageError maps domain and gorm errors onto the API error envelope.
func respondPageError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	case errors.Is(err, errParentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Parent page not found"})
	case errors.Is(err, errRevisionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Revision not found"})
	case errors.Is(err, errParentCycle):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Parent would create a cycle"})
	case errors.Is(err, errForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to modify this page"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"message": "Slug or revision already exists, retry the request"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
