package categories

import (
	"errors"
	"net/http"
	"strings"

	"cms-backend/database"
	postsdomain "cms-backend/internal/domain/posts"
	"cms-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// GET /api/categories
func List(c *gin.Context) {
	var categories []postsdomain.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GET /api/categories/:id
func Get(c *gin.Context) {
	var category postsdomain.Category
	if err := database.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// POST /api/categories
func Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
		return
	}

	category := postsdomain.Category{
		Name:        req.Name,
		Slug:        util.Slugify(req.Name),
		Description: req.Description,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "A category with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// PUT /api/categories/:id
func Update(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var category postsdomain.Category
	if err := database.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load category"})
		return
	}

	if strings.TrimSpace(req.Name) != "" {
		category.Name = req.Name
		category.Slug = util.Slugify(req.Name)
	}
	if req.Description != nil {
		category.Description = req.Description
	}

	if err := database.DB.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "A category with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update category"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /api/categories/:id
func Delete(c *gin.Context) {
	var category postsdomain.Category
	if err := database.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load category"})
		return
	}
	if err := database.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
