package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cms-backend/database"
	"cms-backend/internal/api/pagination"
	"cms-backend/internal/api/request"
	"cms-backend/internal/domain/access"
	"cms-backend/internal/domain/activity"
	usersdomain "cms-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var userSortColumns = map[string]string{
	"name":   "name",
	"posts":  "posts_count",
	"views":  "total_views",
	"joined": "created_at",
}

// PublicProfile hides credentials and contact details from the public
// user listing.
type PublicProfile struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	Bio            string     `json:"bio"`
	Avatar         *string    `json:"avatar,omitempty"`
	Website        *string    `json:"website,omitempty"`
	Twitter        *string    `json:"twitter,omitempty"`
	LinkedIn       *string    `json:"linkedin,omitempty"`
	Specialization *string    `json:"specialization,omitempty"`
	Role           string     `json:"role"`
	PostsCount     int        `json:"postsCount"`
	TotalViews     int        `json:"totalViews"`
	JoinedAt       time.Time  `json:"joinedAt"`
	LastActive     *time.Time `json:"lastActive,omitempty"`
}

func toPublicProfile(u usersdomain.User) PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Name:           u.Name,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		Website:        u.Website,
		Twitter:        u.Twitter,
		LinkedIn:       u.LinkedIn,
		Specialization: u.Specialization,
		Role:           u.Role,
		PostsCount:     u.PostsCount,
		TotalViews:     u.TotalViews,
		JoinedAt:       u.CreatedAt,
		LastActive:     u.LastActive,
	}
}

// ------------------------------
// GET /api/users  (public profiles)
// ------------------------------
func List(c *gin.Context) {
	params := pagination.Parse(c)
	params.SortOrder = c.DefaultQuery("sortOrder", "desc")

	q := database.DB.Model(&usersdomain.User{})

	if params.Search != "" {
		like := "%" + params.Search + "%"
		q = q.Where("name LIKE ? OR first_name LIKE ? OR last_name LIKE ? OR bio LIKE ? OR specialization LIKE ?",
			like, like, like, like, like)
	}
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if spec := c.Query("specialization"); spec != "" {
		q = q.Where("specialization LIKE ?", "%"+spec+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving users"})
		return
	}

	var items []usersdomain.User
	err := q.Order(params.OrderClause(userSortColumns, "created_at")).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving users"})
		return
	}

	profiles := make([]PublicProfile, 0, len(items))
	for _, u := range items {
		profiles = append(profiles, toPublicProfile(u))
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      profiles,
		"pagination": pagination.NewMeta(params, total),
	})
}

// ------------------------------
// GET /api/users/:id
// ------------------------------
func Get(c *gin.Context) {
	var user usersdomain.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving user"})
		return
	}
	c.JSON(http.StatusOK, toPublicProfile(user))
}

// ------------------------------
// GET /api/users/me
// ------------------------------
func GetCurrentUser(c *gin.Context) {
	userID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var user usersdomain.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type AdminCreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
}

// ------------------------------
// POST /api/admin/users
// ------------------------------
func AdminCreate(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "First and last name are required"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password is required"})
		return
	}

	role := req.Role
	if role == "" {
		role = usersdomain.RoleSubscriber
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := usersdomain.User{
		Name:         req.FirstName + " " + req.LastName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     &hashed,
		AuthProvider: "local",
		Role:         role,
		Bio:          req.Bio,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"message": "A user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type AdminUpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ------------------------------
// PUT /api/admin/users/:id/role
// ------------------------------
func AdminUpdateRole(c *gin.Context) {
	var req AdminUpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	switch req.Role {
	case usersdomain.RoleSubscriber, usersdomain.RoleAuthor, usersdomain.RoleEditor,
		usersdomain.RoleAdmin, usersdomain.RoleSuperAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	actorID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	// Only a superadmin may mint admins and superadmins.
	if access.CanAdminister(req.Role) && request.Role(c) != usersdomain.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only a superadmin can assign admin roles"})
		return
	}

	var user usersdomain.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving user"})
		return
	}

	if err := database.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update role"})
		return
	}

	activity.Log(database.DB, c, actorID, activity.ActionRoleChange,
		"Role of user "+user.Email+" set to "+req.Role, true, "")
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// ------------------------------
// DELETE /api/admin/users/:id
// ------------------------------
func AdminDelete(c *gin.Context) {
	actorID, ok := request.MustUserID(c)
	if !ok {
		return
	}

	var user usersdomain.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving user"})
		return
	}

	if user.ID == actorID {
		c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot delete your own account"})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		return
	}

	activity.Log(database.DB, c, actorID, activity.ActionHardDelete, "User deleted: "+user.Email, true, "")
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
