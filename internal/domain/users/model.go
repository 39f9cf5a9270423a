package users

import "time"

const (
	RoleSubscriber = "subscriber"
	RoleAuthor     = "author"
	RoleEditor     = "editor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Email        string  `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	Password     *string `json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'" json:"-"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`

	Role string `gorm:"not null;default:'subscriber'" json:"role"`

	// Public profile
	Bio            string  `json:"bio"`
	Avatar         *string `json:"avatar,omitempty"`
	Website        *string `json:"website,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	LinkedIn       *string `json:"linkedin,omitempty"`
	Specialization *string `json:"specialization,omitempty"`

	PostsCount int        `gorm:"not null;default:0" json:"posts_count"`
	TotalViews int        `gorm:"not null;default:0" json:"total_views"`
	LastActive *time.Time `json:"last_active,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
