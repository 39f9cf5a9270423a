package comments

import (
	"time"

	"cms-backend/internal/domain/users"
)

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"not null" json:"content"`

	IsApproved bool `gorm:"not null;default:true" json:"is_approved"`

	User *users.User `json:"user,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
