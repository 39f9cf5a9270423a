package posts

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Post struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Title   string  `gorm:"size:200;not null" json:"title"`
	Slug    string  `gorm:"not null;uniqueIndex:idx_posts_slug" json:"slug"`
	Content string  `json:"content"`
	Summary *string `json:"summary"`

	ImageURL *string `json:"image_url"`

	UserID     uint      `gorm:"not null;index" json:"user_id"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	// Comma-separated tag list, filtered by substring match.
	Tags *string `json:"tags"`

	Status      string     `gorm:"not null;default:'draft'" json:"status"`
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`
	PublishedAt *time.Time `json:"published_at"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Slug        string  `gorm:"not null;uniqueIndex:idx_categories_slug" json:"slug"`
	Description *string `json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
