package pages

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusPrivate   = "private"
)

type Page struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Title   string  `gorm:"size:200;not null" json:"title"`
	Slug    string  `gorm:"not null;uniqueIndex:idx_pages_slug" json:"slug"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`

	Status      string     `gorm:"not null;default:'draft'" json:"status"`
	PublishedAt *time.Time `json:"published_at"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	// Hierarchy & ordering
	ParentID  *string `gorm:"type:uuid;index" json:"parent_id"`
	MenuOrder int     `gorm:"not null;default:0" json:"menu_order"`
	Template  *string `json:"template"`

	AuthorID uint `gorm:"not null;index" json:"author_id"`

	FeaturedMediaID *string `gorm:"type:uuid" json:"featured_media_id"`

	SeoTitle       *string `json:"seo_title"`
	SeoDescription *string `json:"seo_description"`
	MetaJson       *string `json:"meta_json"`

	Revisions []PageRevision `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE;" json:"revisions,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (p *Page) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PageRevision is an immutable snapshot of a page's editable content.
// (PageID, Version) is unique; versions are assigned max+1 and never reused.
type PageRevision struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	PageID string `gorm:"type:uuid;not null;uniqueIndex:idx_page_revisions_page_version,priority:1" json:"page_id"`

	Version int `gorm:"not null;uniqueIndex:idx_page_revisions_page_version,priority:2" json:"version"`

	Title   string  `json:"title"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`

	ChangeSummary *string `json:"change_summary"`

	CreatedByUserID uint      `gorm:"not null" json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *PageRevision) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
