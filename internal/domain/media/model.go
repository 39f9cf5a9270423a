package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaItem struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// File info
	FileName         string `gorm:"not null" json:"file_name"`
	OriginalFileName string `gorm:"not null" json:"original_file_name"`
	MimeType         string `gorm:"not null" json:"mime_type"`
	Size             int64  `json:"size"`

	// Image metadata (optional)
	Width  *int `json:"width,omitempty"`
	Height *int `json:"height,omitempty"`

	// Public URLs
	URL          string  `gorm:"not null" json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`

	// Server-side storage paths
	StoragePath   string  `gorm:"not null" json:"-"`
	ThumbnailPath *string `json:"-"`

	// Descriptive metadata
	Title       string  `json:"title"`
	AltText     *string `json:"alt_text,omitempty"`
	Caption     *string `json:"caption,omitempty"`
	Description *string `json:"description,omitempty"`

	UploadedByUserID uint `gorm:"not null;index" json:"uploaded_by_user_id"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (m *MediaItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
