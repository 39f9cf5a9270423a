package pages

import (
	"time"

	"cms-backend/internal/domain/pages"
)

// ---------- requests

type CreatePageRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`
	Status  *string `json:"status"` // draft|published|private

	ParentID  *string `json:"parentId"`
	MenuOrder *int    `json:"menuOrder"`
	Template  *string `json:"template"`

	FeaturedMediaID *string `json:"featuredMediaId"`

	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
	MetaJson       *string `json:"metaJson"`

	Slug          *string `json:"slug"` // generated from title when empty
	ChangeSummary *string `json:"changeSummary"`
}

// UpdatePageRequest carries patch semantics: absent fields keep their
// previous value.
type UpdatePageRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`
	Status  *string `json:"status"`

	ParentID  *string `json:"parentId"`
	MenuOrder *int    `json:"menuOrder"`
	Template  *string `json:"template"`

	FeaturedMediaID *string `json:"featuredMediaId"`

	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
	MetaJson       *string `json:"metaJson"`

	Slug          *string `json:"slug"`
	ChangeSummary *string `json:"changeSummary"`
}

// ---------- responses

type PageDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`

	ParentID  *string `json:"parentId"`
	MenuOrder int     `json:"menuOrder"`
	Template  *string `json:"template"`

	AuthorID        uint    `json:"authorId"`
	FeaturedMediaID *string `json:"featuredMediaId"`

	SeoTitle       *string `json:"seoTitle"`
	SeoDescription *string `json:"seoDescription"`
	MetaJson       *string `json:"metaJson"`
}

type RevisionDTO struct {
	ID              string    `json:"id"`
	Version         int       `json:"version"`
	Title           string    `json:"title"`
	Excerpt         *string   `json:"excerpt"`
	ChangeSummary   *string   `json:"changeSummary"`
	CreatedByUserID uint      `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toPageDTO(p pages.Page) PageDTO {
	return PageDTO{
		ID:              p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		Status:          p.Status,
		PublishedAt:     p.PublishedAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		ParentID:        p.ParentID,
		MenuOrder:       p.MenuOrder,
		Template:        p.Template,
		AuthorID:        p.AuthorID,
		FeaturedMediaID: p.FeaturedMediaID,
		SeoTitle:        p.SeoTitle,
		SeoDescription:  p.SeoDescription,
		MetaJson:        p.MetaJson,
	}
}

func toRevisionDTO(r pages.PageRevision) RevisionDTO {
	return RevisionDTO{
		ID:              r.ID,
		Version:         r.Version,
		Title:           r.Title,
		Excerpt:         r.Excerpt,
		ChangeSummary:   r.ChangeSummary,
		CreatedByUserID: r.CreatedByUserID,
		CreatedAt:       r.CreatedAt,
	}
}
