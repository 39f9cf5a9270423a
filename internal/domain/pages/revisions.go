package pages

import (
	"time"

	"gorm.io/gorm"
)

// NextVersion returns max(version)+1 for a page, 1 when no revisions exist.
// Read-then-write: two concurrent writers can compute the same number, the
// (page_id, version) unique index rejects the loser.
func NextVersion(tx *gorm.DB, pageID string) (int, error) {
	var max *int
	err := tx.Model(&PageRevision{}).
		Where("page_id = ?", pageID).
		Select("MAX(version)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// AppendRevision snapshots the page's current content as the next revision.
func AppendRevision(tx *gorm.DB, p *Page, summary string, actorID uint, now time.Time) (*PageRevision, error) {
	version, err := NextVersion(tx, p.ID)
	if err != nil {
		return nil, err
	}
	rev := PageRevision{
		PageID:          p.ID,
		Version:         version,
		Title:           p.Title,
		Content:         p.Content,
		Excerpt:         p.Excerpt,
		ChangeSummary:   &summary,
		CreatedByUserID: actorID,
		CreatedAt:       now,
	}
	if err := tx.Create(&rev).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// WouldCreateCycle walks parent pointers from the proposed parent up to the
// root and reports whether pageID is encountered. A visited set guards
// against pre-existing cycles in the stored tree.
func WouldCreateCycle(tx *gorm.DB, pageID, parentID string) (bool, error) {
	visited := map[string]bool{}
	current := parentID
	for current != "" {
		if current == pageID {
			return true, nil
		}
		if visited[current] {
			return true, nil
		}
		visited[current] = true

		var parent *string
		err := tx.Model(&Page{}).
			Where("id = ?", current).
			Select("parent_id").
			Scan(&parent).Error
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		current = *parent
	}
	return false, nil
}
