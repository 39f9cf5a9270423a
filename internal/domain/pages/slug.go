package pages

import (
	"fmt"
	"strings"

	"cms-backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateUniqueSlug derives a slug from input that no other page currently
// uses. On collision it retries with -1, -2, ... suffixes. excludeID skips a
// page when re-slugging it (pass "" on create).
//
// The check is not race-free under concurrent creates with the same title;
// the unique index on pages.slug is the final arbiter and a losing insert
// surfaces as gorm.ErrDuplicatedKey.
func GenerateUniqueSlug(db *gorm.DB, input string, excludeID string) (string, error) {
	base := util.Slugify(input)
	if base == "" {
		base = strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}

	slug := base
	for i := 1; ; i++ {
		var count int64
		q := db.Model(&Page{}).Where("slug = ?", slug)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
