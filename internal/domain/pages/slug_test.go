package pages_test

import (
	"testing"

	pagesdomain "cms-backend/internal/domain/pages"
	"cms-backend/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueSlug(t *testing.T) {
	db := testdb.Open(t)

	slug, err := pagesdomain.GenerateUniqueSlug(db, "Hello World", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", slug)

	require.NoError(t, db.Create(&pagesdomain.Page{Title: "Hello World", Slug: "hello-world", AuthorID: 1}).Error)

	slug, err = pagesdomain.GenerateUniqueSlug(db, "Hello World", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", slug)

	require.NoError(t, db.Create(&pagesdomain.Page{Title: "Hello World", Slug: "hello-world-1", AuthorID: 1}).Error)

	slug, err = pagesdomain.GenerateUniqueSlug(db, "Hello World", "")
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", slug)
}

func TestGenerateUniqueSlugExcludesOwnPage(t *testing.T) {
	db := testdb.Open(t)

	page := pagesdomain.Page{Title: "About", Slug: "about", AuthorID: 1}
	require.NoError(t, db.Create(&page).Error)

	// Re-slugging a page to its current slug must not count itself as a
	// collision.
	slug, err := pagesdomain.GenerateUniqueSlug(db, "About", page.ID)
	require.NoError(t, err)
	assert.Equal(t, "about", slug)
}

func TestGenerateUniqueSlugEmptyInput(t *testing.T) {
	db := testdb.Open(t)

	slug, err := pagesdomain.GenerateUniqueSlug(db, "!!!", "")
	require.NoError(t, err)
	assert.Len(t, slug, 8)
}

func TestNextVersion(t *testing.T) {
	db := testdb.Open(t)

	page := pagesdomain.Page{Title: "Doc", Slug: "doc", AuthorID: 1}
	require.NoError(t, db.Create(&page).Error)

	v, err := pagesdomain.NextVersion(db, page.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = pagesdomain.AppendRevision(db, &page, "Initial version", 1, page.CreatedAt)
	require.NoError(t, err)

	v, err = pagesdomain.NextVersion(db, page.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestRevisionVersionUniquePerPage(t *testing.T) {
	db := testdb.Open(t)

	page := pagesdomain.Page{Title: "Doc", Slug: "doc", AuthorID: 1}
	require.NoError(t, db.Create(&page).Error)

	rev := pagesdomain.PageRevision{PageID: page.ID, Version: 1, Title: "Doc", CreatedByUserID: 1}
	require.NoError(t, db.Create(&rev).Error)

	dup := pagesdomain.PageRevision{PageID: page.ID, Version: 1, Title: "Doc", CreatedByUserID: 1}
	assert.Error(t, db.Create(&dup).Error)
}

func TestWouldCreateCycle(t *testing.T) {
	db := testdb.Open(t)

	a := pagesdomain.Page{Title: "A", Slug: "a", AuthorID: 1}
	require.NoError(t, db.Create(&a).Error)
	b := pagesdomain.Page{Title: "B", Slug: "b", AuthorID: 1, ParentID: &a.ID}
	require.NoError(t, db.Create(&b).Error)
	c := pagesdomain.Page{Title: "C", Slug: "c", AuthorID: 1, ParentID: &b.ID}
	require.NoError(t, db.Create(&c).Error)

	cycle, err := pagesdomain.WouldCreateCycle(db, a.ID, c.ID)
	require.NoError(t, err)
	assert.True(t, cycle, "a -> c -> b -> a loops")

	cycle, err = pagesdomain.WouldCreateCycle(db, c.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, cycle, "c under a is already the shape of the tree")

	cycle, err = pagesdomain.WouldCreateCycle(db, a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, cycle, "self-parenting")
}
