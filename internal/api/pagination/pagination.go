package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is the shared query shape of every list endpoint.
type Params struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Parse reads page/limit/search/sortBy/sortOrder from the query string and
// clamps page >= 1 and limit into [1,100]; oversized limits cap at MaxLimit.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause picks an allow-listed sort column, falling back to def for
// unknown keys, and appends the direction.
func (p Params) OrderClause(columns map[string]string, def string) string {
	col, ok := columns[p.SortBy]
	if !ok {
		col = def
	}
	dir := "DESC"
	if p.SortOrder == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta computes totalPages = ceil(total/limit).
func NewMeta(p Params, total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
