package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParseDefaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "desc", p.SortOrder)
}

func TestParseClamping(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"negative page", "page=-3", 1, DefaultLimit},
		{"zero page", "page=0", 1, DefaultLimit},
		{"garbage page", "page=abc", 1, DefaultLimit},
		{"limit over max clamps", "limit=500", 1, MaxLimit},
		{"zero limit", "limit=0", 1, DefaultLimit},
		{"negative limit", "limit=-5", 1, DefaultLimit},
		{"valid", "page=3&limit=50", 3, 50},
		{"max limit kept", "limit=100", 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paramsFor(t, tt.query)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 20}
	assert.Equal(t, 40, p.Offset())
}

func TestOrderClause(t *testing.T) {
	columns := map[string]string{"created": "created_at", "title": "title"}

	p := Params{SortBy: "title", SortOrder: "asc"}
	assert.Equal(t, "title ASC", p.OrderClause(columns, "created_at"))

	// Unknown sort keys fall back to the default column.
	p = Params{SortBy: "password; DROP TABLE users", SortOrder: "desc"}
	assert.Equal(t, "created_at DESC", p.OrderClause(columns, "created_at"))

	p = Params{SortBy: "", SortOrder: "sideways"}
	assert.Equal(t, "created_at DESC", p.OrderClause(columns, "created_at"))
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		total     int64
		limit     int
		wantPages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{95, 10, 10},
	}
	for _, tt := range tests {
		meta := NewMeta(Params{Page: 1, Limit: tt.limit}, tt.total)
		assert.Equal(t, tt.wantPages, meta.TotalPages)
		assert.Equal(t, tt.total, meta.Total)
	}
}
