package listing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func TestDefaults(t *testing.T) {
	q := New()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.PerPage)
	assert.Equal(t, "page=1&per_page=10", q.Encode())
}

func TestPerPageResetsPage(t *testing.T) {
	q := New().WithPage(4).WithPerPage(20)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PerPage)

	v := q.Values()
	assert.Equal(t, "20", v.Get("per_page"))
	assert.Equal(t, "1", v.Get("page"))
}

func TestFilterAndSearchResetPage(t *testing.T) {
	q := New().WithPage(3).WithFilter("role_id", "2")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "2", q.Filter("role_id"))

	q = q.WithPage(5).WithSearch("  ana ")
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, "ana", q.Search)

	q = q.WithFilter("role_id", "")
	_, ok := q.Filters["role_id"]
	assert.False(t, ok)
}

func TestWithPageKeepsFilters(t *testing.T) {
	base := New().WithFilter("status", "abierto")
	next := base.WithPage(2)
	assert.Equal(t, "abierto", next.Filter("status"))
	assert.Equal(t, 1, base.Page, "queries are values")
}

func TestUnsupportedPerPage(t *testing.T) {
	assert.Equal(t, 10, New().WithPerPage(13).PerPage)
	assert.Equal(t, 10, FromValues(url.Values{"per_page": {"999"}}).PerPage)
}

func TestFromValues(t *testing.T) {
	q := FromValues(url.Values{
		"page": {"3"}, "per_page": {"50"}, "search": {"net"}, "area_id": {"4"}, "ignored": {"x"},
	}, "area_id", "role_id")
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 50, q.PerPage)
	assert.Equal(t, "net", q.Search)
	assert.Equal(t, map[string]string{"area_id": "4"}, q.Filters)
}

func TestPager(t *testing.T) {
	q := New().WithPerPage(20).WithPage(2)
	p := NewPager(q, models.Page[int]{Data: make([]int, 20), CurrentPage: 2, LastPage: 3, PerPage: 20, Total: 45})
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 40, p.To)
	assert.Equal(t, "?page=1&per_page=20", p.PrevURL())
	assert.Equal(t, "?page=3&per_page=20", p.NextURL())
	assert.Equal(t, "?page=1&per_page=50", p.PerPageURL(50))

	empty := NewPager(New(), models.Page[int]{})
	assert.False(t, empty.HasPages())
	assert.Equal(t, 0, empty.From)
}
