package listing

import "github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"

// Pager is what templates need to draw pagination controls.
type Pager struct {
	Query       Query
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	From        int
	To          int
}

func NewPager[T any](q Query, p models.Page[T]) Pager {
	pg := Pager{
		Query:       q,
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
	if pg.CurrentPage < 1 {
		pg.CurrentPage = 1
	}
	if pg.LastPage < pg.CurrentPage {
		pg.LastPage = pg.CurrentPage
	}
	if pg.PerPage < 1 {
		pg.PerPage = q.PerPage
	}
	if n := len(p.Data); n > 0 {
		pg.From = (pg.CurrentPage-1)*pg.PerPage + 1
		pg.To = pg.From + n - 1
	}
	return pg
}

func (p Pager) HasPrev() bool  { return p.CurrentPage > 1 }
func (p Pager) HasNext() bool  { return p.CurrentPage < p.LastPage }
func (p Pager) HasPages() bool { return p.LastPage > 1 }

func (p Pager) PrevURL() string { return "?" + p.Query.WithPage(p.CurrentPage-1).Encode() }
func (p Pager) NextURL() string { return "?" + p.Query.WithPage(p.CurrentPage+1).Encode() }

// PageURL links to page n keeping filters and page size.
func (p Pager) PageURL(n int) string { return "?" + p.Query.WithPage(n).Encode() }

// PerPageURL links to the first page with n rows per page.
func (p Pager) PerPageURL(n int) string { return "?" + p.Query.WithPerPage(n).Encode() }

func (p Pager) PerPageOptions() []int { return PerPageOptions }
