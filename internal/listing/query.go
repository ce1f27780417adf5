package listing

import (
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
)

const (
	DefaultPerPage = 10
)

// PerPageOptions are the page sizes offered by every list page.
var PerPageOptions = []int{5, 10, 20, 50}

// Query is the state of a paginated, filtered list. It is a value: every
// With* method returns a copy.
type Query struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

func New() Query {
	return Query{Page: 1, PerPage: DefaultPerPage}
}

// FromValues reads page, per_page, search and the named filters from a
// request's query string. Out-of-range values fall back to the defaults.
func FromValues(v url.Values, filters ...string) Query {
	q := New()
	if p := utils.QueryInt(v, "page", 1); p > 0 {
		q.Page = p
	}
	if n := utils.QueryInt(v, "per_page", DefaultPerPage); slices.Contains(PerPageOptions, n) {
		q.PerPage = n
	}
	q.Search = strings.TrimSpace(v.Get("search"))
	for _, k := range filters {
		if val := strings.TrimSpace(v.Get(k)); val != "" {
			q = q.with(k, val)
		}
	}
	return q
}

func (q Query) with(k, v string) Query {
	f := make(map[string]string, len(q.Filters)+1)
	for fk, fv := range q.Filters {
		f[fk] = fv
	}
	if v == "" {
		delete(f, k)
	} else {
		f[k] = v
	}
	q.Filters = f
	return q
}

// WithPerPage changes the page size and goes back to the first page.
func (q Query) WithPerPage(n int) Query {
	if !slices.Contains(PerPageOptions, n) {
		n = DefaultPerPage
	}
	q.PerPage = n
	q.Page = 1
	return q
}

// WithFilter sets (or clears, when v is empty) a filter and goes back to
// the first page.
func (q Query) WithFilter(k, v string) Query {
	q = q.with(k, strings.TrimSpace(v))
	q.Page = 1
	return q
}

func (q Query) WithSearch(s string) Query {
	q.Search = strings.TrimSpace(s)
	q.Page = 1
	return q
}

func (q Query) WithPage(p int) Query {
	if p < 1 {
		p = 1
	}
	q.Page = p
	return q
}

func (q Query) Filter(k string) string { return q.Filters[k] }

// Values encodes the query for the API and for page links.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}

// Encode is the query string for links; url.Values sorts keys.
func (q Query) Encode() string { return q.Values().Encode() }
