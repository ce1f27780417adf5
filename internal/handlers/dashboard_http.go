package handlers

import (
	"net/http"
	"sort"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type DashboardHTTP struct {
	*Base
}

func NewDashboardHTTP(b *Base) *DashboardHTTP { return &DashboardHTTP{Base: b} }

// Count is one bucket of the dashboard breakdowns.
type Count struct {
	Label   string
	Count   int
	Percent int
}

type DashboardStats struct {
	Total      int
	ByStatus   []Count
	ByPriority []Count
}

// TicketStats counts the fetched tickets by status and by priority.
func TicketStats(tickets []models.Ticket) DashboardStats {
	byStatus := map[string]int{}
	byPriority := map[string]int{}
	for _, t := range tickets {
		byStatus[t.Status.Name]++
		byPriority[t.Priority]++
	}
	return DashboardStats{
		Total:      len(tickets),
		ByStatus:   counts(byStatus, len(tickets), nil),
		ByPriority: counts(byPriority, len(tickets), models.Priorities),
	}
}

// counts lists buckets in the given order first, then the rest by name.
func counts(m map[string]int, total int, order []string) []Count {
	rank := map[string]int{}
	for i, k := range order {
		rank[k] = i + 1
	}
	out := make([]Count, 0, len(m))
	for k, n := range m {
		c := Count{Label: k, Count: n}
		if total > 0 {
			c.Percent = n * 100 / total
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rank[out[i].Label], rank[out[j].Label]
		if ri != rj {
			if ri == 0 || rj == 0 {
				return rj == 0
			}
			return ri < rj
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// GET /dashboard
func (h *DashboardHTTP) Show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.API.ListTickets(r.Context(), nil)
		if err != nil {
			h.loadFailed(w, r, err, "Tickets could not be loaded")
			return
		}
		recent := page.Data
		if len(recent) > 5 {
			recent = recent[:5]
		}
		h.render(w, r, http.StatusOK, "dashboard.html", views.Data{
			"stats":  TicketStats(page.Data),
			"recent": recent,
		})
	}
}
