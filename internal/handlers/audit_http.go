package handlers

import (
	"net/http"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/listing"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

type AuditHTTP struct {
	*Base
}

func NewAuditHTTP(b *Base) *AuditHTTP { return &AuditHTTP{Base: b} }

var auditFilters = []string{"change_type", "date_from", "date_to"}

// AuditCounts summarises the log entries on the current page.
type AuditCounts struct {
	Granted int
	Revoked int
	Role    int
	User    int
}

func CountChanges(logs []models.PermissionChangeLog) AuditCounts {
	var c AuditCounts
	for _, l := range logs {
		if l.Granted() {
			c.Granted++
		} else {
			c.Revoked++
		}
		switch l.ChangeType {
		case models.ChangeRolePermission:
			c.Role++
		case models.ChangeUserPermission:
			c.User++
		}
	}
	return c
}

// GET /admin/audit-log
func (h *AuditHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := listing.FromValues(r.URL.Query(), auditFilters...)
		page, err := h.API.PermissionAudit(r.Context(), q.Values())
		if err != nil {
			h.loadFailed(w, r, err, "The audit log could not be loaded")
			return
		}
		h.render(w, r, http.StatusOK, "admin_audit.html", views.Data{
			"logs":   page.Data,
			"counts": CountChanges(page.Data),
			"pager":  listing.NewPager(q, page),
			"query":  q,
		})
	}
}
