package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/listing"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/utils"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

// TicketHTTP serves the internal ticket pages. Every action is one
// upstream call followed by a redirect, so the page always shows what the
// API holds.
type TicketHTTP struct {
	*Base
}

func NewTicketHTTP(b *Base) *TicketHTTP { return &TicketHTTP{Base: b} }

var ticketFilters = []string{"status", "priority"}

// -----------------------------------------------------------------------------
// GET /tickets
// -----------------------------------------------------------------------------
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := listing.FromValues(r.URL.Query(), ticketFilters...)
		page, err := h.API.ListTickets(r.Context(), q.Values())
		if err != nil {
			h.loadFailed(w, r, err, "Tickets could not be loaded")
			return
		}

		statuses, err := h.API.ListTicketStatuses(r.Context())
		if err != nil {
			if errors.Is(err, apiclient.ErrUnauthorized) {
				h.expired(w, r)
				return
			}
			h.Log.Warn().Err(err).Msg("load ticket statuses")
		}

		h.render(w, r, http.StatusOK, "tickets.html", views.Data{
			"tickets":    page.Data,
			"pager":      listing.NewPager(q, page),
			"query":      q,
			"statuses":   statuses,
			"priorities": models.Priorities,
		})
	}
}

// -----------------------------------------------------------------------------
// GET/POST /tickets/new
// -----------------------------------------------------------------------------
func (h *TicketHTTP) NewPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.User(r.Context())
		in := forms.TicketForm{Priority: models.PriorityMedium}
		if u != nil {
			in.RequesterName = u.Name
			in.RequesterEmail = u.Email
			in.RequesterArea = u.AreaName()
		}
		h.render(w, r, http.StatusOK, "ticket_new.html", h.newTicketData(r, in, nil))
	}
}

func (h *TicketHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, upload, errs := h.readTicket(w, r)
		if errs.Any() {
			h.render(w, r, http.StatusUnprocessableEntity, "ticket_new.html", h.newTicketData(r, in, errs))
			return
		}
		res, err := h.API.SubmitTicket(r.Context(), newTicket(in, upload))
		if err != nil {
			if errors.Is(err, apiclient.ErrUnauthorized) {
				h.expired(w, r)
				return
			}
			data := h.newTicketData(r, in, withAPIErrors(nil, err))
			data["error"] = apiclient.Message(err, "The ticket could not be created")
			h.render(w, r, http.StatusBadGateway, "ticket_new.html", data)
			return
		}
		h.done(w, r, fmt.Sprintf("Ticket %s created", res.TicketNumber), "/tickets")
	}
}

func (h *TicketHTTP) newTicketData(r *http.Request, in forms.TicketForm, errs forms.Errors) views.Data {
	areas, err := h.API.AllAreas(r.Context())
	if err != nil {
		h.Log.Warn().Err(err).Msg("load areas")
	}
	return views.Data{
		"action":     "/tickets/new",
		"form":       in,
		"errors":     errs,
		"areas":      areas,
		"priorities": models.Priorities,
	}
}

// -----------------------------------------------------------------------------
// GET /tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		ctx := r.Context()
		t, err := h.API.GetTicket(ctx, id)
		if err != nil {
			h.loadFailed(w, r, err, "Ticket not found")
			return
		}

		comments, err := h.API.ListComments(ctx, id)
		if h.optional(w, r, err, "load comments") {
			return
		}
		statuses, err := h.API.ListTicketStatuses(ctx)
		if h.optional(w, r, err, "load ticket statuses") {
			return
		}

		canAct := !session.User(ctx).IsRequester()
		var agents []models.User
		if canAct {
			users, err := h.API.ListUsers(ctx, url.Values{"per_page": {"100"}})
			if h.optional(w, r, err, "load agents") {
				return
			}
			agents = Agents(users.Data)
		}

		h.render(w, r, http.StatusOK, "ticket_detail.html", views.Data{
			"ticket":         t,
			"attachment_url": h.attachmentURL(t),
			"comments":       comments,
			"statuses":       statuses,
			"agents":         agents,
			"priorities":     models.Priorities,
			"can_act":        canAct,
		})
	}
}

// optional logs a failed secondary load. It reports true when the failure
// ended the session and the response is already written.
func (h *TicketHTTP) optional(w http.ResponseWriter, r *http.Request, err error, what string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		h.expired(w, r)
		return true
	}
	h.Log.Warn().Err(err).Msg(what)
	return false
}

// Agents keeps the active users that can work on tickets.
func Agents(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for i := range users {
		if users[i].IsActive && !users[i].IsRequester() {
			out = append(out, users[i])
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// POST /tickets/{id}/...
// -----------------------------------------------------------------------------
func (h *TicketHTTP) action(fn func(w http.ResponseWriter, r *http.Request, id int, back string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r, "id")
		if !ok {
			h.notFound(w, r)
			return
		}
		parseForm(r)
		fn(w, r, id, fmt.Sprintf("/tickets/%d", id))
	}
}

func (h *TicketHTTP) Assign() http.HandlerFunc {
	return h.action(func(w http.ResponseWriter, r *http.Request, id int, back string) {
		agentID := utils.QueryInt(r.PostForm, "agent_id", 0)
		priority := strings.TrimSpace(r.PostForm.Get("priority"))
		if agentID <= 0 {
			session.SetFlash(w, flashError, "Select an agent to assign the ticket to")
			utils.Redirect(w, r, back)
			return
		}
		if err := h.API.AssignTicket(r.Context(), id, agentID, priority); err != nil {
			h.fail(w, r, err, "The ticket could not be assigned", back)
			return
		}
		h.done(w, r, "Ticket assigned", back)
	})
}

func (h *TicketHTTP) Escalate() http.HandlerFunc {
	return h.action(func(w http.ResponseWriter, r *http.Request, id int, back string) {
		if err := h.API.EscalateTicket(r.Context(), id); err != nil {
			h.fail(w, r, err, "The ticket could not be escalated", back)
			return
		}
		h.done(w, r, "Ticket escalated", back)
	})
}

func (h *TicketHTTP) UpdateStatus() http.HandlerFunc {
	return h.action(func(w http.ResponseWriter, r *http.Request, id int, back string) {
		status := strings.TrimSpace(r.PostForm.Get("status"))
		if status == "" {
			session.SetFlash(w, flashError, "Select a status")
			utils.Redirect(w, r, back)
			return
		}
		if err := h.API.UpdateTicketStatus(r.Context(), id, status); err != nil {
			h.fail(w, r, err, "The status could not be updated", back)
			return
		}
		h.done(w, r, "Status updated", back)
	})
}

func (h *TicketHTTP) Comment() http.HandlerFunc {
	return h.action(func(w http.ResponseWriter, r *http.Request, id int, back string) {
		comment := strings.TrimSpace(r.PostForm.Get("comment"))
		if comment == "" {
			session.SetFlash(w, flashError, "The comment cannot be empty")
			utils.Redirect(w, r, back)
			return
		}
		if err := h.API.AddComment(r.Context(), id, comment); err != nil {
			h.fail(w, r, err, "The comment could not be added", back)
			return
		}
		h.done(w, r, "Comment added", back)
	})
}

// Close goes back to the list on success.
func (h *TicketHTTP) Close() http.HandlerFunc {
	return h.action(func(w http.ResponseWriter, r *http.Request, id int, back string) {
		if err := h.API.CloseTicket(r.Context(), id); err != nil {
			h.fail(w, r, err, "The ticket could not be closed", back)
			return
		}
		h.done(w, r, "Ticket closed", "/tickets")
	})
}
