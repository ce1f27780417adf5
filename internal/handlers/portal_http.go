package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/apiclient"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/views"
)

// PortalHTTP serves the public pages: no session is needed.
type PortalHTTP struct {
	*Base
}

func NewPortalHTTP(b *Base) *PortalHTTP { return &PortalHTTP{Base: b} }

func (h *PortalHTTP) Landing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, "landing.html", nil)
	}
}

func (h *PortalHTTP) CreatePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, "portal_create.html", views.Data{
			"form":       forms.TicketForm{Priority: models.PriorityMedium},
			"priorities": models.Priorities,
		})
	}
}

// Create files a ticket. An invalid form is re-rendered with its errors
// and nothing is sent upstream.
func (h *PortalHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, upload, errs := h.readTicket(w, r)
		data := views.Data{"form": in, "priorities": models.Priorities}
		if errs.Any() {
			data["errors"] = errs
			h.render(w, r, http.StatusUnprocessableEntity, "portal_create.html", data)
			return
		}

		res, err := h.API.SubmitTicket(r.Context(), newTicket(in, upload))
		if err != nil {
			h.Log.Warn().Err(err).Msg("portal ticket submit failed")
			data["errors"] = withAPIErrors(nil, err)
			data["error"] = apiclient.Message(err, "The ticket could not be created, please try again")
			h.render(w, r, http.StatusBadGateway, "portal_create.html", data)
			return
		}
		h.Log.Info().Str("ticket", res.TicketNumber).Msg("portal ticket created")
		h.render(w, r, http.StatusCreated, "portal_create.html", views.Data{
			"submitted":  res,
			"form":       forms.TicketForm{Priority: models.PriorityMedium},
			"priorities": models.Priorities,
		})
	}
}

func (h *PortalHTTP) SearchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, "portal_search.html", views.Data{
			"number": strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticket_number"))),
		})
	}
}

// Search looks a ticket up by number and shows the server's own message
// when it cannot be found.
func (h *PortalHTTP) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parseForm(r)
		in := forms.ParseSearch(r.PostForm)
		data := views.Data{"number": in.TicketNumber}
		if errs := h.Forms.Check(in); errs.Any() {
			data["errors"] = errs
			h.render(w, r, http.StatusUnprocessableEntity, "portal_search.html", data)
			return
		}

		t, err := h.API.SearchTicket(r.Context(), in.TicketNumber)
		if err != nil {
			status := http.StatusBadGateway
			if apiclient.IsNotFound(err) {
				status = http.StatusNotFound
			}
			data["error"] = apiclient.Message(err, "Ticket not found")
			h.render(w, r, status, "portal_search.html", data)
			return
		}
		data["ticket"] = t
		data["attachment_url"] = h.attachmentURL(t)
		h.render(w, r, http.StatusOK, "portal_search.html", data)
	}
}

// readTicket parses and validates a ticket form, including its optional
// image attachment. The body is capped before parsing so an oversized
// upload is refused without being spooled to disk.
func (b *Base) readTicket(w http.ResponseWriter, r *http.Request) (forms.TicketForm, *forms.Upload, forms.Errors) {
	r.Body = http.MaxBytesReader(w, r.Body, forms.MaxTicketBody)

	var bodyErr string
	if err := r.ParseMultipartForm(forms.MaxTicketBody); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			bodyErr = forms.MsgAttachmentTooLarge
		case errors.Is(err, http.ErrNotMultipart):
			parseForm(r)
		default:
			b.Log.Debug().Err(err).Msg("parse ticket form")
			bodyErr = forms.MsgAttachmentUnread
		}
	}
	in := forms.ParseTicket(r.PostForm)
	errs := b.Forms.Check(in)

	var upload *forms.Upload
	if bodyErr == "" {
		if _, fh, err := r.FormFile("attachment"); err == nil {
			upload, bodyErr = forms.ReadAttachment(fh)
		}
	}
	if bodyErr != "" {
		if errs == nil {
			errs = forms.Errors{}
		}
		errs["attachment"] = bodyErr
	}
	return in, upload, errs
}

func newTicket(in forms.TicketForm, upload *forms.Upload) apiclient.NewTicket {
	t := apiclient.NewTicket{
		RequesterName:  in.RequesterName,
		RequesterEmail: in.RequesterEmail,
		RequesterArea:  in.RequesterArea,
		Description:    in.Description,
		Priority:       in.Priority,
	}
	if upload != nil {
		t.Attachment = &apiclient.Attachment{
			Filename:    upload.Filename,
			ContentType: upload.ContentType,
			Body:        upload.Reader(),
		}
	}
	return t
}

func (b *Base) attachmentURL(t models.Ticket) string {
	if t.AttachmentPath == nil || *t.AttachmentPath == "" {
		return ""
	}
	p := *t.AttachmentPath
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return b.StorageURL + "/" + strings.TrimLeft(p, "/")
}
