package views

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/forms"
	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(zerolog.Nop(), false)
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *Renderer, name string, data Data) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.HTML(w, http.StatusOK, name, data)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Body.String()
}

func TestMarkdownSanitizes(t *testing.T) {
	out := Markdown("**bold** <script>alert(1)</script>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "High", PriorityLabel("alta"))
	assert.Equal(t, "Low", PriorityLabel("baja"))
	assert.Equal(t, "Urgent Now", PriorityLabel("urgent_now"))
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "", TimeAgo(nil))
	assert.Contains(t, TimeAgo(time.Now().Add(-3*time.Hour)), "hours ago")
	assert.Contains(t, TimeAgo(time.Now().Add(-48*time.Hour).Format(time.RFC3339)), "days ago")
}

func TestRenderLoginWithErrors(t *testing.T) {
	r := newRenderer(t)
	out := render(t, r, "login.html", Data{
		"login":  "ana",
		"errors": forms.Errors{"password": "The password field is required"},
	})
	assert.Contains(t, out, `value="ana"`)
	assert.Contains(t, out, "The password field is required")
}

func TestRenderSearchShowsServerMessage(t *testing.T) {
	r := newRenderer(t)
	out := render(t, r, "portal_search.html", Data{
		"number": "TK-1",
		"error":  "Ticket not found",
	})
	assert.Contains(t, out, "Ticket not found")
}

func TestRenderTicketDetailHidesActionsFromRequesters(t *testing.T) {
	r := newRenderer(t)
	data := Data{
		"user":       &models.User{Name: "Ana"},
		"ticket":     models.Ticket{ID: 7, TicketNumber: "TK-7", Priority: "alta", Description: "Printer <b>on fire</b>"},
		"priorities": models.Priorities,
	}

	data["can_act"] = false
	out := render(t, r, "ticket_detail.html", data)
	assert.NotContains(t, out, "/tickets/7/assign")
	assert.Contains(t, out, "/tickets/7/comments")

	data["can_act"] = true
	out = render(t, r, "ticket_detail.html", data)
	assert.Contains(t, out, "/tickets/7/assign")
}

func TestHTMLWritesStatus(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	r.HTML(w, http.StatusNotFound, "error.html", Data{"status": 404, "message": "Not found"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Not found")
}

func TestHTMLMissingTemplateIs500(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	r.HTML(w, http.StatusOK, "nope.html", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTMLUnknownTemplateIs500(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()
	r.HTML(w, http.StatusOK, "missing.html", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
