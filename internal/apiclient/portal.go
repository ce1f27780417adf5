package apiclient

import (
	"context"
	"io"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type Attachment struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type NewTicket struct {
	RequesterName  string
	RequesterEmail string
	RequesterArea  string
	Description    string
	Priority       string
	Attachment     *Attachment
}

// SubmitTicket files a ticket through the public portal endpoint as
// multipart/form-data. No session is needed.
func (c *Client) SubmitTicket(ctx context.Context, t NewTicket) (models.SubmittedTicket, error) {
	var out models.SubmittedTicket
	req := c.request(ctx).
		SetMultipartFormData(map[string]string{
			"requester_name":  t.RequesterName,
			"requester_email": t.RequesterEmail,
			"requester_area":  t.RequesterArea,
			"description":     t.Description,
			"priority":        t.Priority,
		}).
		SetResult(&out)
	if a := t.Attachment; a != nil {
		req.SetMultipartField("attachment", a.Filename, a.ContentType, a.Body)
	}
	_, err := req.Post("/portal/tickets")
	return out, err
}

func (c *Client) SearchTicket(ctx context.Context, ticketNumber string) (models.Ticket, error) {
	var out models.Ticket
	err := c.post(ctx, "/portal/tickets/search", map[string]string{"ticket_number": ticketNumber}, &out)
	return out, err
}
