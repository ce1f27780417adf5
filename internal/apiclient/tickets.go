package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func (c *Client) ListTickets(ctx context.Context, q url.Values) (models.Page[models.Ticket], error) {
	var out models.Page[models.Ticket]
	_, err := c.request(ctx).SetQueryParamsFromValues(q).SetResult(&out).Get("/tickets")
	return out, err
}

func (c *Client) GetTicket(ctx context.Context, id int) (models.Ticket, error) {
	var out models.Ticket
	err := c.get(ctx, fmt.Sprintf("/tickets/%d", id), nil, &out)
	return out, err
}

func (c *Client) AssignTicket(ctx context.Context, id, agentID int, priority string) error {
	body := map[string]any{"agent_id": agentID, "priority": priority}
	return c.post(ctx, fmt.Sprintf("/tickets/%d/assign", id), body, nil)
}

func (c *Client) EscalateTicket(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/tickets/%d/escalate", id), nil, nil)
}

// UpdateTicketStatus moves the ticket to the status with the given name.
func (c *Client) UpdateTicketStatus(ctx context.Context, id int, status string) error {
	return c.patch(ctx, fmt.Sprintf("/tickets/%d/status", id), map[string]string{"status": status}, nil)
}

func (c *Client) CloseTicket(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/tickets/%d/close", id), nil, nil)
}

func (c *Client) ListComments(ctx context.Context, id int) ([]models.Comment, error) {
	return getList[models.Comment](ctx, c, fmt.Sprintf("/tickets/%d/comments", id), nil)
}

func (c *Client) AddComment(ctx context.Context, id int, comment string) error {
	return c.post(ctx, fmt.Sprintf("/tickets/%d/comments", id), map[string]string{"comment": comment}, nil)
}

func (c *Client) ListTicketStatuses(ctx context.Context) ([]models.TicketStatus, error) {
	return getList[models.TicketStatus](ctx, c, "/ticket-statuses", nil)
}
