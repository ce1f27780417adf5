package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

type AreaInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Client) ListAreas(ctx context.Context, q url.Values) (models.Page[models.Area], error) {
	var out models.Page[models.Area]
	_, err := c.request(ctx).SetQueryParamsFromValues(q).SetResult(&out).Get("/areas")
	return out, err
}

// AllAreas is the unpaginated list used by select boxes.
func (c *Client) AllAreas(ctx context.Context) ([]models.Area, error) {
	return getList[models.Area](ctx, c, "/areas", map[string]string{"per_page": "1000"})
}

func (c *Client) CreateArea(ctx context.Context, in AreaInput) (models.Area, error) {
	var out models.Area
	err := c.post(ctx, "/areas", in, &out)
	return out, err
}

func (c *Client) UpdateArea(ctx context.Context, id int, in AreaInput) (models.Area, error) {
	var out models.Area
	err := c.patch(ctx, fmt.Sprintf("/areas/%d", id), in, &out)
	return out, err
}

// DeleteArea fails with a 422 when users are still assigned to the area.
func (c *Client) DeleteArea(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/areas/%d", id))
}
