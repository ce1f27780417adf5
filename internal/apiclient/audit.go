package apiclient

import (
	"context"
	"net/url"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// PermissionAudit pages through permission change logs. Supported filters
// are change_type, date_from and date_to.
func (c *Client) PermissionAudit(ctx context.Context, q url.Values) (models.Page[models.PermissionChangeLog], error) {
	var out models.Page[models.PermissionChangeLog]
	_, err := c.request(ctx).SetQueryParamsFromValues(q).SetResult(&out).Get("/audit/permissions")
	return out, err
}
