package apiclient

import (
	"context"
	"fmt"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// ListReports returns the templates visible to the signed-in user. Config
// is left raw; see package reports for parsing it.
func (c *Client) ListReports(ctx context.Context) ([]models.Report, error) {
	return getList[models.Report](ctx, c, "/reports", nil)
}

func (c *Client) ReportMetric(ctx context.Context, endpoint string, f models.ReportFilters) (models.MetricData, error) {
	var out models.MetricData
	err := c.get(ctx, endpoint, f.Params(), &out)
	return out, err
}

func (c *Client) ReportChart(ctx context.Context, endpoint string, f models.ReportFilters) (models.ChartData, error) {
	var out models.ChartData
	err := c.get(ctx, endpoint, f.Params(), &out)
	return out, err
}

func (c *Client) ReportTable(ctx context.Context, endpoint string, f models.ReportFilters) ([]map[string]any, error) {
	return getList[map[string]any](ctx, c, endpoint, f.Params())
}

// ExportReport asks the API to build a file and returns where to fetch it.
func (c *Client) ExportReport(ctx context.Context, endpoint string, f models.ReportFilters, format string) (models.ExportResult, error) {
	body := map[string]string{"format": format}
	for k, v := range f.Params() {
		body[k] = v
	}
	var out models.ExportResult
	err := c.post(ctx, endpoint, body, &out)
	return out, err
}

func (c *Client) RoleReports(ctx context.Context, roleID int) ([]models.Report, error) {
	var out struct {
		Reports []models.Report `json:"reports"`
	}
	err := c.get(ctx, fmt.Sprintf("/report-templates/role/%d", roleID), nil, &out)
	return out.Reports, err
}

func (c *Client) SaveRoleReports(ctx context.Context, roleID int, access []models.ReportAccess) error {
	if access == nil {
		access = []models.ReportAccess{}
	}
	body := map[string]any{"reports": access}
	return c.post(ctx, fmt.Sprintf("/report-templates/role/%d", roleID), body, nil)
}
