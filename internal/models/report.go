package models

import "encoding/json"

const (
	ReportMetric = "metric"
	ReportChart  = "chart"
	ReportTable  = "table"
	ReportExport = "export"
)

var ReportTypes = []string{ReportMetric, ReportChart, ReportTable, ReportExport}

type ReportConfig struct {
	Color    string   `json:"color,omitempty"`
	Endpoint string   `json:"endpoint"`
	Format   string   `json:"format,omitempty"`
	Columns  []string `json:"columns,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Days     int      `json:"days,omitempty"`
}

// Report is a server-defined report template. The API sends config either
// as an object or as a JSON-encoded string; RawConfig keeps it as received.
type Report struct {
	ID          int             `json:"id"`
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	ChartType   string          `json:"chart_type,omitempty"`
	Icon        string          `json:"icon"`
	RawConfig   json.RawMessage `json:"config"`
	IsSystem    bool            `json:"is_system"`
	IsActive    bool            `json:"is_active"`
	Order       int             `json:"order"`
	CanView     bool            `json:"can_view"`
	CanExport   bool            `json:"can_export"`

	Config ReportConfig `json:"-"`
}

// Exportable reports whether the report type supports an export flag.
func (r Report) Exportable() bool { return r.Type == ReportTable || r.Type == ReportExport }

type ReportAccess struct {
	ReportTemplateID int  `json:"report_template_id"`
	CanView          bool `json:"can_view"`
	CanExport        bool `json:"can_export"`
}

type MetricData struct {
	Value  float64  `json:"value"`
	Label  string   `json:"label,omitempty"`
	Change *float64 `json:"change,omitempty"`
}

type Dataset struct {
	Label           string          `json:"label,omitempty"`
	Data            []float64       `json:"data"`
	BackgroundColor json.RawMessage `json:"backgroundColor,omitempty"`
	BorderColor     string          `json:"borderColor,omitempty"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type ExportResult struct {
	DownloadURL string `json:"download_url"`
}

// ReportFilters are the filters the reports page forwards to every data endpoint.
type ReportFilters struct {
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
	Area     string `json:"area,omitempty"`
	Priority string `json:"priority,omitempty"`
}

func (f ReportFilters) Params() map[string]string {
	out := map[string]string{}
	if f.DateFrom != "" {
		out["dateFrom"] = f.DateFrom
	}
	if f.DateTo != "" {
		out["dateTo"] = f.DateTo
	}
	if f.Area != "" {
		out["area"] = f.Area
	}
	if f.Priority != "" {
		out["priority"] = f.Priority
	}
	return out
}
