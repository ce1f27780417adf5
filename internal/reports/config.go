package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

const configSchema = `{
  "type": "object",
  "required": ["endpoint"],
  "properties": {
    "endpoint": {"type": "string", "minLength": 1},
    "color":    {"type": "string"},
    "format":   {"type": "string"},
    "columns":  {"type": "array", "items": {"type": "string"}},
    "formats":  {"type": "array", "items": {"type": "string", "enum": ["excel", "pdf", "csv"]}},
    "days":     {"type": "integer", "minimum": 0}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(configSchema)

var ErrNoConfig = errors.New("report has no config")

// ParseConfig fills r.Config from r.RawConfig. The API sends the config
// either as an object or as a string holding JSON; both are accepted.
func ParseConfig(r *models.Report) error {
	raw := bytes.TrimSpace(r.RawConfig)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ErrNoConfig
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("report %s: config string: %w", r.Key, err)
		}
		raw = []byte(s)
	}

	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("report %s: config: %w", r.Key, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("report %s: invalid config: %s", r.Key, strings.Join(msgs, "; "))
	}

	var cfg models.ReportConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("report %s: config: %w", r.Key, err)
	}
	r.Config = cfg
	return nil
}

// Prepare parses every config and returns the usable reports ordered by
// their display order, plus the reports that had to be skipped.
func Prepare(in []models.Report) (ok []models.Report, skipped []error) {
	for i := range in {
		r := in[i]
		if err := ParseConfig(&r); err != nil {
			skipped = append(skipped, err)
			continue
		}
		ok = append(ok, r)
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].Order < ok[j].Order })
	return ok, skipped
}

// Groups is the reports page split by report type.
type Groups struct {
	Metrics []models.Report
	Charts  []models.Report
	Tables  []models.Report
	Exports []models.Report
}

func (g Groups) Empty() bool {
	return len(g.Metrics)+len(g.Charts)+len(g.Tables)+len(g.Exports) == 0
}

func Group(in []models.Report) Groups {
	var g Groups
	for _, r := range in {
		switch r.Type {
		case models.ReportMetric:
			g.Metrics = append(g.Metrics, r)
		case models.ReportChart:
			g.Charts = append(g.Charts, r)
		case models.ReportTable:
			g.Tables = append(g.Tables, r)
		case models.ReportExport:
			g.Exports = append(g.Exports, r)
		}
	}
	return g
}

// Find returns the report with the given key.
func Find(in []models.Report, key string) (models.Report, bool) {
	for _, r := range in {
		if r.Key == key {
			return r, true
		}
	}
	return models.Report{}, false
}

// CanExportFormat reports whether format is one the report offers.
func CanExportFormat(r models.Report, format string) bool {
	for _, f := range r.Config.Formats {
		if f == format {
			return true
		}
	}
	return false
}
