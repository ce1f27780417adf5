package reports

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

func TestParseConfigObjectAndString(t *testing.T) {
	obj := models.Report{Key: "a", RawConfig: json.RawMessage(`{"endpoint":"/reports/metrics/open","color":"blue"}`)}
	require.NoError(t, ParseConfig(&obj))
	assert.Equal(t, "/reports/metrics/open", obj.Config.Endpoint)
	assert.Equal(t, "blue", obj.Config.Color)

	str := models.Report{Key: "b", RawConfig: json.RawMessage(`"{\"endpoint\":\"/reports/export/all\",\"formats\":[\"excel\",\"csv\"]}"`)}
	require.NoError(t, ParseConfig(&str))
	assert.Equal(t, []string{"excel", "csv"}, str.Config.Formats)
	assert.True(t, CanExportFormat(str, "csv"))
	assert.False(t, CanExportFormat(str, "pdf"))
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	missing := models.Report{Key: "c", RawConfig: json.RawMessage(`{"color":"red"}`)}
	assert.ErrorContains(t, ParseConfig(&missing), "invalid config")

	badFormat := models.Report{Key: "d", RawConfig: json.RawMessage(`{"endpoint":"/x","formats":["docx"]}`)}
	assert.Error(t, ParseConfig(&badFormat))

	none := models.Report{Key: "e"}
	assert.ErrorIs(t, ParseConfig(&none), ErrNoConfig)
}

func TestPrepareAndGroup(t *testing.T) {
	in := []models.Report{
		{ID: 1, Key: "t", Type: models.ReportTable, Order: 3, RawConfig: json.RawMessage(`{"endpoint":"/t"}`)},
		{ID: 2, Key: "m", Type: models.ReportMetric, Order: 1, RawConfig: json.RawMessage(`{"endpoint":"/m"}`)},
		{ID: 3, Key: "broken", Type: models.ReportChart, RawConfig: json.RawMessage(`{}`)},
		{ID: 4, Key: "m2", Type: models.ReportMetric, Order: 0, RawConfig: json.RawMessage(`{"endpoint":"/m2"}`)},
	}
	ok, skipped := Prepare(in)
	assert.Len(t, skipped, 1)
	require.Len(t, ok, 3)
	assert.Equal(t, "m2", ok[0].Key)

	g := Group(ok)
	assert.Len(t, g.Metrics, 2)
	assert.Len(t, g.Tables, 1)
	assert.Empty(t, g.Charts)
	assert.False(t, g.Empty())

	r, found := Find(ok, "t")
	assert.True(t, found)
	assert.Equal(t, 1, r.ID)
}

func sampleTable() Table {
	return NewTable([]string{"ticket_number", "priority", "hours", "area"}, []map[string]any{
		{"ticket_number": "TK-1", "priority": "alta", "hours": 3.5, "area": map[string]any{"name": "Sistemas"}},
		{"ticket_number": "TK-2", "priority": "baja", "hours": float64(2), "area": nil},
	})
}

func TestTableFormatting(t *testing.T) {
	tb := sampleTable()
	assert.Equal(t, []string{"Ticket Number", "Priority", "Hours", "Area"}, tb.Labels())
	assert.Equal(t, []string{"TK-1", "alta", "3.50", "Sistemas"}, tb.Cells(tb.Rows[0]))
	assert.Equal(t, []string{"TK-2", "baja", "2", "-"}, tb.Cells(tb.Rows[1]))

	inferred := NewTable(nil, []map[string]any{{"b": 1.0, "a": 2.0}})
	assert.Equal(t, []string{"a", "b"}, inferred.Columns)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Ticket Number,Priority,Hours,Area", lines[0])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleTable().WriteXLSX(&buf, "Tickets"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Tickets")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ticket Number", rows[0][0])
	assert.Equal(t, "TK-2", rows[2][0])
	assert.Equal(t, "Sistemas", rows[1][3])
}
