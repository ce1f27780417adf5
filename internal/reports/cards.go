package reports

import (
	"context"
	"math"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/models"
)

// Source fetches the data behind report cards.
type Source interface {
	ReportMetric(ctx context.Context, endpoint string, f models.ReportFilters) (models.MetricData, error)
	ReportChart(ctx context.Context, endpoint string, f models.ReportFilters) (models.ChartData, error)
	ReportTable(ctx context.Context, endpoint string, f models.ReportFilters) ([]map[string]any, error)
}

type MetricCard struct {
	Report models.Report
	Data   models.MetricData
	Err    error
}

// Bar is one chart label with its value scaled against the largest value.
type Bar struct {
	Label string
	Value float64
	Pct   int
}

type ChartCard struct {
	Report models.Report
	Series string
	Bars   []Bar
	Err    error
}

type TableCard struct {
	Report models.Report
	Table  Table
	Rows   [][]string
	Err    error
}

// Page is everything the reports page draws. A failing card carries its
// error and the rest of the page still renders.
type Page struct {
	Metrics []MetricCard
	Charts  []ChartCard
	Tables  []TableCard
	Exports []models.Report
}

func (p Page) Empty() bool {
	return len(p.Metrics)+len(p.Charts)+len(p.Tables)+len(p.Exports) == 0
}

// Load fetches data for every grouped report, one request per card.
func Load(ctx context.Context, src Source, g Groups, f models.ReportFilters) Page {
	p := Page{Exports: g.Exports}
	for _, r := range g.Metrics {
		d, err := src.ReportMetric(ctx, r.Config.Endpoint, f)
		p.Metrics = append(p.Metrics, MetricCard{Report: r, Data: d, Err: err})
	}
	for _, r := range g.Charts {
		d, err := src.ReportChart(ctx, r.Config.Endpoint, f)
		card := ChartCard{Report: r, Err: err}
		if err == nil {
			card.Series, card.Bars = Bars(d)
		}
		p.Charts = append(p.Charts, card)
	}
	for _, r := range g.Tables {
		rows, err := src.ReportTable(ctx, r.Config.Endpoint, f)
		card := TableCard{Report: r, Err: err}
		if err == nil {
			card.Table = NewTable(r.Config.Columns, rows)
			for _, row := range rows {
				card.Rows = append(card.Rows, card.Table.Cells(row))
			}
		}
		p.Tables = append(p.Tables, card)
	}
	return p
}

// Bars flattens the first dataset of a chart into horizontal bars.
func Bars(d models.ChartData) (string, []Bar) {
	if len(d.Datasets) == 0 {
		return "", nil
	}
	ds := d.Datasets[0]
	top := 0.0
	for _, v := range ds.Data {
		top = math.Max(top, v)
	}
	bars := make([]Bar, 0, len(d.Labels))
	for i, l := range d.Labels {
		var v float64
		if i < len(ds.Data) {
			v = ds.Data[i]
		}
		b := Bar{Label: l, Value: v}
		if top > 0 {
			b.Pct = int(math.Round(v / top * 100))
		}
		bars = append(bars, b)
	}
	return ds.Label, bars
}
