package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Table is a table report ready to render or download.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// NewTable uses the configured columns, or the sorted keys of the first
// row when none are configured.
func NewTable(columns []string, rows []map[string]any) Table {
	if len(columns) == 0 && len(rows) > 0 {
		for k := range rows[0] {
			columns = append(columns, k)
		}
		sort.Strings(columns)
	}
	return Table{Columns: columns, Rows: rows}
}

// ColumnLabel turns created_at into "Created At".
func ColumnLabel(col string) string {
	return titleCaser.String(strings.ReplaceAll(col, "_", " "))
}

func (t Table) Labels() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = ColumnLabel(c)
	}
	return out
}

// Cells is the row laid out in column order, formatted for display.
func (t Table) Cells(row map[string]any) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = Cell(row[c])
	}
	return out
}

func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.2f", x)
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case map[string]any:
		if name, ok := x["name"]; ok {
			return Cell(name)
		}
	}
	return fmt.Sprint(v)
}

// WriteXLSX streams the table as a single-sheet workbook.
func (t Table) WriteXLSX(w io.Writer, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Report"
	}
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, l := range t.Labels() {
		header[i] = l
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return err
		}
	}

	for i, row := range t.Rows {
		vals := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			switch v := row[c].(type) {
			case float64, bool, string, nil:
				vals[j] = v
			default:
				vals[j] = Cell(v)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Labels()); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(t.Cells(row)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
