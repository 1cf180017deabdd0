// Package excel writes tabular exports as xlsx workbooks.
package excel

import (
	"bytes"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Exporter accumulates rows for a single sheet.
type Exporter struct {
	sheet   string
	headers []string
	rows    [][]any
}

func NewExporter(sheet string, headers ...string) *Exporter {
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &Exporter{sheet: sheet, headers: headers}
}

// AddRow appends a row. Cells may be strings, numbers, decimals, time.Time or nil.
func (e *Exporter) AddRow(cells ...any) {
	e.rows = append(e.rows, cells)
}

func (e *Exporter) Len() int {
	return len(e.rows)
}

func cellValue(v any) any {
	switch c := v.(type) {
	case decimal.Decimal:
		f, _ := c.Float64()
		return f
	case *decimal.Decimal:
		if c == nil {
			return nil
		}
		f, _ := c.Float64()
		return f
	default:
		return v
	}
}

// Bytes renders the workbook.
func (e *Exporter) Bytes() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), e.sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, errors.Wrap(err, "date style")
	}

	for col, h := range e.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(e.sheet, cell, h); err != nil {
			return nil, errors.Wrapf(err, "header %s", cell)
		}
		if err := f.SetCellStyle(e.sheet, cell, cell, bold); err != nil {
			return nil, err
		}
	}

	offset := 1
	if len(e.headers) == 0 {
		offset = 0
	}
	for i, row := range e.rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1+offset)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(e.sheet, cell, cellValue(v)); err != nil {
				return nil, errors.Wrapf(err, "cell %s", cell)
			}
			if _, ok := v.(time.Time); ok {
				if err := f.SetCellStyle(e.sheet, cell, cell, dateStyle); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}
