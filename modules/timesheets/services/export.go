package services

import (
	"github.com/shopspring/decimal"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/pkg/excel"
)

// ExportLabels are the sheet name, column headers and total row label of an
// export. Zero fields fall back to DefaultExportLabels.
type ExportLabels struct {
	Sheet   string
	Headers []string
	Total   string
}

var DefaultExportLabels = ExportLabels{
	Sheet:   "Timesheet",
	Headers: []string{"Date", "User", "Project", "Task", "Hours", "Note"},
	Total:   "Total",
}

func (l ExportLabels) withDefaults() ExportLabels {
	if l.Sheet == "" {
		l.Sheet = DefaultExportLabels.Sheet
	}
	if len(l.Headers) == 0 {
		l.Headers = DefaultExportLabels.Headers
	}
	if l.Total == "" {
		l.Total = DefaultExportLabels.Total
	}
	return l
}

// WriteWorkbook writes one row per entry and a closing total row.
func WriteWorkbook(sheets []dailysheet.DailySheet, labels ExportLabels) ([]byte, error) {
	labels = labels.withDefaults()
	e := excel.NewExporter(labels.Sheet, labels.Headers...)
	total := decimal.Zero
	for _, s := range sheets {
		e.AddRow(s.Date, s.UserName, s.ProjectName, s.TaskTitle, s.Hours, s.Note)
		total = total.Add(s.Hours)
	}
	e.AddRow("", "", "", labels.Total, total, "")
	return e.Bytes()
}
