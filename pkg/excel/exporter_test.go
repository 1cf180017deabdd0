package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExporter_Bytes(t *testing.T) {
	e := NewExporter("Timesheet", "Date", "Project", "Hours")
	e.AddRow(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "Apollo", decimal.RequireFromString("7.5"))
	e.AddRow(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), "Apollo", 8)
	require.Equal(t, 2, e.Len())

	data, err := e.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, "Timesheet", f.GetSheetName(0))
	rows, err := f.GetRows("Timesheet")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Project", "Hours"}, rows[0])
	assert.Equal(t, "Apollo", rows[1][1])
	assert.Equal(t, "7.5", rows[1][2])
	assert.Equal(t, "8", rows[2][2])
}

func TestExporter_EmptySheetKeepsHeaders(t *testing.T) {
	data, err := NewExporter("", "A").Bytes()
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}}, rows)
}
