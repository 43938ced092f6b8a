package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// buildTestConfig is the 300 x 360 ft reference warehouse using the module method.
func buildTestConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Length = 300
	cfg.Width = 360
	cfg.UseModuleMethod = true
	return cfg
}

var testTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		decimals int
		want     string
	}{
		{1234.5, 2, "1,234.50"},
		{108000, 0, "108,000"},
		{29970.246, 2, "29,970.25"},
		{-1234.567, 1, "-1,234.6"},
		{-0.001, 2, "0.00"},
		{math.NaN(), 2, "0"},
		{math.Inf(1), 0, "0"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatNumber(tc.in, tc.decimals), "FormatNumber(%v, %d)", tc.in, tc.decimals)
	}
}

func TestWriteCSV(t *testing.T) {
	cfg := buildTestConfig()
	res := engine.Compute(cfg)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cfg, res))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, "WAREHOUSE CAPACITY CALCULATOR - BILL OF QUANTITIES", rows[0][0])

	values := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}
	assert.Equal(t, "108,000", values["Warehouse Area"])
	assert.Equal(t, "9.5", values["Bay Length"])
	assert.Equal(t, "Standard", values["Aisle Type"])
	assert.Equal(t, "468", values["Total Bays"])
	assert.Equal(t, "6,552", values["Total Pallet Positions"])
	assert.Equal(t, "493", values["uprightPairs"])
	assert.Equal(t, "148", values["columnProtectors"])

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"columnProtectors", "148", "Column protectors (corner guards)"}, last)
}

func TestExportCSV_CreatesFile(t *testing.T) {
	cfg := buildTestConfig()
	path := filepath.Join(t.TempDir(), "boq.csv")

	require.NoError(t, ExportCSV(path, cfg, engine.Compute(cfg)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BILL OF QUANTITIES")
}

func TestRFQText(t *testing.T) {
	cfg := buildTestConfig()
	res := engine.Compute(cfg)

	text := RFQText(cfg, res, testTime)
	lines := strings.Split(text, "\n")

	assert.Equal(t, "WAREHOUSE RACKING SYSTEM - REQUEST FOR QUOTATION", lines[0])
	assert.Equal(t, strings.Repeat("=", 60), lines[1])
	assert.Contains(t, lines, "Total Rack Bays: 468 bays")
	assert.Contains(t, lines, "Bay Dimensions: 9.5 ft × 3.5 ft")
	assert.Contains(t, lines, "Total Rack Height: 42 ft")
	assert.Contains(t, lines, "493x Upright frames (42 ft height)")
	assert.Contains(t, lines, "Total Pallet Positions: 6,552")
	assert.Equal(t, "Generated: 2025-03-14 09:30:00", lines[len(lines)-1])

	// Deterministic for a fixed timestamp.
	assert.Equal(t, text, RFQText(cfg, res, testTime))
}

func TestExportXLSX(t *testing.T) {
	cfg := buildTestConfig()
	cfg.ClearHeight = 30
	res := engine.Compute(cfg)
	path := filepath.Join(t.TempDir(), "capacity.xlsx")

	require.NoError(t, ExportXLSX(path, cfg, res))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetInputs, SheetResults, SheetBoQ, SheetValidation}, f.GetSheetList())

	v, err := f.GetCellValue(SheetBoQ, "A2")
	require.NoError(t, err)
	assert.Equal(t, "uprightPairs", v)
	v, err = f.GetCellValue(SheetBoQ, "B2")
	require.NoError(t, err)
	assert.Equal(t, "493", v)

	v, err = f.GetCellValue(SheetResults, "B7")
	require.NoError(t, err)
	assert.Equal(t, "468", v)

	v, err = f.GetCellValue(SheetValidation, "B2")
	require.NoError(t, err)
	assert.Equal(t, "levels", v)
}

func TestWriteXLSX(t *testing.T) {
	cfg := buildTestConfig()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, cfg, engine.Compute(cfg)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 4)
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")

	cfg := buildTestConfig()
	res := engine.Compute(cfg)

	err := ExportPDF(path, cfg, res, engine.PlaceBays(cfg))
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF_WithFindingsAndNoLayout(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.ClearHeight = 30
	cfg.IsVNA = true
	cfg.MainAisleWidth = 6
	res := engine.Compute(cfg)

	var buf bytes.Buffer
	err := WritePDF(&buf, cfg, res, engine.Layout{})
	if err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestExportDXF(t *testing.T) {
	cfg := buildTestConfig()
	layout := engine.PlaceBays(cfg)
	path := filepath.Join(t.TempDir(), "plan.dxf")

	require.NoError(t, ExportDXF(path, layout))

	d, err := dxf.Open(path)
	require.NoError(t, err)

	lines := 0
	for _, e := range d.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	assert.Equal(t, 4*(len(layout.Bays)+1), lines)
}

func TestExportDXF_EmptyLayout(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "empty.dxf"), engine.Layout{})
	assert.Error(t, err)
}

func TestWrite_AllFormats(t *testing.T) {
	cfg := buildTestConfig()
	res := engine.Compute(cfg)

	for _, format := range model.ExportFormats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, format, cfg, res, testTime))
			assert.NotZero(t, buf.Len())
			assert.NotEqual(t, "application/octet-stream", ContentType(format))
		})
	}
}

func TestExport_AllFormats(t *testing.T) {
	cfg := buildTestConfig()
	res := engine.Compute(cfg)
	dir := t.TempDir()

	for _, format := range model.ExportFormats {
		path := filepath.Join(dir, "out"+Extension(format))
		require.NoError(t, Export(path, format, cfg, res, testTime), "format %s", format)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	cfg := buildTestConfig()
	err := Write(&bytes.Buffer{}, model.ExportFormat("svg"), cfg, engine.Compute(cfg), testTime)
	assert.Error(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".txt", Extension(model.FormatRFQ))
	assert.Equal(t, ".xlsx", Extension(model.FormatXLSX))
}
