package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackPlan/internal/model"
)

// Workbook sheet names.
const (
	SheetInputs     = "Inputs"
	SheetResults    = "Results"
	SheetBoQ        = "BoQ"
	SheetValidation = "Validation"
)

type xlsxSheet struct {
	name   string
	header []any
	rows   [][]any
	widths []float64
}

func xlsxSheets(cfg model.Config, res model.Result) []xlsxSheet {
	crossAisle := cfg.CrossAisle()

	inputs := xlsxSheet{
		name:   SheetInputs,
		header: []any{"Parameter", "Value", "Unit"},
		widths: []float64{32, 16, 10},
		rows: [][]any{
			{"Warehouse Length", cfg.Length, "ft"},
			{"Warehouse Width", cfg.Width, "ft"},
			{"Warehouse Area", res.Areas.TotalArea, "sq.ft"},
			{"Clear Height", cfg.ClearHeight, "ft"},
			{"Baseline CBM", cfg.BaselineCBM, "CBM"},
			{"Bay Length", cfg.BayLength, "ft"},
			{"Bay Width", cfg.BayWidth, "ft"},
			{"Level Height", cfg.LevelHeight, "ft"},
			{"Levels", cfg.Levels, "count"},
			{"Racking Area", cfg.PercentRacking, "%"},
			{"Mezzanine Area", cfg.MezzPercent, "% of racking"},
			{"Small Gap", cfg.SmallGap, "ft"},
			{"Aisle Width", cfg.MainAisleWidth, "ft"},
			{"Cross Aisle Width", crossAisle, "ft"},
			{"Aisle Type", aisleType(cfg.IsVNA), "-"},
			{"Aisle Overhead Multiplier", cfg.AisleOverheadMultiplier, "x"},
			{"Pallet Footprint", cfg.PalletFootprint, "sq.ft"},
			{"Mezzanine Clear Height", cfg.MezzClearHeight, "ft"},
			{"Mezzanine Levels", cfg.MezzLevels, "count"},
			{"Bay Count Method", string(res.BayCountDetails.Method), "-"},
		},
	}

	results := xlsxSheet{
		name:   SheetResults,
		header: []any{"Metric", "Value", "Unit"},
		widths: []float64{32, 16, 10},
		rows: [][]any{
			{"Total Area", res.Areas.TotalArea, "sq.ft"},
			{"Racking Area", res.Areas.RackingArea, "sq.ft"},
			{"HD Rack Area", res.Areas.HDArea, "sq.ft"},
			{"Mezzanine Area", res.Areas.MezzArea, "sq.ft"},
			{"Staging Area", res.Areas.StagingArea, "sq.ft"},
			{"Total Bays", res.BayCount, "count"},
			{"Total Rack Height", res.TotalRackHeight, "ft"},
			{"Volume per Bay", res.VolumePerBayCBM, "CBM"},
			{"Total Rack CBM", res.TotalRackCBM, "CBM"},
			{"Mezzanine CBM", res.MezzCBM, "CBM"},
			{"Baseline CBM", res.BaselineCBM, "CBM"},
			{"Total CBM", res.TotalCBM, "CBM"},
			{"Extra CBM", res.ExtraCBM, "CBM"},
			{"Space Improvement", res.SpaceImprovementFactor, "x"},
			{"Area per CBM", res.SqftPerCBM, "sq.ft/CBM"},
			{"Pallets per Level", res.PalletsPerLevel, "count"},
			{"Total Pallet Positions", res.TotalPalletPositions, "count"},
		},
	}

	boq := xlsxSheet{
		name:   SheetBoQ,
		header: []any{"Item", "Quantity", "Description"},
		widths: []float64{20, 12, 40},
	}
	for _, item := range res.BoQ.Items() {
		boq.rows = append(boq.rows, []any{item.Key, item.Quantity, item.Description})
	}

	validation := xlsxSheet{
		name:   SheetValidation,
		header: []any{"Severity", "Field", "Kind", "Message"},
		widths: []float64{10, 24, 14, 90},
	}
	for _, f := range res.Validation.Errors {
		validation.rows = append(validation.rows, []any{"Error", f.Field, string(f.Kind), f.Message})
	}
	for _, f := range res.Validation.Warnings {
		validation.rows = append(validation.rows, []any{"Warning", f.Field, string(f.Kind), f.Message})
	}

	return []xlsxSheet{inputs, results, boq, validation}
}

// buildWorkbook creates the workbook in memory. The caller must Close it.
func buildWorkbook(cfg model.Config, res model.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range xlsxSheets(cfg, res) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", sheet.name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet xlsxSheet, headerStyle int) error {
	if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet.name, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(sheet.header), 1)
	if err := f.SetCellStyle(sheet.name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet.name, err)
	}

	for i, row := range sheet.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet.name, i+2, err)
		}
	}

	for i, w := range sheet.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet.name, col, col, w); err != nil {
			return fmt.Errorf("failed to size %s column %s: %w", sheet.name, col, err)
		}
	}
	return nil
}

// WriteXLSX writes the capacity workbook to w.
func WriteXLSX(w io.Writer, cfg model.Config, res model.Result) error {
	f, err := buildWorkbook(cfg, res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the capacity workbook to path.
func ExportXLSX(path string, cfg model.Config, res model.Result) error {
	f, err := buildWorkbook(cfg, res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
