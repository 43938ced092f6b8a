package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/RackPlan/internal/model"
)

// csvRows builds the BoQ sheet: input parameters, capacity results and the
// bill of quantities, separated by blank rows.
func csvRows(cfg model.Config, res model.Result) [][]string {
	rows := [][]string{
		{"WAREHOUSE CAPACITY CALCULATOR - BILL OF QUANTITIES"},
		{},
		{"INPUT PARAMETERS"},
		{"Parameter", "Value", "Unit"},
		{"Warehouse Area", FormatNumber(res.Areas.TotalArea, 0), "sq.ft"},
		{"Bay Length", plain(cfg.BayLength), "ft"},
		{"Bay Width", plain(cfg.BayWidth), "ft"},
		{"Levels", strconv.Itoa(cfg.Levels), "count"},
		{"Level Height", plain(cfg.LevelHeight), "ft"},
		{"Aisle Width", plain(cfg.MainAisleWidth), "ft"},
		{"Aisle Type", aisleType(cfg.IsVNA), "-"},
		{},
		{"CAPACITY RESULTS"},
		{"Metric", "Value", "Unit"},
		{"Total Bays", strconv.Itoa(res.BayCount), "count"},
		{"Total Rack CBM", FormatNumber(res.TotalRackCBM, 2), "CBM"},
		{"Mezzanine CBM", FormatNumber(res.MezzCBM, 2), "CBM"},
		{"Total CBM", FormatNumber(res.TotalCBM, 2), "CBM"},
		{"Space Improvement", FormatNumber(res.SpaceImprovementFactor, 2) + "x", "factor"},
		{"Total Pallet Positions", FormatNumber(float64(res.TotalPalletPositions), 0), "count"},
		{},
		{"BILL OF QUANTITIES"},
		{"Item", "Quantity", "Description"},
	}
	for _, item := range res.BoQ.Items() {
		rows = append(rows, []string{item.Key, strconv.Itoa(item.Quantity), item.Description})
	}
	return rows
}

// WriteCSV writes the BoQ CSV for res to w.
func WriteCSV(w io.Writer, cfg model.Config, res model.Result) error {
	cw := csv.NewWriter(w)
	// Section rows have fewer fields than table rows.
	if err := cw.WriteAll(csvRows(cfg, res)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// ExportCSV writes the BoQ CSV to path.
func ExportCSV(path string, cfg model.Config, res model.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, cfg, res); err != nil {
		return err
	}
	return f.Close()
}
