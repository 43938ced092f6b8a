package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/piwi3910/RackPlan/internal/model"
)

// RFQText builds a plain-text request for quotation for the racking
// supplier. generated is printed as the document date.
func RFQText(cfg model.Config, res model.Result, generated time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line("WAREHOUSE RACKING SYSTEM - REQUEST FOR QUOTATION")
	line("%s", strings.Repeat("=", 60))
	line("")
	line("PROJECT SPECIFICATIONS:")
	line("Warehouse Area: %s sq.ft", FormatNumber(res.Areas.TotalArea, 0))
	line("Total Rack Bays: %d bays", res.BayCount)
	line("Rack Levels: %d levels", cfg.Levels)
	line("Bay Dimensions: %v ft × %v ft", cfg.BayLength, cfg.BayWidth)
	line("Total Rack Height: %v ft", res.TotalRackHeight)
	line("Aisle Type: %s (%v ft)", aisleType(cfg.IsVNA), cfg.MainAisleWidth)
	line("")
	line("BILL OF QUANTITIES:")
	for _, item := range res.BoQ.Items() {
		line("%dx %s", item.Quantity, item.Description)
	}
	line("")
	line("CAPACITY SUMMARY:")
	line("Total Storage Capacity: %s CBM", FormatNumber(res.TotalCBM, 2))
	line("Total Pallet Positions: %s", FormatNumber(float64(res.TotalPalletPositions), 0))
	line("Space Improvement: %sx", FormatNumber(res.SpaceImprovementFactor, 2))
	line("")
	b.WriteString("Generated: " + generated.Format("2006-01-02 15:04:05"))

	return b.String()
}

// WriteRFQ writes the RFQ text to w.
func WriteRFQ(w io.Writer, cfg model.Config, res model.Result, generated time.Time) error {
	if _, err := io.WriteString(w, RFQText(cfg, res, generated)); err != nil {
		return fmt.Errorf("failed to write RFQ: %w", err)
	}
	return nil
}

// ExportRFQ writes the RFQ text to path.
func ExportRFQ(path string, cfg model.Config, res model.Result, generated time.Time) error {
	if err := os.WriteFile(path, []byte(RFQText(cfg, res, generated)), 0644); err != nil {
		return fmt.Errorf("failed to write RFQ file: %w", err)
	}
	return nil
}
