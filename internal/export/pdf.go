package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	qrSize       = 35.0
)

// summaryQR is the payload encoded in the report's QR code.
type summaryQR struct {
	Method          string  `json:"method"`
	BayCount        int     `json:"bayCount"`
	Levels          int     `json:"levels"`
	TotalCBM        float64 `json:"totalCBM"`
	PalletPositions int     `json:"totalPalletPositions"`
	Valid           bool    `json:"valid"`
}

// buildPDF renders the capacity report: a summary page, a BoQ and
// validation page, and a floor plan schematic when layout has bays.
func buildPDF(cfg model.Config, res model.Result, layout engine.Layout) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	if err := renderSummaryPage(pdf, tr, cfg, res); err != nil {
		return nil, err
	}

	pdf.AddPage()
	renderBoQPage(pdf, tr, res)

	if len(layout.Bays) > 0 {
		pdf.AddPage()
		renderLayoutPage(pdf, layout)
	}

	return pdf, pdf.Error()
}

// WritePDF writes the capacity report to w.
func WritePDF(w io.Writer, cfg model.Config, res model.Result, layout engine.Layout) error {
	pdf, err := buildPDF(cfg, res, layout)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// ExportPDF writes the capacity report to path.
func ExportPDF(path string, cfg model.Config, res model.Result, layout engine.Layout) error {
	pdf, err := buildPDF(cfg, res, layout)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf.OutputFileAndClose(path)
}

func pageTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)
}

type labelValue struct {
	label string
	value string
}

// drawPairs renders a heading followed by label/value lines and returns the
// next free y position.
func drawPairs(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, heading string, items []labelValue) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, heading, "", 0, "L", false, 0, "")
	y += 9

	for _, item := range items {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(x+5, y)
		pdf.CellFormat(60, 6, tr(item.label)+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(item.value), "", 0, "L", false, 0, "")
		y += 7
	}
	return y
}

func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, cfg model.Config, res model.Result) error {
	pageTitle(pdf, "Warehouse Capacity Report")

	capacity := []labelValue{
		{"Total CBM", FormatNumber(res.TotalCBM, 2) + " CBM"},
		{"Rack CBM", FormatNumber(res.TotalRackCBM, 2) + " CBM"},
		{"Mezzanine CBM", FormatNumber(res.MezzCBM, 2) + " CBM"},
		{"Baseline CBM", FormatNumber(res.BaselineCBM, 2) + " CBM"},
		{"Extra CBM", FormatNumber(res.ExtraCBM, 2) + " CBM"},
		{"Space Improvement", FormatNumber(res.SpaceImprovementFactor, 2) + "x"},
		{"Area per CBM", FormatNumber(res.SqftPerCBM, 2) + " sq.ft"},
		{"Total Bays", fmt.Sprintf("%d (%s method)", res.BayCount, res.BayCountDetails.Method)},
		{"Pallet Positions", FormatNumber(float64(res.TotalPalletPositions), 0)},
	}
	y := drawPairs(pdf, tr, marginLeft, marginTop+18, "Capacity", capacity)

	areas := []labelValue{
		{"Total Area", FormatNumber(res.Areas.TotalArea, 0) + " sq.ft"},
		{"Racking Area", FormatNumber(res.Areas.RackingArea, 0) + " sq.ft"},
		{"HD Rack Area", FormatNumber(res.Areas.HDArea, 0) + " sq.ft"},
		{"Mezzanine Area", FormatNumber(res.Areas.MezzArea, 0) + " sq.ft"},
		{"Staging Area", FormatNumber(res.Areas.StagingArea, 0) + " sq.ft"},
	}
	drawPairs(pdf, tr, marginLeft, y+4, "Areas", areas)

	rack := []labelValue{
		{"Bay Dimensions", fmt.Sprintf("%v × %v ft", cfg.BayLength, cfg.BayWidth)},
		{"Levels", fmt.Sprintf("%d × %v ft", cfg.Levels, cfg.LevelHeight)},
		{"Rack Height", fmt.Sprintf("%v ft (clear %v ft)", res.TotalRackHeight, cfg.ClearHeight)},
		{"Aisles", fmt.Sprintf("%s, %v ft", aisleType(cfg.IsVNA), cfg.MainAisleWidth)},
		{"Pallets per Level", fmt.Sprintf("%d", res.PalletsPerLevel)},
		{"Mezzanine", fmt.Sprintf("%d deck(s) × %v ft", res.Mezzanine.MezzLevels, cfg.MezzClearHeight)},
	}
	drawPairs(pdf, tr, pageWidth/2, marginTop+18, "Rack Configuration", rack)

	return drawQR(pdf, res, cfg)
}

func drawQR(pdf *fpdf.Fpdf, res model.Result, cfg model.Config) error {
	payload, err := json.Marshal(summaryQR{
		Method:          string(res.BayCountDetails.Method),
		BayCount:        res.BayCount,
		Levels:          cfg.Levels,
		TotalCBM:        math.Round(res.TotalCBM*100) / 100,
		PalletPositions: res.TotalPalletPositions,
		Valid:           res.Validation.Valid,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal QR payload: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("summary_qr", opts, bytes.NewReader(png))
	x := pageWidth - marginRight - qrSize
	y := pageHeight - marginBottom - qrSize
	pdf.ImageOptions("summary_qr", x, y, qrSize, qrSize, false, opts, 0, "")
	return nil
}

func renderBoQPage(pdf *fpdf.Fpdf, tr func(string) string, res model.Result) {
	pageTitle(pdf, "Bill of Quantities")

	y := marginTop + 18
	colWidths := []float64{45, 30, 120}
	headers := []string{"Item", "Quantity", "Description"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, item := range res.BoQ.Items() {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{item.Key, FormatNumber(float64(item.Quantity), 0), tr(item.Description)}
		align := []string{"L", "R", "L"}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, align[j], true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}

	y += 10
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Validation ("+res.Validation.Summary+")", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 9)
	if len(res.Validation.Errors) == 0 && len(res.Validation.Warnings) == 0 {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(200, 5, "No issues found.", "", 0, "L", false, 0, "")
	}
	for _, f := range res.Validation.Errors {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 5, tr(fmt.Sprintf("ERROR [%s] %s", f.Field, f.Message)), "", "L", false)
		y = pdf.GetY() + 1
	}
	for _, f := range res.Validation.Warnings {
		pdf.SetTextColor(180, 110, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.MultiCell(pageWidth-marginLeft-marginRight-5, 5, tr(fmt.Sprintf("WARNING [%s] %s", f.Field, f.Message)), "", "L", false)
		y = pdf.GetY() + 1
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderLayoutPage draws the warehouse outline and every placed bay scaled
// to fit the page.
func renderLayoutPage(pdf *fpdf.Fpdf, layout engine.Layout) {
	title := fmt.Sprintf("Floor Plan (%.0f x %.0f ft, %d bays)", layout.Length, layout.Width, len(layout.Bays))
	if layout.Estimated {
		title += " - dimensions estimated from area"
	}
	pageTitle(pdf, title)

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 8
	scale := math.Min(drawWidth/layout.Length, drawHeight/layout.Width)

	canvasW := layout.Length * scale
	canvasH := layout.Width * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Floor
	pdf.SetFillColor(240, 240, 240)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Bays
	pdf.SetFillColor(33, 150, 243)
	pdf.SetDrawColor(20, 60, 120)
	pdf.SetLineWidth(0.1)
	for _, b := range layout.Bays {
		pdf.Rect(offsetX+b.X*scale, offsetY+b.Y*scale, b.Length*scale, b.Width*scale, "FD")
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, offsetY+canvasH+2)
	note := fmt.Sprintf("Module %.1f ft, row pitch %.1f ft", layout.ModuleLength, layout.RowPitch)
	if layout.Truncated {
		note += fmt.Sprintf(", first %d bays shown", len(layout.Bays))
	}
	pdf.CellFormat(drawWidth, 4, note, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
