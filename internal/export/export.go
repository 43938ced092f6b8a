package export

import (
	"fmt"
	"io"
	"time"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
)

// ContentType returns the MIME type of an export format.
func ContentType(format model.ExportFormat) string {
	switch format {
	case model.FormatCSV:
		return "text/csv; charset=utf-8"
	case model.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case model.FormatPDF:
		return "application/pdf"
	case model.FormatDXF:
		return "application/dxf"
	case model.FormatRFQ:
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}

// Extension returns the file extension for an export format, including the dot.
func Extension(format model.ExportFormat) string {
	if format == model.FormatRFQ {
		return ".txt"
	}
	return "." + string(format)
}

// Write renders res in the given format to w. The floor plan for PDF and DXF
// is placed from cfg.
func Write(w io.Writer, format model.ExportFormat, cfg model.Config, res model.Result, generated time.Time) error {
	switch format {
	case model.FormatCSV:
		return WriteCSV(w, cfg, res)
	case model.FormatXLSX:
		return WriteXLSX(w, cfg, res)
	case model.FormatPDF:
		return WritePDF(w, cfg, res, engine.PlaceBays(cfg))
	case model.FormatDXF:
		return WriteDXF(w, engine.PlaceBays(cfg))
	case model.FormatRFQ:
		return WriteRFQ(w, cfg, res, generated)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// Export renders res in the given format to path.
func Export(path string, format model.ExportFormat, cfg model.Config, res model.Result, generated time.Time) error {
	switch format {
	case model.FormatCSV:
		return ExportCSV(path, cfg, res)
	case model.FormatXLSX:
		return ExportXLSX(path, cfg, res)
	case model.FormatPDF:
		return ExportPDF(path, cfg, res, engine.PlaceBays(cfg))
	case model.FormatDXF:
		return ExportDXF(path, engine.PlaceBays(cfg))
	case model.FormatRFQ:
		return ExportRFQ(path, cfg, res, generated)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
