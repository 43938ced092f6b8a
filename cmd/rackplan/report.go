package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/export"
	"github.com/piwi3910/RackPlan/internal/model"
)

// emit writes v as JSON or YAML. YAML goes through the JSON encoding so both
// formats use the same field names.
func emit(w io.Writer, format string, v any) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printResult(w io.Writer, cfg model.Config, res model.Result) {
	tw := newTable(w)
	fmt.Fprintf(tw, "WAREHOUSE CAPACITY (%s method)\n", res.BayCountDetails.Method)
	fmt.Fprintf(tw, "  Total area\t%s sq ft\n", export.FormatNumber(res.Areas.TotalArea, 0))
	fmt.Fprintf(tw, "  HD racking area\t%s sq ft\n", export.FormatNumber(res.Areas.HDArea, 0))
	fmt.Fprintf(tw, "  Mezzanine area\t%s sq ft\n", export.FormatNumber(res.Areas.MezzArea, 0))
	fmt.Fprintf(tw, "  Aisle type\t%s\n", aisleLabel(cfg.IsVNA))
	fmt.Fprintf(tw, "  Bay count\t%s\n", export.FormatNumber(float64(res.BayCount), 0))
	if m := res.BayCountDetails.Module; m != nil {
		fmt.Fprintf(tw, "  Rows x bays per row\t%d x %d\n", m.NumberOfRows, m.BaysPerRow)
	}
	fmt.Fprintf(tw, "  Rack height\t%s ft\n", export.FormatNumber(res.TotalRackHeight, 1))
	fmt.Fprintf(tw, "  Volume per bay\t%s CBM\n", export.FormatNumber(res.VolumePerBayCBM, 2))
	fmt.Fprintf(tw, "  Racking volume\t%s CBM\n", export.FormatNumber(res.TotalRackCBM, 2))
	fmt.Fprintf(tw, "  Mezzanine volume\t%s CBM\n", export.FormatNumber(res.MezzCBM, 2))
	fmt.Fprintf(tw, "  Total capacity\t%s CBM\n", export.FormatNumber(res.TotalCBM, 2))
	fmt.Fprintf(tw, "  Pallet positions\t%s (%d per level)\n",
		export.FormatNumber(float64(res.TotalPalletPositions), 0), res.PalletsPerLevel)
	fmt.Fprintf(tw, "  Extra vs baseline\t%s CBM\n", export.FormatNumber(res.ExtraCBM, 2))
	if res.SpaceImprovementDefined {
		fmt.Fprintf(tw, "  Space improvement\t%sx\n", export.FormatNumber(res.SpaceImprovementFactor, 2))
	}
	if res.SqftPerCBMDefined {
		fmt.Fprintf(tw, "  Floor area per CBM\t%s sq ft\n", export.FormatNumber(res.SqftPerCBM, 2))
	}
	tw.Flush()

	fmt.Fprintln(w)
	printBoQ(w, res)
	fmt.Fprintln(w)
	printValidation(w, res.Validation)
}

func printBoQ(w io.Writer, res model.Result) {
	tw := newTable(w)
	fmt.Fprintln(tw, "BILL OF QUANTITIES")
	for _, item := range res.BoQ.Items() {
		fmt.Fprintf(tw, "  %s\t%s\n", item.Description, export.FormatNumber(float64(item.Quantity), 0))
	}
	tw.Flush()
}

func printValidation(w io.Writer, report model.ValidationReport) {
	fmt.Fprintf(w, "VALIDATION: %s\n", report.Summary)
	for _, f := range report.Errors {
		fmt.Fprintf(w, "  ERROR   [%s] %s\n", f.Field, f.Message)
	}
	for _, f := range report.Warnings {
		fmt.Fprintf(w, "  WARNING [%s] %s\n", f.Field, f.Message)
	}
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SCENARIO\tBAYS\tTOTAL CBM\tPALLETS\tDELTA CBM\tERRORS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Scenario.Name,
			export.FormatNumber(float64(r.BayCount), 0),
			export.FormatNumber(r.TotalCBM, 2),
			export.FormatNumber(float64(r.PalletPositions), 0),
			signed(r.DeltaCBM),
			r.ErrorCount,
		)
	}
	tw.Flush()
}

func signed(v float64) string {
	s := export.FormatNumber(v, 2)
	if v > 0 {
		return "+" + s
	}
	return s
}

func aisleLabel(vna bool) string {
	if vna {
		return "VNA"
	}
	return "Standard"
}
