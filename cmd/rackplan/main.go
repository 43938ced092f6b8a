// RackPlan — warehouse pallet-racking capacity and bill-of-quantities engine
//
// A command-line tool and HTTP service that turns a warehouse configuration
// into bay counts, storage volume, pallet positions, a racking BoQ and
// validation findings, with CSV/XLSX/PDF/DXF/RFQ exports.
//
// Build:
//   go build -o rackplan ./cmd/rackplan
//
// Examples:
//   rackplan init site.yaml
//   rackplan compute site.yaml
//   rackplan export site.yaml --format pdf --out site.pdf
//   rackplan serve --addr :8080

package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
