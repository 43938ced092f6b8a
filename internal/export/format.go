// Package export renders capacity results to CSV, RFQ text, XLSX, PDF and
// DXF files.
package export

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatNumber formats v with en-US thousands separators and exactly
// decimals fraction digits. NaN and infinities format as "0".
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	scale := math.Pow(10, float64(decimals))
	if math.Round(v*scale) == 0 {
		v = 0 // avoid "-0.00"
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// aisleType names the aisle configuration.
func aisleType(vna bool) string {
	if vna {
		return "VNA"
	}
	return "Standard"
}

// plain formats an input value the way it was entered, without grouping.
func plain(v float64) string {
	return fmt.Sprintf("%v", v)
}
