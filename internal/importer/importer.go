// Package importer provides CSV and Excel batch import of warehouse
// configurations, and DXF import of warehouse footprints. Header recognition
// is case-insensitive and accepts several aliases per field.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RackPlan/internal/model"
)

// ImportResult holds the results of a batch import.
type ImportResult struct {
	Projects []model.Project
	Errors   []string
	Warnings []string
}

// setter parses a cell value into one Config field.
type setter func(cfg *model.Config, v string) error

func floatField(dst func(*model.Config) *float64) setter {
	return func(cfg *model.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number '%s'", v)
		}
		*dst(cfg) = f
		return nil
	}
}

func intField(dst func(*model.Config) *int) setter {
	return func(cfg *model.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer '%s'", v)
		}
		*dst(cfg) = n
		return nil
	}
}

func boolField(dst func(*model.Config) *bool) setter {
	return func(cfg *model.Config, v string) error {
		b, ok := parseBool(v)
		if !ok {
			return fmt.Errorf("invalid yes/no value '%s'", v)
		}
		*dst(cfg) = b
		return nil
	}
}

// field describes one importable column: its canonical name, accepted
// header aliases (lowercase) and how to apply a value.
type field struct {
	name    string
	aliases []string
	set     setter
}

// nameField is the column holding the project name.
const nameField = "name"

var fields = []field{
	{nameField, []string{"name", "project", "scenario", "label"}, nil},
	{"warehouseLength", []string{"warehouselength", "length", "warehouse length"}, floatField(func(c *model.Config) *float64 { return &c.Length })},
	{"warehouseWidth", []string{"warehousewidth", "width", "warehouse width"}, floatField(func(c *model.Config) *float64 { return &c.Width })},
	{"warehouseArea", []string{"warehousearea", "area", "warehouse area", "total area"}, floatField(func(c *model.Config) *float64 { return &c.Area })},
	{"warehouseClearHeight", []string{"warehouseclearheight", "clearheight", "clear height", "height"}, floatField(func(c *model.Config) *float64 { return &c.ClearHeight })},
	{"baselineCBM", []string{"baselinecbm", "baseline", "baseline cbm"}, floatField(func(c *model.Config) *float64 { return &c.BaselineCBM })},
	{"bayLength", []string{"baylength", "bay length"}, floatField(func(c *model.Config) *float64 { return &c.BayLength })},
	{"bayWidth", []string{"baywidth", "bay width", "bay depth"}, floatField(func(c *model.Config) *float64 { return &c.BayWidth })},
	{"levelHeight", []string{"levelheight", "level height"}, floatField(func(c *model.Config) *float64 { return &c.LevelHeight })},
	{"levels", []string{"levels", "rack levels"}, intField(func(c *model.Config) *int { return &c.Levels })},
	{"percentRacking", []string{"percentracking", "racking %", "racking percent", "% racking"}, floatField(func(c *model.Config) *float64 { return &c.PercentRacking })},
	{"mezzPercent", []string{"mezzpercent", "mezzanine %", "mezz %", "mezzanine percent"}, floatField(func(c *model.Config) *float64 { return &c.MezzPercent })},
	{"useDirectAreaInput", []string{"usedirectareainput", "direct area", "direct areas"}, boolField(func(c *model.Config) *bool { return &c.UseDirectAreaInput })},
	{"hdRackArea", []string{"hdrackarea", "hd rack area", "hd area"}, floatField(func(c *model.Config) *float64 { return &c.HDRackArea })},
	{"mezzanineArea", []string{"mezzaninearea", "mezzanine area", "mezz area"}, floatField(func(c *model.Config) *float64 { return &c.MezzanineArea })},
	{"smallGap", []string{"smallgap", "small gap", "gap"}, floatField(func(c *model.Config) *float64 { return &c.SmallGap })},
	{"aisleWidth", []string{"aislewidth", "aisle width", "aisle", "main aisle"}, floatField(func(c *model.Config) *float64 { return &c.MainAisleWidth })},
	{"crossAisleWidth", []string{"crossaislewidth", "cross aisle width", "cross aisle"}, func(c *model.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number '%s'", v)
		}
		c.CrossAisleWidth = model.Float(f)
		return nil
	}},
	{"isVNA", []string{"isvna", "vna"}, boolField(func(c *model.Config) *bool { return &c.IsVNA })},
	{"aisleOverheadMultiplier", []string{"aisleoverheadmultiplier", "overhead multiplier", "multiplier"}, floatField(func(c *model.Config) *float64 { return &c.AisleOverheadMultiplier })},
	{"palletFootprint", []string{"palletfootprint", "pallet footprint"}, floatField(func(c *model.Config) *float64 { return &c.PalletFootprint })},
	{"palletsPerLevelOverride", []string{"palletsperleveloverride", "pallets per level"}, intField(func(c *model.Config) *int { return &c.PalletsPerLevelOverride })},
	{"mezzClearHeight", []string{"mezzclearheight", "mezzanine clear height", "mezz height"}, floatField(func(c *model.Config) *float64 { return &c.MezzClearHeight })},
	{"mezzLevels", []string{"mezzlevels", "mezzanine levels", "mezz levels", "decks"}, intField(func(c *model.Config) *int { return &c.MezzLevels })},
	{"useModuleMethod", []string{"usemodulemethod", "module method", "module"}, boolField(func(c *model.Config) *bool { return &c.UseModuleMethod })},
}

// ColumnMapping maps column indices to the field they hold.
type ColumnMapping map[int]*field

// FieldNames returns the canonical importable column names in order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].name
	}
	return names
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns maps a header row to configuration fields. Unknown headers
// are returned separately so the caller can warn about them.
func DetectColumns(row []string) (mapping ColumnMapping, unknown []string) {
	mapping = ColumnMapping{}
	taken := map[string]bool{}

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		if normalized == "" {
			continue
		}
		matched := false
		for fi := range fields {
			f := &fields[fi]
			if taken[f.name] {
				continue
			}
			for _, alias := range f.aliases {
				if normalized == alias {
					mapping[i] = f
					taken[f.name] = true
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			unknown = append(unknown, strings.TrimSpace(cell))
		}
	}
	return mapping, unknown
}

// parseBool accepts the usual spreadsheet spellings of a boolean.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x", "on":
		return true, true
	case "false", "no", "n", "0", "", "-", "off":
		return false, true
	}
	return false, false
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow builds a project from one row on top of base. Empty cells keep
// the base value. All cell errors of the row are returned together.
func parseRow(row []string, mapping ColumnMapping, base model.Config, rowLabel string, projectCount int) (model.Project, []string) {
	cfg := base
	name := ""
	var errs []string

	cols := make([]int, 0, len(mapping))
	for idx := range mapping {
		cols = append(cols, idx)
	}
	sort.Ints(cols)

	for _, idx := range cols {
		f := mapping[idx]
		v := getCell(row, idx)
		if v == "" {
			continue
		}
		if f.set == nil {
			name = v
			continue
		}
		if err := f.set(&cfg, v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s: %v", rowLabel, f.name, err))
		}
	}
	if len(errs) > 0 {
		return model.Project{}, errs
	}

	if name == "" {
		name = fmt.Sprintf("Configuration %d", projectCount+1)
	}
	return model.NewProject(name, cfg), nil
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports configurations from a CSV file. Each row is applied on
// top of base. The delimiter is detected automatically.
func ImportCSV(path string, base model.Config) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter, base)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports configurations from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, base model.Config) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", base)
}

// ImportExcel imports configurations from the first sheet of an Excel file.
func ImportExcel(path string, base model.Config) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", base)
}

// Import picks the CSV or Excel importer from the file extension.
func Import(path string, base model.Config) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, base)
	}
	return ImportCSV(path, base)
}

// importFromRows is the shared import logic for CSV and Excel data. The
// first row must be a header naming configuration fields.
func importFromRows(rows [][]string, rowPrefix string, base model.Config) ImportResult {
	result := ImportResult{}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, unknown := DetectColumns(rows[0])
	if len(mapping) == 0 {
		result.Errors = append(result.Errors, "No configuration columns found in header row")
		return result
	}
	for _, u := range unknown {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignoring unknown column '%s'", u))
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		project, errs := parseRow(row, mapping, base, rowLabel, len(result.Projects))
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Projects = append(result.Projects, project)
	}

	if len(result.Projects) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}
