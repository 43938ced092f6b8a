package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/export"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
)

// run executes the CLI with an isolated preferences file.
func run(t *testing.T, prefs string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(append([]string{"--prefs", prefs, "--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeReferenceConfig(t *testing.T, dir string) string {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Length = 300
	cfg.Width = 360
	cfg.UseModuleMethod = true
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, project.SaveConfig(path, cfg))
	return path
}

func TestComputeText(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)

	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "compute", path)
	require.NoError(t, err)
	assert.Contains(t, out, "WAREHOUSE CAPACITY (module method)")
	assert.Contains(t, out, "468")
	assert.Contains(t, out, "29,970.25 CBM")
	assert.Contains(t, out, "BILL OF QUANTITIES")
	assert.Contains(t, out, "VALIDATION: 0 errors")
}

func TestComputeJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)

	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "compute", path, "-o", "json")
	require.NoError(t, err)

	var res model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 468, res.BayCount)
}

func TestComputeYAMLUsesJSONFieldNames(t *testing.T) {
	dir := t.TempDir()
	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "compute", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "totalCBM:")
	assert.Contains(t, out, "bayCountDetails:")
}

func TestComputeUnknownOutput(t *testing.T) {
	_, _, err := run(t, filepath.Join(t.TempDir(), "prefs.json"), "compute", "-o", "xml")
	assert.Error(t, err)
}

func TestComputeRemembersRecentConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)
	prefs := filepath.Join(dir, "prefs.json")

	_, _, err := run(t, prefs, "compute", path)
	require.NoError(t, err)

	loaded, err := project.LoadAppConfig(prefs)
	require.NoError(t, err)
	require.Len(t, loaded.RecentConfigs, 1)
	assert.Equal(t, "site.yaml", filepath.Base(loaded.RecentConfigs[0]))
}

func TestValidateFailsOnErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := model.DefaultConfig()
	cfg.ClearHeight = 30
	path := filepath.Join(dir, "low.json")
	require.NoError(t, project.SaveConfig(path, cfg))

	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "validate", path)
	assert.ErrorIs(t, err, errValidationFailed)
	assert.Contains(t, out, "ERROR   [levels]")
}

func TestValidatePasses(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)
	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0 errors")
}

func TestBoQ(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)
	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "boq", path)
	require.NoError(t, err)

	res := engine.Compute(mustLoad(t, path))
	for _, item := range res.BoQ.Items() {
		assert.Contains(t, out, item.Description)
		assert.Contains(t, out, export.FormatNumber(float64(item.Quantity), 0))
	}
}

func TestCompareDefaultScenarios(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)
	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "compare", path)
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "Current Configuration")
	assert.Contains(t, out, "Very Narrow Aisles")
	assert.Contains(t, out, "No Mezzanine")
}

func TestCompareProjectsFile(t *testing.T) {
	dir := t.TempDir()
	a := model.DefaultConfig()
	b := model.DefaultConfig()
	b.Levels = 5
	projects := filepath.Join(dir, "projects.yaml")
	require.NoError(t, project.SaveProjects(projects, []model.Project{
		model.NewProject("Seven levels", a),
		model.NewProject("Five levels", b),
	}))

	out, _, err := run(t, filepath.Join(dir, "prefs.json"), "compare", "--projects", projects, "-o", "json")
	require.NoError(t, err)

	var results []engine.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "Five levels", results[1].Scenario.Name)
	assert.Less(t, results[1].DeltaCBM, 0.0)
}

func TestBatchImportSaveAndExport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sites.csv")
	content := "name,warehouseLength,warehouseWidth,useModuleMethod\n" +
		"North DC,300,360,true\n" +
		"South DC,200,150,true\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0644))

	saved := filepath.Join(dir, "out", "projects.yaml")
	exportDir := filepath.Join(dir, "exports")
	out, _, err := run(t, filepath.Join(dir, "prefs.json"),
		"batch", csvPath, "--save", saved, "--export-dir", exportDir, "--format", "rfq")
	require.NoError(t, err)
	assert.Contains(t, out, "North DC")
	assert.Contains(t, out, "South DC")
	assert.Contains(t, out, "Saved 2 projects")

	projects, err := project.LoadProjects(saved, model.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, 300.0, projects[0].Config.Length)

	_, err = os.Stat(filepath.Join(exportDir, "north-dc.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(exportDir, "south-dc.txt"))
	assert.NoError(t, err)
}

func TestBatchNoRows(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("name,levels\n"), 0644))
	_, _, err := run(t, filepath.Join(dir, "prefs.json"), "batch", csvPath)
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)

	for _, format := range model.ExportFormats {
		t.Run(string(format), func(t *testing.T) {
			outPath := filepath.Join(dir, "report"+export.Extension(format))
			out, _, err := run(t, filepath.Join(dir, "prefs.json"), "export", path, "--format", string(format), "--out", outPath)
			require.NoError(t, err)
			assert.Contains(t, out, "Wrote "+outPath)
			info, err := os.Stat(outPath)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestExportDefaultPathUsesPreferences(t *testing.T) {
	dir := t.TempDir()
	path := writeReferenceConfig(t, dir)
	prefsPath := filepath.Join(dir, "prefs.json")

	prefs := model.DefaultAppConfig()
	prefs.DefaultExportFormat = model.FormatRFQ
	prefs.DefaultOutputDir = filepath.Join(dir, "reports")
	require.NoError(t, os.MkdirAll(prefs.DefaultOutputDir, 0755))
	require.NoError(t, project.SaveAppConfig(prefsPath, prefs))

	_, _, err := run(t, prefsPath, "export", path)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(prefs.DefaultOutputDir, "site.txt"))
	assert.NoError(t, err)
}

func TestExportUnknownFormat(t *testing.T) {
	_, _, err := run(t, filepath.Join(t.TempDir(), "prefs.json"), "export", "--format", "docx")
	assert.Error(t, err)
}

func TestImportDXF(t *testing.T) {
	dir := t.TempDir()
	dxfPath := filepath.Join(dir, "plan.dxf")
	layout := engine.PlaceBays(mustLoad(t, writeReferenceConfig(t, dir)))
	require.NoError(t, export.ExportDXF(dxfPath, layout))

	outPath := filepath.Join(dir, "from-dxf.yaml")
	_, errOut, err := run(t, filepath.Join(dir, "prefs.json"), "import-dxf", dxfPath, "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Footprint: 300.0 x 360.0 ft")

	cfg := mustLoad(t, outPath)
	assert.InDelta(t, 300, cfg.Length, 1e-6)
	assert.InDelta(t, 360, cfg.Width, 1e-6)
	assert.InDelta(t, 108000, cfg.Area, 1e-3)
}

func TestImportDXFMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, filepath.Join(dir, "prefs.json"), "import-dxf", filepath.Join(dir, "missing.dxf"))
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.yaml")
	prefs := filepath.Join(dir, "prefs.json")

	_, _, err := run(t, prefs, "init", path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), mustLoad(t, path))

	_, _, err = run(t, prefs, "init", path)
	assert.Error(t, err, "expected refusal to overwrite")

	_, _, err = run(t, prefs, "init", path, "--force")
	assert.NoError(t, err)
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "north-dc", fileSlug("North DC"))
	assert.Equal(t, "site_2-phase-b", fileSlug(" Site_2 / Phase B "))
	assert.Equal(t, "project", fileSlug("///"))
}

func mustLoad(t *testing.T, path string) model.Config {
	t.Helper()
	cfg, err := project.LoadConfig(path, model.Config{})
	require.NoError(t, err)
	return cfg
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("info", false, &buf)
	require.NoError(t, err)
	logger.Info("computed", zap.Int("bays", 468))
	assert.Contains(t, buf.String(), `"bays":468`)

	buf.Reset()
	logger, err = newLogger("warn", true, &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	_, err = newLogger("loud", false, &buf)
	assert.Error(t, err)
}
