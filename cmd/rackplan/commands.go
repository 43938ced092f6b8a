package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/export"
	"github.com/piwi3910/RackPlan/internal/importer"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
	"github.com/piwi3910/RackPlan/internal/server"
)

func (a *app) computeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compute [config-file]",
		Short: "Compute capacity, pallet positions and BoQ for a configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			res := a.compute(cfg)
			if format != "text" {
				return emit(cmd.OutOrStdout(), format, res)
			}
			printResult(cmd.OutOrStdout(), cfg, res)
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Report validation findings; exits non-zero when there are errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			report := a.compute(cfg).Validation
			if format != "text" {
				if err := emit(cmd.OutOrStdout(), format, report); err != nil {
					return err
				}
			} else {
				printValidation(cmd.OutOrStdout(), report)
			}
			if !report.Valid {
				return errValidationFailed
			}
			return nil
		},
	}
}

func (a *app) boqCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boq [config-file]",
		Short: "Print the racking bill of quantities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat()
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			res := a.compute(cfg)
			if format != "text" {
				return emit(cmd.OutOrStdout(), format, res.BoQ)
			}
			printBoQ(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func (a *app) compareCmd() *cobra.Command {
	var projectsPath string

	cmd := &cobra.Command{
		Use:   "compare [config-file]",
		Short: "Compare what-if scenarios around a configuration",
		Long: "Without --projects, compares the configuration against the opposite aisle type,\n" +
			"the other bay-count method and a layout without mezzanine. With --projects,\n" +
			"compares every project in the file, deltas measured against the first.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.outputFormat()
			if err != nil {
				return err
			}

			var scenarios []engine.ComparisonScenario
			if projectsPath != "" {
				projects, err := project.LoadProjects(projectsPath, a.baseConfig())
				if err != nil {
					return err
				}
				for _, p := range projects {
					scenarios = append(scenarios, engine.ComparisonScenario{Name: p.Name, Config: p.Config})
				}
			} else {
				cfg, err := a.loadConfig(args)
				if err != nil {
					return err
				}
				scenarios = engine.BuildDefaultScenarios(cfg)
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios to compare")
			}

			results := engine.CompareScenarios(scenarios)
			if format != "text" {
				return emit(cmd.OutOrStdout(), format, results)
			}
			printComparison(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringVar(&projectsPath, "projects", "", "project file (JSON or YAML) whose projects are compared")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		savePath  string
		exportDir string
		formatArg string
	)

	cmd := &cobra.Command{
		Use:   "batch <file.csv|file.xlsx>",
		Short: "Compute every configuration row of a CSV or Excel sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported := importer.Import(args[0], a.baseConfig())
			for _, w := range imported.Warnings {
				a.log.Warn(w, zap.String("file", args[0]))
			}
			for _, e := range imported.Errors {
				a.log.Error(e, zap.String("file", args[0]))
			}
			if len(imported.Projects) == 0 {
				return fmt.Errorf("%s: no configurations imported (%d errors)", args[0], len(imported.Errors))
			}

			var format model.ExportFormat
			if exportDir != "" {
				f, ok := model.ParseExportFormat(formatArg)
				if !ok {
					return fmt.Errorf("unknown export format %q", formatArg)
				}
				format = f
			}

			scenarios := make([]engine.ComparisonScenario, 0, len(imported.Projects))
			for _, p := range imported.Projects {
				scenarios = append(scenarios, engine.ComparisonScenario{Name: p.Name, Config: p.Config})
			}
			results := engine.CompareScenarios(scenarios)
			printComparison(cmd.OutOrStdout(), results)

			if exportDir != "" {
				now := time.Now()
				for _, r := range results {
					path := filepath.Join(exportDir, fileSlug(r.Scenario.Name)+export.Extension(format))
					if err := os.MkdirAll(exportDir, 0755); err != nil {
						return fmt.Errorf("create export directory: %w", err)
					}
					if err := export.Export(path, format, r.Scenario.Config, r.Result, now); err != nil {
						a.log.Error("export failed", zap.String("project", r.Scenario.Name), zap.Error(err))
						continue
					}
					a.log.Info("exported", zap.String("path", path))
				}
			}

			if savePath != "" {
				if err := project.SaveProjects(savePath, imported.Projects); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %d projects to %s\n", len(imported.Projects), savePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&savePath, "save", "", "save imported configurations to a project file")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "export every result into this directory")
	cmd.Flags().StringVar(&formatArg, "format", "csv", "export format used with --export-dir (csv, xlsx, pdf, dxf, rfq)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		formatArg string
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "export [config-file]",
		Short: "Render a report as CSV, XLSX, PDF, DXF or RFQ text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatArg == "" {
				formatArg = string(a.prefs.DefaultExportFormat)
			}
			format, ok := model.ParseExportFormat(strings.ToLower(formatArg))
			if !ok {
				return fmt.Errorf("unknown export format %q", formatArg)
			}
			cfg, err := a.loadConfig(args)
			if err != nil {
				return err
			}
			if outPath == "" {
				name := "rackplan"
				if len(args) == 1 {
					name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}
				outPath = filepath.Join(a.prefs.DefaultOutputDir, name+export.Extension(format))
			}

			res := a.compute(cfg)
			if !res.Validation.Valid {
				a.log.Warn("exporting a configuration with validation errors", zap.String("summary", res.Validation.Summary))
			}
			if err := export.Export(outPath, format, cfg, res, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatArg, "format", "f", "", "export format (csv, xlsx, pdf, dxf, rfq); defaults to the preference")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path")
	return cmd
}

func (a *app) importDXFCmd() *cobra.Command {
	var (
		scale    float64
		basePath string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "import-dxf <file.dxf>",
		Short: "Read the warehouse footprint from a DXF drawing into a configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.ImportFootprint(args[0], scale)
			for _, w := range result.Warnings {
				a.log.Warn(w, zap.String("file", args[0]))
			}
			if !result.Found {
				if len(result.Errors) > 0 {
					return fmt.Errorf("%s: %s", args[0], strings.Join(result.Errors, "; "))
				}
				return fmt.Errorf("%s: no closed outline found", args[0])
			}

			var baseArgs []string
			if basePath != "" {
				baseArgs = []string{basePath}
			}
			cfg, err := a.loadConfig(baseArgs)
			if err != nil {
				return err
			}
			result.Footprint.Apply(&cfg)

			fp := result.Footprint
			fmt.Fprintf(cmd.ErrOrStderr(), "Footprint: %s x %s ft, %s sq ft (%d vertices)\n",
				export.FormatNumber(fp.Length, 1), export.FormatNumber(fp.Width, 1),
				export.FormatNumber(fp.Area, 0), fp.Vertices)

			if outPath == "" {
				return project.EncodeConfig(cmd.OutOrStdout(), project.FormatYAML, cfg)
			}
			if err := project.SaveConfig(outPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 1, "drawing units to feet (e.g. 3.28084 for metres)")
	cmd.Flags().StringVar(&basePath, "base", "", "configuration file the footprint is applied to")
	cmd.Flags().StringVar(&outPath, "out", "", "write the configuration here instead of stdout")
	return cmd
}

func (a *app) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file populated with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "rackplan.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := project.SaveConfig(path, a.baseConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [config-file]",
		Short: "Serve the JSON HTTP API",
		Long: "Serve the capacity API. Request bodies are decoded on top of the given\n" +
			"configuration (or the defaults). Settings can also come from RACKPLAN_ADDR,\n" +
			"RACKPLAN_RATE and RACKPLAN_BURST.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := a.loadConfig(args)
			if err != nil {
				return err
			}

			opts := server.DefaultOptions()
			opts.Addr = a.v.GetString("addr")
			if opts.Addr == "" {
				opts.Addr = fmt.Sprintf(":%d", a.prefs.ServerPort)
			}
			opts.RateLimit = rate.Limit(a.v.GetFloat64("rate"))
			opts.Burst = a.v.GetInt("burst")
			opts.Base = base
			opts.Logger = a.log

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(opts).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (defaults to the preference port)")
	cmd.Flags().Float64("rate", 5, "requests per second allowed per client IP")
	cmd.Flags().Int("burst", 10, "request burst allowed per client IP")
	return cmd
}

// fileSlug turns a project name into a safe file name.
func fileSlug(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '-' || r == '_':
			return r
		}
		return '-'
	}, strings.TrimSpace(name))
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "project"
	}
	return slug
}
