package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
)

// errValidationFailed is returned by commands whose configuration has
// validation errors; the findings have already been printed.
var errValidationFailed = errors.New("configuration has validation errors")

// app carries state shared by every subcommand.
type app struct {
	v         *viper.Viper
	log       *zap.Logger
	prefs     model.AppConfig
	prefsPath string
	errOut    io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop(), errOut: errOut}

	root := &cobra.Command{
		Use:           "rackplan",
		Short:         "Warehouse pallet-racking capacity and bill-of-quantities engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.log.Sync()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("prefs", project.DefaultConfigPath(), "application preferences file")
	flags.String("env-file", ".env", "dotenv file loaded into the environment if present")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("dev", false, "human-readable console logs instead of JSON")
	flags.StringP("output", "o", "text", "output format for reports (text, json, yaml)")

	root.AddCommand(
		a.computeCmd(),
		a.validateCmd(),
		a.boqCmd(),
		a.compareCmd(),
		a.batchCmd(),
		a.exportCmd(),
		a.importDXFCmd(),
		a.initCmd(),
		a.serveCmd(),
	)
	return root
}

// setup loads the dotenv file, binds flags and environment into viper, and
// builds the logger and preferences.
func (a *app) setup(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	a.v.SetEnvPrefix("RACKPLAN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	logger, err := newLogger(a.v.GetString("log-level"), a.v.GetBool("dev"), a.errOut)
	if err != nil {
		return err
	}
	a.log = logger

	a.prefsPath = a.v.GetString("prefs")
	prefs, err := project.LoadAppConfig(a.prefsPath)
	if err != nil {
		a.log.Warn("ignoring unreadable preferences", zap.String("path", a.prefsPath), zap.Error(err))
		prefs = model.DefaultAppConfig()
	}
	a.prefs = prefs
	return nil
}

// newLogger writes JSON logs to w, or console logs when dev is set.
func newLogger(level string, dev bool, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var enc zapcore.Encoder
	if dev {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}

// baseConfig is DefaultConfig with the preference defaults applied.
func (a *app) baseConfig() model.Config {
	cfg := model.DefaultConfig()
	a.prefs.ApplyToConfig(&cfg)
	return cfg
}

// loadConfig reads the configuration named by args, or returns the base
// configuration when no file is given. Loaded files are remembered in the
// recent list.
func (a *app) loadConfig(args []string) (model.Config, error) {
	base := a.baseConfig()
	if len(args) == 0 {
		return base, nil
	}
	cfg, err := project.LoadConfig(args[0], base)
	if err != nil {
		return model.Config{}, err
	}
	a.log.Debug("loaded configuration", zap.String("path", args[0]))
	a.remember(args[0])
	return cfg, nil
}

func (a *app) remember(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	a.prefs.AddRecent(path)
	if err := project.SaveAppConfig(a.prefsPath, a.prefs); err != nil {
		a.log.Warn("could not save preferences", zap.String("path", a.prefsPath), zap.Error(err))
	}
}

func (a *app) outputFormat() (string, error) {
	format := strings.ToLower(a.v.GetString("output"))
	switch format {
	case "text", "json", "yaml":
		return format, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

func (a *app) compute(cfg model.Config) model.Result {
	res := engine.Compute(cfg)
	a.log.Info("computed capacity",
		zap.String("method", string(res.BayCountDetails.Method)),
		zap.Int("bays", res.BayCount),
		zap.Float64("totalCBM", res.TotalCBM),
		zap.Int("errors", len(res.Validation.Errors)),
		zap.Int("warnings", len(res.Validation.Warnings)),
	)
	return res
}
