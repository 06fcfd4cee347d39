package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mchmarny/churnpulse/pkg/config"
	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/logging"
	"github.com/mchmarny/churnpulse/pkg/metrics"
	"github.com/mchmarny/churnpulse/pkg/scoring"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "churnpulse"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"

	exitCodeInvalidInput = 2

	noColorEnvVar = "NO_COLOR"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	logLevel = &slog.LevelVar{}

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	configDirFlag = &urfave.StringFlag{
		Name:  "config",
		Usage: fmt.Sprintf("Directory holding config.yaml (default: $HOME/.%s)", appName),
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	seedFlag = &urfave.Uint64Flag{
		Name:  "seed",
		Usage: "Seed for the model jitter, same seed gives same predictions (default: from config, 0 uses the clock)",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		// validation failures were already shown to the user
		if _, ok := customer.AsValidationError(err); ok {
			os.Exit(exitCodeInvalidInput)
		}
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir    string
	Config *config.Config
	Format string
	Engine *engine.Engine
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Customer exit prediction from a simple form",
		Metadata:             map[string]any{},
		Flags: []urfave.Flag{
			debugFlag,
			configDirFlag,
			formatFlag,
			seedFlag,
		},
		Commands: []*urfave.Command{
			predictCmd,
			batchCmd,
			serverCmd,
		},
		Before: func(c *urfave.Context) error {
			applyFlags(c)

			dir := c.String(configDirFlag.Name)
			if dir == "" {
				d, _, err := config.GetOrCreateHomeDir(appName)
				if err != nil {
					return fmt.Errorf("resolving config dir: %w", err)
				}
				dir = d
			}

			cfg, err := config.ReadOrCreate(dir)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
			if !c.Bool(debugFlag.Name) {
				logLevel.Set(logging.ParseLogLevel(cfg.LogLevel))
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Dir:    dir,
				Config: cfg,
				Format: outputFormat(c),
				Engine: newEngine(c, cfg),
			}
			return nil
		},
	}
}

// applyFlags applies flags that may be set either globally or on the
// subcommand.
func applyFlags(c *urfave.Context) {
	if c.Bool(debugFlag.Name) {
		initLogging(true)
	}
	if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok {
		cfg.Format = outputFormat(c)
	}
}

func outputFormat(c *urfave.Context) string {
	f := c.String(formatFlag.Name)
	if f == formatYAML || f == "yml" {
		return formatYAML
	}
	return formatJSON
}

func newEngine(c *urfave.Context, cfg *config.Config) *engine.Engine {
	seed := cfg.Seed
	if c.IsSet(seedFlag.Name) {
		seed = c.Uint64(seedFlag.Name)
	}

	src := scoring.NewSource()
	if seed != 0 {
		src = scoring.NewRandSource(seed)
		slog.Debug("using seeded jitter", "seed", seed)
	}

	return engine.New(
		engine.WithSource(src),
		engine.WithLogger(slog.Default()),
		engine.WithObserver(metrics.Observer{}),
	)
}

func initLogging(debug bool) {
	if debug {
		logLevel.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(newCLIHandler(os.Stderr, logLevel)))
}

// newCLIHandler drops color codes when NO_COLOR is set.
func newCLIHandler(w io.Writer, level slog.Leveler) slog.Handler {
	h := logging.NewCLIHandler(w, level)
	if os.Getenv(noColorEnvVar) != "" {
		return h.Plain()
	}
	return h
}

// terminalNotifier prints notifications on the error writer of the app.
type terminalNotifier struct {
	logger *slog.Logger
}

func newTerminalNotifier(w io.Writer) *terminalNotifier {
	return &terminalNotifier{logger: slog.New(newCLIHandler(w, slog.LevelInfo))}
}

func (n *terminalNotifier) Notify(message string, severity engine.Severity) {
	switch severity {
	case engine.SeverityError:
		n.logger.Error(message)
	case engine.SeverityWarning:
		n.logger.Warn(message)
	default:
		n.logger.Info(message)
	}
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

var errInvalidArgs = errors.New("invalid arguments")
