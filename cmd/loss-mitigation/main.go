// Command loss-mitigation evaluates borrowers for mortgage workout options,
// either one calculator at a time or through the composite evaluator, and can
// serve the same operations over HTTP.
//
// Usage:
//
//	loss-mitigation serve [--address :8080]
//	loss-mitigation evaluate --option modification [--borrower B-100] [--input facts.yaml]
//	loss-mitigation calculate housingDTI input.yaml
//	loss-mitigation calculators
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/iwvelando/loss-mitigation/internal/composite"
	"github.com/iwvelando/loss-mitigation/internal/config"
	"github.com/iwvelando/loss-mitigation/internal/server"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/constants"
	"github.com/iwvelando/loss-mitigation/pkg/output"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zc.OutputPaths = []string{loggingConfig.OutputFile}
		zc.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	} else {
		// stdout carries command output
		zc.OutputPaths = []string{"stderr"}
	}

	return zc.Build()
}

// session bundles what every command needs after the global flags are
// resolved.
type session struct {
	conf   *config.Configuration
	logger *zap.Logger
}

func setup(c *cli.Context) (*session, error) {
	path := c.String("config")
	if path == "" {
		if _, err := os.Stat(constants.DefaultConfigFile); err == nil {
			path = constants.DefaultConfigFile
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}

	logger, err := initializeLogger(conf.Logging, c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.setup"),
		)
	}
	return &session{conf: conf, logger: logger}, nil
}

func (sess *session) close() {
	_ = sess.logger.Sync()
}

func (sess *session) outputFormat(c *cli.Context) (string, error) {
	format := sess.conf.Output.Format
	if override := c.String("output-format"); override != "" {
		format = override
	}
	if format == "" {
		format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// evaluator builds the composite evaluator over the configured fact source.
// The returned function releases the fact source.
func (sess *session) evaluator() (*composite.Evaluator, func(), error) {
	facts, closeFacts, err := composite.NewFactSource(sess.logger, sess.conf.Facts)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := closeFacts(); err != nil {
			sess.logger.Warn("failed to close fact source",
				zap.String("op", "main.evaluator"),
				zap.Error(err),
			)
		}
	}
	ev := composite.NewEvaluator(sess.logger, facts, composite.WithParallel(sess.conf.Composite.Parallel))
	return ev, release, nil
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

var outputFormatFlag = &cli.StringFlag{
	Name:    "output-format",
	Aliases: []string{"o"},
	Usage:   "output format override (pretty, csv, json)",
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the calculator and evaluation API over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "listen address override",
				EnvVars: []string{"LOSSMIT_ADDRESS"},
			},
		},
		Action: func(c *cli.Context) error {
			sess, err := setup(c)
			if err != nil {
				return err
			}
			defer sess.close()

			serverConf, err := server.NewConfig(sess.conf.Server)
			if err != nil {
				return err
			}
			if addr := c.String("address"); addr != "" {
				serverConf.Address = addr
			}

			ev, release, err := sess.evaluator()
			if err != nil {
				return err
			}
			defer release()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			handler := server.NewHandler(sess.logger, ev, serverConf.BodySizeBytes(), version)
			return server.ListenAndServe(ctx, sess.logger, serverConf.Address, handler)
		},
	}
}

func evaluateCommand() *cli.Command {
	return &cli.Command{
		Name:  "evaluate",
		Usage: "Evaluate a borrower for a workout option",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "option",
				Usage:    "workout option (short-sale, deed-in-lieu, modification, payment-deferral)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "borrower",
				Usage: "borrower ID to load facts for",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "YAML file of borrower facts that override the fact source",
			},
			outputFormatFlag,
		},
		Action: func(c *cli.Context) error {
			sess, err := setup(c)
			if err != nil {
				return err
			}
			defer sess.close()

			format, err := sess.outputFormat(c)
			if err != nil {
				return err
			}

			req := composite.Request{
				BorrowerID:    c.String("borrower"),
				WorkoutOption: c.String("option"),
			}
			if path := c.String("input"); path != "" {
				if req.Overrides, err = readDocument(path); err != nil {
					return err
				}
			}

			ev, release, err := sess.evaluator()
			if err != nil {
				return err
			}
			defer release()

			res, err := ev.Evaluate(c.Context, req)
			if err != nil {
				return err
			}
			return writeEvaluation(c.App.Writer, format, res)
		},
	}
}

// writeEvaluation renders the composite envelope. Tabular formats show a
// summary section followed by each component result.
func writeEvaluation(w io.Writer, format string, res calculator.Result[composite.Outcome]) error {
	if format == constants.OutputFormatJSON {
		return output.JSONFormat(w, res)
	}

	summary := map[string]any{
		"evaluationId":  res.Result.EvaluationID,
		"workoutOption": res.Result.WorkoutOption,
	}
	if res.Result.Eligible != nil {
		summary["eligible"] = *res.Result.Eligible
	}
	details := make(map[string]any, len(res.Details))
	for k, v := range res.Details {
		if k != "input" {
			details[k] = v
		}
	}

	results := []calculator.Result[any]{calculator.Format[any](res.CalculationType, summary, details, res.Warnings).
		WithReference(res.GuidelineReference)}
	results = append(results, res.Result.Results...)
	return output.Write(w, format, results)
}

func calculateCommand() *cli.Command {
	return &cli.Command{
		Name:      "calculate",
		Usage:     "Run a single calculator on a YAML input document",
		ArgsUsage: "<calculator> <input.yaml>",
		Flags:     []cli.Flag{outputFormatFlag},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected a calculator name and an input file, got %d arguments", c.NArg())
			}
			sess, err := setup(c)
			if err != nil {
				return err
			}
			defer sess.close()

			format, err := sess.outputFormat(c)
			if err != nil {
				return err
			}

			payload, err := readDocument(c.Args().Get(1))
			if err != nil {
				return err
			}
			res, err := composite.Calculate(c.Args().Get(0), payload)
			if err != nil {
				return err
			}
			sess.logger.Debug("calculation complete",
				zap.String("op", "main.calculate"),
				zap.String("calculator", res.CalculationType),
			)
			return output.Write(c.App.Writer, format, []calculator.Result[any]{res})
		},
	}
}

func calculatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "calculators",
		Usage: "List the available calculators",
		Action: func(c *cli.Context) error {
			for _, d := range calculator.AvailableCalculators() {
				fmt.Fprintf(c.App.Writer, "%-28s %s\n", d.Name, d.Description)
			}
			return nil
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "loss-mitigation",
		Usage:   "Mortgage loss-mitigation eligibility and workout calculations",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("path to configuration file (defaults to ./%s when present)", constants.DefaultConfigFile),
				EnvVars: []string{"LOSSMIT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level override (debug, info, warn, error)",
				EnvVars: []string{"LOSSMIT_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			evaluateCommand(),
			calculateCommand(),
			calculatorsCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
