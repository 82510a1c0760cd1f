// Command seqdemo evaluates the showcase pipelines and prints one result per
// example to stdout. Logs go to stderr.
package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/seqkit/bootstrap"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/render"
	"github.com/kbukum/seqkit/showcase"
	"github.com/kbukum/seqkit/stage"
	"github.com/kbukum/seqkit/version"
)

const serviceName = "seqdemo"

type options struct {
	configFile string
	examples   []string
	mode       string
	format     string
	list       bool
	version    bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "ERR: %v\n", err)
		return 1
	}

	switch {
	case opts.version:
		fmt.Fprintf(stdout, "%s %s\n", serviceName, version.Get())
		return 0
	case opts.list:
		for _, ex := range showcase.Catalog() {
			fmt.Fprintf(stdout, "%-18s %s\n", ex.Name, ex.Title)
		}
		return 0
	}

	if err := execute(ctx, opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "ERR: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.configFile, "config", "c", "", "Path to config Yaml file.")
	fs.StringArrayVarP(&o.examples, "example", "e", nil, "Example to run, repeatable. Runs all when omitted.")
	fs.StringVarP(&o.mode, "mode", "m", "", "Evaluation mode: sequential or parallel. Overrides config.")
	fs.StringVarP(&o.format, "format", "f", "", "Output format: text or json. Overrides config.")
	fs.BoolVarP(&o.list, "list", "l", false, "List example names and exit.")
	fs.BoolVar(&o.version, "version", false, "Print version and exit.")
	return o, fs.Parse(args)
}

func loadConfig(o options) (*AppConfig, error) {
	cfg := &AppConfig{}
	loaderOpts := []config.LoaderOption{config.WithDefaults(defaults)}
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if err := config.LoadConfig(serviceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}

	// Flags win over file and environment.
	if o.mode != "" {
		cfg.Evaluator.Mode = o.mode
	}
	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}
	return cfg, nil
}

func execute(ctx context.Context, o options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg, bootstrap.WithSummaryWriter(summaryWriter(cfg, stderr)))
	if err != nil {
		return err
	}

	examples, err := selectExamples(o.examples)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		if err := app.RegisterComponent(observability.NewTracerComponent(cfg.tracerConfig())); err != nil {
			return err
		}
		if err := app.RegisterComponent(observability.NewMeterComponent(cfg.meterConfig())); err != nil {
			return err
		}
	}

	var ev *stage.Evaluator
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
		// Instruments are created after the meter component installed its provider.
		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		opts := append(a.Cfg.evaluatorOptions(), stage.WithMetrics(metrics))
		ev = stage.NewEvaluator(opts...)
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		for _, ex := range examples {
			if err := runExample(ctx, ev, ex, format, stdout); err != nil {
				app.Logger.WithError(err).Error("example failed", logger.Fields(logger.FieldExample, ex.Name))
				return fmt.Errorf("%s: %w", ex.Name, err)
			}
		}
		return nil
	})
}

func summaryWriter(cfg *AppConfig, stderr io.Writer) io.Writer {
	if cfg.Telemetry.Enabled {
		return stderr
	}
	return io.Discard
}

func selectExamples(names []string) ([]showcase.Example, error) {
	if len(names) == 0 {
		return showcase.Catalog(), nil
	}
	examples := make([]showcase.Example, 0, len(names))
	for _, name := range names {
		ex, err := showcase.Lookup(name)
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	return examples, nil
}

// runExample writes "name: <result>" followed by any lines the example printed.
func runExample(ctx context.Context, ev *stage.Evaluator, ex showcase.Example, format render.Format, w io.Writer) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanExample)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrExample, ex.Name)

	var printed bytes.Buffer
	result, err := ex.Run(ctx, ev, &printed)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return errors.FromContext(err)
	}

	var rendered bytes.Buffer
	if err := render.Render(&rendered, format, result); err != nil {
		return err
	}

	if rendered.Len() == 0 {
		fmt.Fprintf(w, "%s:\n", ex.Name)
	} else {
		fmt.Fprintf(w, "%s: %s\n", ex.Name, rendered.String())
	}
	_, err = printed.WriteTo(w)
	return err
}
