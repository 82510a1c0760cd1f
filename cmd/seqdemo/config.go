package main

import (
	"time"

	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/stage"
	"github.com/kbukum/seqkit/validation"
)

// AppConfig is the seqdemo configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Evaluator config.EvaluatorConfig `yaml:"evaluator" mapstructure:"evaluator"`
	Output    config.OutputConfig    `yaml:"output" mapstructure:"output"`
	Telemetry config.TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// defaults apply when neither config.yml nor the environment set a key.
var defaults = map[string]any{
	"name":                  serviceName,
	"logging.output":        "stderr",
	"telemetry.sample_rate": 1.0,
	"telemetry.insecure":    true,
}

func (c *AppConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Evaluator.ApplyDefaults()
	c.Output.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

func (c *AppConfig) Validate() error {
	return validation.New().
		Merge("", c.ServiceConfig.Validate()).
		Merge("evaluator", c.Evaluator.Validate()).
		Merge("output", c.Output.Validate()).
		Merge("telemetry", c.Telemetry.Validate()).
		Validate()
}

func (c *AppConfig) evaluatorOptions() []stage.Option {
	return []stage.Option{
		stage.WithMode(stage.Mode(c.Evaluator.Mode)),
		stage.WithWorkers(c.Evaluator.Workers),
		stage.WithPartitionSize(c.Evaluator.PartitionSize),
	}
}

func (c *AppConfig) tracerConfig() observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		SampleRate:     c.Telemetry.SampleRate,
	}
}

func (c *AppConfig) meterConfig() observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    c.Name,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		Interval:       time.Duration(c.Telemetry.Interval) * time.Second,
	}
}
