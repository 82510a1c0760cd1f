package config

import (
	"github.com/kbukum/seqkit/validation"
)

// EvaluatorConfig configures how pipelines are evaluated.
type EvaluatorConfig struct {
	// Mode is sequential or parallel.
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=sequential parallel"`
	// Workers caps concurrent partitions. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" mapstructure:"workers" validate:"gte=0"`
	// PartitionSize is the number of elements per parallel partition.
	// Zero splits the input evenly across workers.
	PartitionSize int `yaml:"partition_size" mapstructure:"partition_size" validate:"gte=0"`
}

// ApplyDefaults sets the sequential mode when none is given.
func (c *EvaluatorConfig) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = "sequential"
	}
}

// Validate checks the evaluator section.
func (c *EvaluatorConfig) Validate() error {
	return validation.Validate(c)
}

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=text json"`
}

// ApplyDefaults sets text output when none is given.
func (c *OutputConfig) ApplyDefaults() {
	if c.Format == "" {
		c.Format = "text"
	}
}

// Validate checks the output section.
func (c *OutputConfig) Validate() error {
	return validation.Validate(c)
}

// TelemetryConfig configures OTLP export of traces and metrics.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Interval is the metric export interval in seconds.
	Interval int `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// ApplyDefaults fills in the local collector endpoint and export interval.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.Interval == 0 {
		c.Interval = 15
	}
}

// Validate checks the telemetry section.
func (c *TelemetryConfig) Validate() error {
	return validation.Validate(c)
}
