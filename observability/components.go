package observability

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/seqkit/component"
)

// TracerComponent manages the tracer provider lifecycle.
type TracerComponent struct {
	config TracerConfig
	tp     *sdktrace.TracerProvider
}

var (
	_ component.Component   = (*TracerComponent)(nil)
	_ component.Describable = (*TracerComponent)(nil)
)

// NewTracerComponent creates a tracer component for cfg.
func NewTracerComponent(cfg TracerConfig) *TracerComponent {
	return &TracerComponent{config: cfg}
}

// Name returns the component name.
func (c *TracerComponent) Name() string { return "tracer" }

// Start initializes the tracer provider and installs it globally.
func (c *TracerComponent) Start(ctx context.Context) error {
	tp, err := InitTracer(ctx, &c.config)
	if err != nil {
		return err
	}
	c.tp = tp
	return nil
}

// Stop flushes pending spans and shuts the provider down.
func (c *TracerComponent) Stop(ctx context.Context) error {
	if c.tp == nil {
		return nil
	}
	err := c.tp.Shutdown(ctx)
	c.tp = nil
	return err
}

// Health reports whether the provider is running.
func (c *TracerComponent) Health(_ context.Context) component.Health {
	if c.tp == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup summary line.
func (c *TracerComponent) Describe() component.Description {
	return component.Description{
		Name:    "Tracer",
		Type:    "telemetry",
		Details: fmt.Sprintf("otlp %s sample=%.2f", c.config.Endpoint, c.config.SampleRate),
	}
}

// MeterComponent manages the meter provider lifecycle.
type MeterComponent struct {
	config MeterConfig
	mp     *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*MeterComponent)(nil)
	_ component.Describable = (*MeterComponent)(nil)
)

// NewMeterComponent creates a meter component for cfg.
func NewMeterComponent(cfg MeterConfig) *MeterComponent {
	return &MeterComponent{config: cfg}
}

// Name returns the component name.
func (c *MeterComponent) Name() string { return "meter" }

// Start initializes the meter provider and installs it globally.
func (c *MeterComponent) Start(ctx context.Context) error {
	mp, err := InitMeter(ctx, &c.config)
	if err != nil {
		return err
	}
	c.mp = mp
	return nil
}

// Stop flushes pending measurements and shuts the provider down.
func (c *MeterComponent) Stop(ctx context.Context) error {
	if c.mp == nil {
		return nil
	}
	err := c.mp.Shutdown(ctx)
	c.mp = nil
	return err
}

// Health reports whether the provider is running.
func (c *MeterComponent) Health(_ context.Context) component.Health {
	if c.mp == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the startup summary line.
func (c *MeterComponent) Describe() component.Description {
	return component.Description{
		Name:    "Meter",
		Type:    "telemetry",
		Details: fmt.Sprintf("otlp %s interval=%s", c.config.Endpoint, c.config.Interval),
	}
}
