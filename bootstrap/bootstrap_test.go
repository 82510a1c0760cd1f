package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/seqkit/component"
	"github.com/kbukum/seqkit/config"
	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

// testConfig is a minimal config for testing that satisfies the Config interface.
type testConfig struct {
	config.ServiceConfig
}

// mockComponent implements component.Component for testing.
type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	events   *[]string
	mu       sync.Mutex
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	if m.events != nil {
		*m.events = append(*m.events, "start "+m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.events != nil {
		*m.events = append(*m.events, "stop "+m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	return m.health
}

type mockDescribableComponent struct {
	mockComponent
	desc component.Description
}

func (m *mockDescribableComponent) Describe() component.Description { return m.desc }

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	opts = append([]Option{WithLogger(logger.NewNop()), WithSummaryWriter(io.Discard)}, opts...)
	app, err := NewApp(newTestConfig("seqdemo", "1.0.0"), opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func healthy(name string) component.Health {
	return component.Health{Name: name, Status: component.StatusHealthy}
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "seqdemo" {
		t.Errorf("expected name 'seqdemo', got %q", app.Name)
	}
	if app.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", app.Version)
	}
	if app.Components == nil {
		t.Error("expected non-nil components registry")
	}
	if app.Logger == nil {
		t.Error("expected non-nil logger")
	}
	// Defaults were applied to the typed config.
	if app.Cfg.Logging.Level == "" {
		t.Error("expected logging defaults to be applied")
	}
}

func TestNewAppRegistersComponentLoggers(t *testing.T) {
	defer logger.Register(logger.ComponentEvaluator, nil)

	var buf bytes.Buffer
	l := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "seqdemo", &buf)
	newTestApp(t, WithLogger(l))

	logger.Get(logger.ComponentEvaluator).Info("ping")
	out := buf.String()
	if !strings.Contains(out, `"component":"evaluator"`) || !strings.Contains(out, `"message":"ping"`) {
		t.Errorf("expected evaluator logger to write through the app logger, got %q", out)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Environment: "development"}}
	_, err := NewApp(cfg, WithLogger(logger.NewNop()))
	if !errors.IsCode(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("expected INVALID_CONFIG for missing name, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "config validation: ") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestGracefulTimeout(t *testing.T) {
	if app := newTestApp(t); app.gracefulTimeout != 15*time.Second {
		t.Errorf("expected default 15s, got %v", app.gracefulTimeout)
	}
	if app := newTestApp(t, WithGracefulTimeout(5*time.Second)); app.gracefulTimeout != 5*time.Second {
		t.Errorf("expected 5s, got %v", app.gracefulTimeout)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(&mockComponent{name: "tracer"}); err != nil {
		t.Fatalf("RegisterComponent failed: %v", err)
	}
	if app.Components.Get("tracer") == nil {
		t.Error("expected component to be registered")
	}
	if err := app.RegisterComponent(&mockComponent{name: "tracer"}); err == nil {
		t.Error("expected error for duplicate component registration")
	}
}

func TestHooks(t *testing.T) {
	t.Run("run in order", func(t *testing.T) {
		var order []string
		hooks := []Hook{
			func(ctx context.Context) error { order = append(order, "first"); return nil },
			func(ctx context.Context) error { order = append(order, "second"); return nil },
		}
		if err := runHooks(context.Background(), hooks); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("expected [first second], got %v", order)
		}
	})

	t.Run("error stops execution", func(t *testing.T) {
		secondCalled := false
		hooks := []Hook{
			func(ctx context.Context) error { return fmt.Errorf("fail") },
			func(ctx context.Context) error { secondCalled = true; return nil },
		}
		err := runHooks(context.Background(), hooks)
		if err == nil || err.Error() != "hook 0 failed: fail" {
			t.Errorf("unexpected error %v", err)
		}
		if secondCalled {
			t.Error("expected second hook not to be called after first fails")
		}
	})
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		health  []component.Health
		wantErr bool
	}{
		{"empty", nil, false},
		{"all healthy", []component.Health{healthy("tracer"), healthy("meter")}, false},
		{"unhealthy", []component.Health{healthy("tracer"), {Name: "meter", Status: component.StatusUnhealthy, Message: "not started"}}, true},
		{"degraded", []component.Health{{Name: "tracer", Status: component.StatusDegraded}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)
			for _, h := range tc.health {
				app.RegisterComponent(&mockComponent{name: h.Name, health: h})
			}
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tc.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRunTaskSuccess(t *testing.T) {
	app := newTestApp(t)
	executed := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if !executed {
		t.Error("expected task to be executed")
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("task error")
	})
	if err == nil || err.Error() != "task error" {
		t.Errorf("expected 'task error', got %v", err)
	}
}

func TestRunTaskErrorWinsOverStopError(t *testing.T) {
	app := newTestApp(t)
	app.RegisterComponent(&mockComponent{name: "meter", health: healthy("meter"), stopErr: fmt.Errorf("flush failed")})

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("task error")
	})
	if err == nil || err.Error() != "task error" {
		t.Errorf("expected task error to win, got %v", err)
	}

	app = newTestApp(t)
	app.RegisterComponent(&mockComponent{name: "meter", health: healthy("meter"), stopErr: fmt.Errorf("flush failed")})
	err = app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := app.RunTask(ctx, func(taskCtx context.Context) error {
		cancel()
		<-taskCtx.Done()
		return taskCtx.Err()
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunTaskLifecycleOrder(t *testing.T) {
	app := newTestApp(t)

	var order []string
	app.RegisterComponent(&mockComponent{name: "tracer", health: healthy("tracer"), events: &order})
	app.RegisterComponent(&mockComponent{name: "meter", health: healthy("meter"), events: &order})
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "onStart")
		return nil
	})
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		if a.Cfg.Name != "seqdemo" {
			t.Errorf("expected typed config in configure callback, got %q", a.Cfg.Name)
		}
		order = append(order, "configure")
		return nil
	})
	app.OnReady(func(ctx context.Context) error {
		order = append(order, "onReady")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "onStop")
		return nil
	})

	if err := app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	}); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	expected := []string{"start tracer", "start meter", "onStart", "configure", "onReady", "task", "onStop", "stop meter", "stop tracer"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestRunTaskStartupFailure(t *testing.T) {
	app := newTestApp(t)
	first := &mockComponent{name: "tracer", health: healthy("tracer")}
	app.RegisterComponent(first)
	app.RegisterComponent(&mockComponent{name: "meter", startErr: fmt.Errorf("no collector")})

	executed := false
	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "initialization failed") {
		t.Fatalf("expected initialization error, got %v", err)
	}
	if executed {
		t.Error("task must not run after a failed startup")
	}
	if !first.stopped {
		t.Error("expected already started component to be stopped")
	}
}

func TestRunTaskConfigureFailure(t *testing.T) {
	app := newTestApp(t)
	app.OnConfigure(func(ctx context.Context, a *App[*testConfig]) error {
		return fmt.Errorf("bad evaluator")
	})
	err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil })
	if err == nil || err.Error() != "configuration failed: bad evaluator" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSummaryDisplay(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(t, WithSummaryWriter(&buf))
	app.RegisterComponent(&mockDescribableComponent{
		mockComponent: mockComponent{name: "tracer", health: healthy("tracer")},
		desc:          component.Description{Name: "Tracer", Type: "telemetry", Details: "otlp localhost:4318 sample=1.00"},
	})
	app.RegisterComponent(&mockComponent{
		name:   "meter",
		health: component.Health{Name: "meter", Status: component.StatusUnhealthy, Message: "not started"},
	})

	if err := app.RunTask(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"seqdemo 1.0.0 started in",
		"├── ✓ Tracer [telemetry] otlp localhost:4318 sample=1.00",
		"└── ✗ meter (not started)",
		"Some components have issues (1/2 healthy)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSummaryNoComponents(t *testing.T) {
	var buf bytes.Buffer
	NewSummary("seqdemo", "dev", &buf).Display(context.Background(), component.NewRegistry())
	if !strings.Contains(buf.String(), "No components registered") {
		t.Errorf("unexpected summary %q", buf.String())
	}
}
