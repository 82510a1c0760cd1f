package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stderr",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "seqdemo", &buf)
	l.WithComponent("evaluator").Debug("evaluation finished", Fields(FieldPipeline, "flatten", FieldElements, 8))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "evaluation finished" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry[FieldComponent] != "evaluator" {
		t.Errorf("expected component=evaluator, got %v", entry[FieldComponent])
	}
	if entry[FieldPipeline] != "flatten" {
		t.Errorf("expected pipeline=flatten, got %v", entry[FieldPipeline])
	}
	if entry["service"] != "seqdemo" {
		t.Errorf("expected service=seqdemo, got %v", entry["service"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered at info level, got %q", buf.String())
	}
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info message, got %q", buf.String())
	}
}

func TestConsoleFormatNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "seqdemo", &buf)
	l.Warn("careful")
	out := buf.String()
	if !strings.Contains(out, "[SEQ][WRN]") {
		t.Errorf("expected service and level tag, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color codes, got %q", out)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("discarded")
	l.WithFields(map[string]interface{}{"k": "v"}).Info("discarded")
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "", &buf)
	l.WithError(fmt.Errorf("boom")).Error("failed")
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("expected error field, got %q", buf.String())
	}
}

func TestInit(t *testing.T) {
	cfg := Config{
		Level:       "info",
		Format:      "console",
		ServiceName: "seqdemo",
	}
	Init(&cfg)
	gl := GetGlobalLogger()
	if gl == nil {
		t.Fatal("expected global logger to be set after Init")
	}
	if gl.service != "seqdemo" {
		t.Errorf("expected service from config, got %q", gl.service)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected Init to apply defaults, got output %q", cfg.Output)
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	SetGlobalLogger(NewNop())
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stderr"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stdout"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stderr"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stderr"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	defer Register("my-component", nil)

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
	Register("my-component", nil)
	if got := Get("my-component"); got == l {
		t.Error("expected nil registration to remove the binding")
	}
}

func TestGetUnregistered(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf))
	defer SetGlobalLogger(prev)

	Get("unregistered-component").Info("hello")
	if !strings.Contains(buf.String(), `"component":"unregistered-component"`) {
		t.Errorf("expected component tag, got %s", buf.String())
	}
}

func TestRegisterDefaults(t *testing.T) {
	defer func() {
		Register(ComponentEvaluator, nil)
		Register("showcase", nil)
	}()

	tests := []struct {
		name       string
		components []string
		want       []string
	}{
		{"seqkit components", nil, []string{ComponentEvaluator}},
		{"explicit", []string{"showcase"}, []string{"showcase"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RegisterDefaults(NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf), tt.components...)
			for _, name := range tt.want {
				buf.Reset()
				Get(name).Info("ping")
				if !strings.Contains(buf.String(), `"component":"`+name+`"`) {
					t.Errorf("%s: expected registered logger, got %q", name, buf.String())
				}
			}
		})
	}
}

func TestRegisterDefaultsGlobal(t *testing.T) {
	var buf bytes.Buffer
	prev := GetGlobalLogger()
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "test", &buf))
	defer SetGlobalLogger(prev)
	defer Register(ComponentEvaluator, nil)

	RegisterDefaults(nil, ComponentEvaluator)
	Get(ComponentEvaluator).Info("ping")
	if !strings.Contains(buf.String(), `"component":"evaluator"`) {
		t.Errorf("expected global logger output, got %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{
			"key-value pairs",
			[]interface{}{"op", "save", "id", 42},
			map[string]interface{}{"op": "save", "id": 42},
		},
		{
			"odd number of args",
			[]interface{}{"op", "save", "trailing"},
			map[string]interface{}{"op": "save"},
		},
		{
			"non-string key skipped",
			[]interface{}{123, "value", "key", "val"},
			map[string]interface{}{"key": "val"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("evaluate", fmt.Errorf("something broke"))

	if fields[FieldOperation] != "evaluate" {
		t.Errorf("expected operation 'evaluate', got %v", fields[FieldOperation])
	}
	if fields[FieldError] != "something broke" {
		t.Errorf("expected error 'something broke', got %v", fields[FieldError])
	}
}

func TestDurationFields(t *testing.T) {
	fields := DurationFields("reduce", 150*time.Millisecond)

	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}
