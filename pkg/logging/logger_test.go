package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestJSONLogger_WritesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("simulation started", RunID("abc-123"), Iterations(1000))

	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("Log output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if e.Level != "INFO" {
		t.Errorf("Level = %q, want INFO", e.Level)
	}
	if e.Message != "simulation started" {
		t.Errorf("Message = %q, want 'simulation started'", e.Message)
	}
	if e.Fields["run_id"] != "abc-123" {
		t.Errorf("run_id field = %v, want abc-123", e.Fields["run_id"])
	}
	if e.Fields["iterations"] != float64(1000) {
		t.Errorf("iterations field = %v, want 1000", e.Fields["iterations"])
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("Below-level messages were written: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("Warn message missing: %s", buf.String())
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("simulation"), Scenario("baseline"))
	child.Info("done")

	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if e.Fields["component"] != "simulation" {
		t.Errorf("component field = %v, want simulation", e.Fields["component"])
	}
	if e.Fields["scenario"] != "baseline" {
		t.Errorf("scenario field = %v, want baseline", e.Fields["scenario"])
	}
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("no path"))
	if f.Key != "error" || f.Value != "no path" {
		t.Errorf("Error field = %+v", f)
	}
	if nilField := Error(nil); nilField.Value != nil {
		t.Errorf("Error(nil) value = %v, want nil", nilField.Value)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must not panic and With must return a usable logger
	logger.With(Component("x")).Info("ignored")
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "run complete", Component("simulation"))
	timer.End(Int("rows", 10))

	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if e.Message != "run complete" {
		t.Errorf("message = %q, want %q", e.Message, "run complete")
	}
	if e.Fields["component"] != "simulation" {
		t.Errorf("component field = %v, want simulation", e.Fields["component"])
	}
	if _, ok := e.Fields["elapsed"]; !ok {
		t.Errorf("elapsed field missing: %v", e.Fields)
	}
}

func TestTimedOperation_EndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	StartTimer(logger, "run failed").EndError(errors.New("bad input"))

	var e entry
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if e.Level != "ERROR" {
		t.Errorf("level = %q, want ERROR", e.Level)
	}
	if e.Fields["error"] != "bad input" {
		t.Errorf("error field = %v, want bad input", e.Fields["error"])
	}
}
