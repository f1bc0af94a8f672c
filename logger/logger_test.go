package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json", Output: "stderr"}
	return NewWithWriter(cfg, "test-svc", &buf), &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.name != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", l.name)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json"}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestInfo_WritesFields(t *testing.T) {
	l, buf := jsonLogger("info")
	l.Info("counted", Fields(FieldCount, 3, FieldOperator, "frequencies"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["message"] != "counted" {
		t.Errorf("unexpected message %v", lines[0]["message"])
	}
	if lines[0][FieldCount] != float64(3) {
		t.Errorf("expected count=3, got %v", lines[0][FieldCount])
	}
	if lines[0][FieldOperator] != "frequencies" {
		t.Errorf("expected operator field, got %v", lines[0][FieldOperator])
	}
}

func TestDebug_SuppressedAtInfo(t *testing.T) {
	l, buf := jsonLogger("info")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
	if l.DebugEnabled() {
		t.Error("debug should be disabled at info level")
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := jsonLogger("debug")
	l.WithComponent("words").Debug("hello")

	lines := decodeLines(t, buf)
	if lines[0][FieldComponent] != "words" {
		t.Errorf("expected component=words, got %v", lines[0][FieldComponent])
	}
}

func TestWithError(t *testing.T) {
	l, buf := jsonLogger("info")
	l.WithError(errors.New("boom")).Error("failed")

	lines := decodeLines(t, buf)
	if lines[0]["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", lines[0]["error"])
	}
}

func TestWithContext_RunID(t *testing.T) {
	l, buf := jsonLogger("info")
	ctx := ContextWithRunID(context.Background(), "run-1")
	l.WithContext(ctx).Info("step")

	lines := decodeLines(t, buf)
	if lines[0][FieldRunID] != "run-1" {
		t.Errorf("expected run_id=run-1, got %v", lines[0][FieldRunID])
	}

	if got := l.WithContext(context.Background()); got != l {
		t.Error("expected same logger when context carries no run id")
	}
}

func TestNop(t *testing.T) {
	Nop().Info("discarded")
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{Level: "info", Format: "console", NoColor: true}
	NewWithWriter(cfg, "seqkit", &buf).Info("hello")
	out := buf.String()
	if !strings.Contains(out, "[SEQ][INF]") {
		t.Errorf("expected console level tag, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestGet_CachesPerName(t *testing.T) {
	SetGlobalLogger(Nop())
	a := Get("words")
	b := Get("words")
	if a != b {
		t.Error("expected cached logger for the same name")
	}
	SetGlobalLogger(Nop())
	if Get("words") == a {
		t.Error("expected cache reset after SetGlobalLogger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
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

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
	ef := ErrorFields("map", errors.New("x"))
	if ef[FieldOperator] != "map" || ef[FieldError] != "x" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("sort", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration fields %v", df)
	}
}
