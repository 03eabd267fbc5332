package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewZerolog_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewZerolog(Config{Level: "info", Format: "json", Out: &buf})
	if err != nil {
		t.Fatalf("NewZerolog: %v", err)
	}

	l.Debug("hidden")
	l.Info("file opened",
		String("path", "/data/run1.raw"),
		Int("index", 2),
		Uint32("run", 362000),
		Bool("header", true),
		Err(errors.New("boom")),
	)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (debug must be filtered): %s", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["message"] != "file opened" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["path"] != "/data/run1.raw" {
		t.Errorf("path = %v", entry["path"])
	}
	if entry["run"] != float64(362000) {
		t.Errorf("run = %v", entry["run"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestNewZerolog_BadConfig(t *testing.T) {
	if _, err := NewZerolog(Config{Format: "xml"}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := NewZerolog(Config{Level: "loud"}); err == nil {
		t.Error("expected error for unsupported level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
