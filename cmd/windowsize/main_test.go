package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/1broseidon/windowsize/internal/config"
	"github.com/1broseidon/windowsize/internal/windowsize"
)

func TestPrintValueCompactWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := printValue(&buf, windowsize.MakeFrameValue(1, 2, 3, 4)); err != nil {
		t.Fatalf("printValue() error: %v", err)
	}
	if got := buf.String(); got != "[1.0,2.0,3.0,4.0]\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestWriteJSONIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, []byte(`{"a":[1]}`), true); err != nil {
		t.Fatalf("writeJSON() error: %v", err)
	}
	want := "{\n  \"a\": [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestApplyWindowFlags(t *testing.T) {
	configured := config.WindowConfig{ID: 0x1200003, PID: 42, Class: "Foot"}
	tests := []struct {
		name  string
		pid   int
		class string
		want  config.WindowConfig
	}{
		{"no flags", 0, "", configured},
		{"pid overrides id", 7, "", config.WindowConfig{PID: 7, Class: "Foot"}},
		{"class overrides id and pid", 0, "kitty", config.WindowConfig{Class: "kitty"}},
		{"pid and class", 7, "kitty", config.WindowConfig{PID: 7, Class: "kitty"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := configured
			applyWindowFlags(&w, tt.pid, tt.class)
			if w != tt.want {
				t.Fatalf("window = %+v, want %+v", w, tt.want)
			}
		})
	}
}

func TestConfigInitWritesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if rc := runConfig([]string{"init"}); rc != 0 {
		t.Fatalf("config init rc = %d, want 0", rc)
	}
	path := filepath.Join(home, ".config", "windowsize", "config.yaml")
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Log.Level != config.DefaultConfig().Log.Level {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}

	if rc := runConfig([]string{"init"}); rc != 1 {
		t.Fatalf("second config init rc = %d, want 1", rc)
	}
	if rc := runConfig([]string{"init", "--force"}); rc != 0 {
		t.Fatalf("config init --force rc = %d, want 0", rc)
	}
	if rc := runConfig([]string{"validate"}); rc != 0 {
		t.Fatalf("config validate rc = %d, want 0", rc)
	}
}
