package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/skillmap"
	"github.com/phanxgames/skillmap/internal/config"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		verbose bool
		want    slog.Level
	}{
		{"info", false, slog.LevelInfo},
		{"", false, slog.LevelInfo},
		{"DEBUG", false, slog.LevelDebug},
		{"warn", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"error", true, slog.LevelDebug},
	}
	for _, tt := range tests {
		log := newLogger(&bytes.Buffer{}, tt.level, tt.verbose)
		ctx := context.Background()
		if !log.Enabled(ctx, tt.want) {
			t.Errorf("level %q verbose=%v: %v should be enabled", tt.level, tt.verbose, tt.want)
		}
		if tt.want > slog.LevelDebug && log.Enabled(ctx, tt.want-1) {
			t.Errorf("level %q verbose=%v: below %v should be disabled", tt.level, tt.verbose, tt.want)
		}
	}
}

func TestMapOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.View.KeyStep = 0.25
	cfg.View.ShowFPS = true
	cfg.Layout.IslandsPerRow = 4

	opts := mapOptions(cfg, slog.Default())
	if opts.KeyStep != 0.25 {
		t.Errorf("KeyStep = %g, want 0.25", opts.KeyStep)
	}
	if !opts.ShowFPS {
		t.Error("ShowFPS = false, want true")
	}
	if opts.Layout.IslandsPerRow != 4 {
		t.Errorf("IslandsPerRow = %d, want 4", opts.Layout.IslandsPerRow)
	}
	if opts.InitialScale != 0.75 || opts.MinScale != 0.2 || opts.MaxScale != 2 {
		t.Errorf("scales = %g [%g, %g]", opts.InitialScale, opts.MinScale, opts.MaxScale)
	}

	m := skillmap.NewMap(opts)
	if got := m.Viewport().Transform().Scale; got != 0.75 {
		t.Errorf("map initial scale = %g, want 0.75", got)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"http://localhost:8080/skills.json", true},
		{"https://example.com/skills.json", true},
		{"skills.json", false},
		{"file:///tmp/skills.json", false},
	}
	for _, tt := range tests {
		if got := isRemote(tt.source); got != tt.want {
			t.Errorf("isRemote(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestStartWatchRejectsRemote(t *testing.T) {
	m := skillmap.NewMap(skillmap.MapOptions{})
	if _, err := startWatch("https://example.com/skills.json", m, slog.Default()); err != errWatchRemote {
		t.Errorf("err = %v, want errWatchRemote", err)
	}
}

func TestRenderInspect(t *testing.T) {
	doc, err := skillmap.ParseDocument([]byte(`{
		"Backend": {
			"width": 2, "color": "text-sky-400", "background": "bg-sky-900",
			"skills": {
				"Go": {"important": true},
				"Kafka": {"dynamic": true},
				"gap": {"placeholder": true}
			}
		},
		"Spacer": {"placeholder": true, "skills": {}}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	out := renderInspect("skills.json", doc)
	for _, want := range []string{
		"skills.json",
		"2 islands, 2 skills",
		"Backend",
		"width 2, 3 skills",
		"Go",
		skillmap.BadgeImportant,
		"Kafka",
		skillmap.BadgeDynamic,
		"(empty)",
		"Spacer",
		"placeholder",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Backend") > strings.Index(out, "Spacer") {
		t.Error("islands should be listed in document order")
	}
}

func TestColorHex(t *testing.T) {
	if got := colorHex(skillmap.Color{R: 1, G: 0, B: 0.5, A: 1}); got != "#ff0080" {
		t.Errorf("colorHex = %q, want #ff0080", got)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmap.yml")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View.InitialScale != 0.75 {
		t.Errorf("written initial_scale = %g, want 0.75", cfg.View.InitialScale)
	}

	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("second init without --force should fail")
	}
}
