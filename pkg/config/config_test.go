package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/fightmetrics/pkg/backdrop/geometry"
	"github.com/matzehuels/fightmetrics/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Count != 30 || cfg.MinSeparation != 60 || cfg.Attempts != 100 {
		t.Errorf("unexpected sampling defaults: %+v", cfg)
	}
	if cfg.MinOutDegree != 1 || cfg.MaxOutDegree != 3 || cfg.Speed != 0.5 {
		t.Errorf("unexpected graph defaults: %+v", cfg)
	}
	if cfg.Width != 800 || cfg.Height != 400 {
		t.Errorf("viewport = %vx%v, want 800x400", cfg.Width, cfg.Height)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
count = 12
speed = 2.0
seed = 42
labels = ["Reach", "Cardio"]
`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Count != 12 || cfg.Speed != 2 || cfg.Seed != 42 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.Labels) != 2 || cfg.Labels[1] != "Cardio" {
		t.Errorf("Labels = %v", cfg.Labels)
	}
	if cfg.MinSeparation != 60 {
		t.Errorf("MinSeparation = %v, want default 60", cfg.MinSeparation)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"syntax", "count = = 1", "parse config"},
		{"unknown key", "colour = 'red'", "unknown keys: colour"},
		{"negative count", "count = -1", "Count"},
		{"zero speed", "speed = 0.0", "Speed"},
		{"degree bounds", "min_out_degree = 4\nmax_out_degree = 2", "MaxOutDegree"},
		{"empty labels", "labels = []", "Labels"},
		{"blank label", "labels = ['a', '']", "Labels"},
		{"zero attempts", "attempts = 0", "Attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backdrop.toml")
	if err := os.WriteFile(path, []byte("width = 1024.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Width != 1024 {
		t.Errorf("Width = %v, want 1024", cfg.Width)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestEncodeDecodes(t *testing.T) {
	want := Default()
	want.Seed = 7
	want.Count = 5

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v\n%s", err, buf.String())
	}
	if got.Seed != 7 || got.Count != 5 || len(got.Labels) != len(want.Labels) {
		t.Errorf("decoded %+v", got)
	}
}

func TestRandSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	if cfg.RandSeed() != 99 {
		t.Errorf("RandSeed() = %d, want 99", cfg.RandSeed())
	}
	cfg.Seed = 0
	if cfg.RandSeed() == 0 {
		t.Error("RandSeed() with zero seed should draw from the clock")
	}
}

func TestGeneratorUsesConfig(t *testing.T) {
	cfg := Default()
	cfg.Count = 10
	cfg.MinOutDegree, cfg.MaxOutDegree = 2, 2
	cfg.Labels = []string{"Only"}

	g, stats := cfg.Generator(geometry.NewRand(1)).Generate(cfg.Bounds(), cfg.Count)
	if stats.Nodes != 10 {
		t.Fatalf("Nodes = %d, want 10", stats.Nodes)
	}
	for _, n := range g.Nodes {
		if n.Label != "Only" {
			t.Fatalf("label %q not from configured vocabulary", n.Label)
		}
	}
	if stats.Edges+stats.SelfLoopsSkipped != 20 {
		t.Errorf("edges %d + skipped %d, want 20 draws", stats.Edges, stats.SelfLoopsSkipped)
	}
}
