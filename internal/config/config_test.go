package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.File != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.File)
	}
	if cfg.Kernel.Name != KernelBSP {
		t.Errorf("expected kernel bsp, got %s", cfg.Kernel.Name)
	}
	if cfg.Kernel.CylinderSegments != 32 {
		t.Errorf("expected 32 cylinder segments, got %d", cfg.Kernel.CylinderSegments)
	}
	if cfg.Output.Format != "glb" {
		t.Errorf("expected glb output, got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
kernel:
  name: sdfx
  mesh_cells: 64
output:
  color: ["#c8a165", "#33669980"]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Kernel.Name != KernelSDFX {
		t.Errorf("expected kernel sdfx, got %s", cfg.Kernel.Name)
	}
	if cfg.Kernel.MeshCells != 64 {
		t.Errorf("expected 64 mesh cells, got %d", cfg.Kernel.MeshCells)
	}
	// Values absent from the file keep their defaults.
	if cfg.Kernel.CylinderSegments != 32 {
		t.Errorf("expected default cylinder segments, got %d", cfg.Kernel.CylinderSegments)
	}
	if cfg.Output.Format != "glb" {
		t.Errorf("expected default format, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}

	palette, err := cfg.Output.Palette()
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	want := []color.RGBA{{R: 0xc8, G: 0xa1, B: 0x65, A: 0xff}, {R: 0x33, G: 0x66, B: 0x99, A: 0x80}}
	if len(palette) != len(want) {
		t.Fatalf("palette len = %d, want %d", len(palette), len(want))
	}
	for i := range want {
		if palette[i] != want[i] {
			t.Errorf("palette[%d] = %v, want %v", i, palette[i], want[i])
		}
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("kernel: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Kernel.Name = KernelSDFX
	cfg.Output.Color = []string{"#ff0000"}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Kernel.Name != KernelSDFX || len(got.Output.Color) != 1 || got.Output.Color[0] != "#ff0000" {
		t.Errorf("reloaded config = %+v", got)
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := Default()
	Overrides{LogLevel: "warn", Kernel: KernelSDFX, MeshCells: 50}.Apply(cfg)

	if cfg.Logging.Level != "warn" {
		t.Errorf("level = %s, want warn", cfg.Logging.Level)
	}
	if cfg.Kernel.Name != KernelSDFX {
		t.Errorf("kernel = %s, want sdfx", cfg.Kernel.Name)
	}
	if cfg.Kernel.MeshCells != 50 {
		t.Errorf("mesh cells = %d, want 50", cfg.Kernel.MeshCells)
	}
	// Unset overrides keep file/default values.
	if cfg.Kernel.CylinderSegments != 32 {
		t.Errorf("cylinder segments = %d, want 32", cfg.Kernel.CylinderSegments)
	}
	if cfg.Logging.File != "" {
		t.Errorf("log file = %q, want empty", cfg.Logging.File)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.Logging.Level = "loud" }},
		{"kernel", func(c *Config) { c.Kernel.Name = "opencascade" }},
		{"segments", func(c *Config) { c.Kernel.CylinderSegments = 2 }},
		{"cells", func(c *Config) { c.Kernel.MeshCells = 0 }},
		{"format", func(c *Config) { c.Output.Format = "stl" }},
		{"color", func(c *Config) { c.Output.Color = []string{"red"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ffffff", color.RGBA{255, 255, 255, 255}, false},
		{"00ff00", color.RGBA{0, 255, 0, 255}, false},
		{"#01020304", color.RGBA{1, 2, 3, 4}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrBadColor) {
				t.Errorf("ParseColor(%q) error = %v, want ErrBadColor", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
