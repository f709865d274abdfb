// Package config handles lignin-bsp configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// KernelConfig selects and tunes the geometry kernel used by eval.
type KernelConfig struct {
	Name             string `yaml:"name"`              // bsp or sdfx
	CylinderSegments int    `yaml:"cylinder_segments"` // sides of script cylinders
	MeshCells        int    `yaml:"mesh_cells"`        // sdfx marching cubes resolution
}

// OutputConfig controls written mesh files.
type OutputConfig struct {
	Format string   `yaml:"format"` // glb or gltf, used when -o has no extension
	Color  []string `yaml:"color"`  // per-part palette, "#rrggbb" or "#rrggbbaa"
}

// Kernel names.
const (
	KernelBSP  = "bsp"
	KernelSDFX = "sdfx"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Kernel: KernelConfig{
			Name:             KernelBSP,
			CylinderSegments: 32,
			MeshCells:        200,
		},
		Output: OutputConfig{
			Format: "glb",
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Kernel.Name {
	case KernelBSP, KernelSDFX:
	default:
		return fmt.Errorf("kernel.name: unknown kernel %q", c.Kernel.Name)
	}
	if c.Kernel.CylinderSegments < 3 {
		return fmt.Errorf("kernel.cylinder_segments: need at least 3, got %d", c.Kernel.CylinderSegments)
	}
	if c.Kernel.MeshCells < 1 {
		return fmt.Errorf("kernel.mesh_cells: need at least 1, got %d", c.Kernel.MeshCells)
	}
	switch c.Output.Format {
	case "glb", "gltf":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if _, err := c.Output.Palette(); err != nil {
		return fmt.Errorf("output.color: %w", err)
	}
	return nil
}

// ErrBadColor is returned for palette entries that are not hex colors.
var ErrBadColor = errors.New("expected #rrggbb or #rrggbbaa")

// Palette parses the configured part colors.
func (o OutputConfig) Palette() ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(o.Color))
	for _, s := range o.Color {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". The leading # is optional.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
