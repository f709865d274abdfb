// Package cli implements the lignin-bsp command line.
package cli

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/chazu/lignin-bsp/internal/config"
	"github.com/chazu/lignin-bsp/internal/logger"
	"github.com/chazu/lignin-bsp/pkg/kernel"
	"github.com/chazu/lignin-bsp/pkg/kernel/bsp"
	"github.com/chazu/lignin-bsp/pkg/kernel/sdfx"
	"github.com/spf13/cobra"
)

// app holds state shared by all subcommands of one invocation.
type app struct {
	configPath string
	overrides  config.Overrides
	cfg        *config.Config
	palette    []color.RGBA
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "lignin-bsp",
		Short: "lignin-bsp - BSP-tree CSG for triangle meshes",
		Long: `lignin-bsp combines closed triangle meshes with union, intersection and
subtraction using BSP trees. It reads and writes glTF (.gltf/.glb) and can
build parts from Lisp modeling scripts.`,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to config file")
	pf.StringVar(&a.overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.overrides.LogFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(
		newCombineCmd(a),
		newEvalCmd(a),
		newInfoCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and starts logging.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.overrides.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	palette, err := cfg.Output.Palette()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.cfg = cfg
	a.palette = palette
	return nil
}

// kernel returns the geometry kernel selected by the config.
func (a *app) kernel() kernel.Kernel {
	if a.cfg.Kernel.Name == config.KernelSDFX {
		return sdfx.NewWithCells(a.cfg.Kernel.MeshCells)
	}
	return bsp.New()
}

// color returns the palette entry for part i, cycling, and false when no
// palette is configured.
func (a *app) color(i int) (color.RGBA, bool) {
	if len(a.palette) == 0 {
		return color.RGBA{}, false
	}
	return a.palette[i%len(a.palette)], true
}

// outputPath adds the configured format as extension when path has none.
func (a *app) outputPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + "." + a.cfg.Output.Format
	}
	return path
}
