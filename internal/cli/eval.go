package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chazu/lignin-bsp/internal/logger"
	"github.com/chazu/lignin-bsp/pkg/engine"
	"github.com/chazu/lignin-bsp/pkg/meshio"
	"github.com/chazu/lignin-bsp/pkg/tessellate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "eval SCRIPT",
		Short: "Evaluate a modeling script and write its parts",
		Long: `Eval runs a Lisp modeling script and writes every part it defines with
defpart as a named node of one glTF file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading script: %w", err)
			}

			k := a.kernel()
			eng := engine.NewEngine(k)
			eng.Segments = a.cfg.Kernel.CylinderSegments
			logger.Sugar.Debugf("evaluating %s with the %s kernel, %d cylinder segments",
				args[0], k.Name(), eng.Segments)

			start := time.Now()
			scene, evalErrs, err := eng.Evaluate(string(src))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(evalErrs) > 0 {
				errs := make([]error, len(evalErrs))
				for i, e := range evalErrs {
					errs[i] = e
				}
				return fmt.Errorf("%s: %w", args[0], errors.Join(errs...))
			}

			meshes, err := tessellate.Tessellate(scene, k)
			if err != nil {
				return err
			}
			logger.Info("evaluated script",
				zap.String("script", args[0]),
				zap.String("kernel", k.Name()),
				zap.Int("parts", len(meshes)),
				zap.Int("triangles", tessellate.TriangleCount(meshes)),
				zap.Duration("took", time.Since(start)),
			)

			parts := meshio.PartsFromMeshes(meshes)
			for i := range parts {
				if len(parts[i].Faces) == 0 {
					logger.Warn("part has no triangles", zap.String("part", parts[i].Name))
				}
				if c, ok := a.color(i); ok {
					meshio.Paint(parts[i].Faces, c)
				}
			}

			out := a.outputPath(output)
			if err := meshio.WriteParts(out, parts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d parts, %d triangles\n",
				out, len(parts), tessellate.TriangleCount(meshes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.glb or .gltf)")
	cmd.Flags().StringVar(&a.overrides.Kernel, "kernel", "", "Geometry kernel (bsp, sdfx)")
	cmd.Flags().IntVar(&a.overrides.CylinderSegments, "segments", 0, "Default cylinder segment count")
	cmd.Flags().IntVar(&a.overrides.MeshCells, "mesh-cells", 0, "Marching cubes resolution for the sdfx kernel")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
