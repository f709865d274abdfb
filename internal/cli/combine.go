package cli

import (
	"fmt"
	"time"

	"github.com/chazu/lignin-bsp/internal/logger"
	"github.com/chazu/lignin-bsp/pkg/csg"
	"github.com/chazu/lignin-bsp/pkg/meshio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCombineCmd(a *app) *cobra.Command {
	var (
		opName string
		output string
	)

	cmd := &cobra.Command{
		Use:   "combine A B",
		Short: "Apply a boolean operation to two meshes",
		Long: `Combine reads two closed meshes and writes the union, intersection or
subtraction (A minus B) of them. An empty result is written as a file with
no triangles and logged as a warning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := csg.ParseOp(opName)
			if err != nil {
				return err
			}

			faceA, err := meshio.ReadFaces(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			faceB, err := meshio.ReadFaces(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}

			start := time.Now()
			result, err := csg.Combine(op, faceA, faceB)
			if err != nil {
				return err
			}
			logger.Info("combined",
				zap.Stringer("op", op),
				zap.Int("a", len(faceA)),
				zap.Int("b", len(faceB)),
				zap.Int("result", len(result)),
				zap.Duration("took", time.Since(start)),
			)
			if len(result) == 0 {
				logger.Warn("boolean produced an empty mesh", zap.Stringer("op", op))
			}

			if c, ok := a.color(0); ok {
				meshio.Paint(result, c)
			}
			out := a.outputPath(output)
			if err := meshio.WriteFaces(out, result); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d triangles\n", out, len(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&opName, "op", "union", "Operation (union, intersect, subtract)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (.glb or .gltf)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
