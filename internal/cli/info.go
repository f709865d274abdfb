package cli

import (
	"errors"
	"fmt"

	"github.com/chazu/lignin-bsp/pkg/csg"
	"github.com/chazu/lignin-bsp/pkg/meshio"
	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print triangle count, volume and bounds of a mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			faces, err := meshio.ReadFaces(args[0])
			if err != nil && !errors.Is(err, meshio.ErrNoTriangles) {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "file:      %s\n", args[0])
			fmt.Fprintf(w, "triangles: %d\n", len(faces))
			if len(faces) == 0 {
				return nil
			}
			lo, hi := csg.Bounds(faces)
			fmt.Fprintf(w, "degenerate: %d\n", len(faces)-len(csg.NonDegenerate(faces, 0)))
			fmt.Fprintf(w, "volume:    %.6g\n", csg.SignedVolume(faces))
			fmt.Fprintf(w, "area:      %.6g\n", csg.SurfaceArea(faces))
			fmt.Fprintf(w, "bounds:    [%g %g %g] - [%g %g %g]\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
			return nil
		},
	}
}
