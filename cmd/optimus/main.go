// Command optimus exposes the mesh utilities and the solid-angle point
// classification engine on the command line.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gato1108/optimus/geometry"
	"github.com/gato1108/optimus/material"
	"github.com/gato1108/optimus/postprocess"
)

func main() {
	root := &cobra.Command{
		Use:           "optimus",
		Short:         "Acoustic mesh utilities and solid-angle point classification",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newStatsCmd(), newClassifyCmd(), newTransformCmd(), newMaterialCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// readMesh loads a surface mesh, either directly from a gmsh surface file or
// as the boundary of a tetrahedral volume mesh.
func readMesh(path string, volume bool) (*geometry.TriangleMesh, error) {
	if volume {
		return geometry.ReadVolumeBoundary(path)
	}
	return geometry.ReadMshFile(path)
}

func newStatsCmd() *cobra.Command {
	var volume bool
	cmd := &cobra.Command{
		Use:   "stats <mesh file>",
		Short: "Print mesh statistics (edge lengths, node count)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMesh(args[0], volume)
			if err != nil {
				return err
			}
			stats, err := geometry.MeshStats(m)
			if err != nil {
				return err
			}
			fmt.Print(stats)
			return nil
		},
	}
	cmd.Flags().BoolVar(&volume, "volume", false, "treat input as a tetrahedral volume mesh and use its boundary surface")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var (
		volume     bool
		tolerance  float64
		workers    int
		verbose    bool
		axes       []int
		resolution []int
		bounds     []float64
		offset     float64
	)
	cmd := &cobra.Command{
		Use:   "classify <mesh file>",
		Short: "Classify a plane grid of field points as interior, exterior or boundary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(axes) != 2 || len(resolution) != 2 || len(bounds) != 4 {
				return fmt.Errorf("need --axes a,b --resolution n,m --bounds min1,max1,min2,max2")
			}
			m, err := readMesh(args[0], volume)
			if err != nil {
				return err
			}
			points, err := geometry.PlanePoints(
				[2]int{resolution[0], resolution[1]},
				[2]int{axes[0], axes[1]},
				offset,
				[4]float64{bounds[0], bounds[1], bounds[2], bounds[3]},
			)
			if err != nil {
				return err
			}
			cls, err := postprocess.Classify(m, points, postprocess.Config{
				Tolerance: tolerance,
				Workers:   workers,
				Verbose:   verbose,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Classified %d points against %s:\n", len(points), args[0])
			for _, d := range cls.Domains {
				if d.Boundary != nil {
					fmt.Printf("  domain %d: %d interior, %d boundary\n",
						d.Tag, len(d.InteriorPoints), len(d.BoundaryPoints))
				} else {
					fmt.Printf("  domain %d: %d interior\n", d.Tag, len(d.InteriorPoints))
				}
			}
			fmt.Printf("  exterior: %d\n", len(cls.ExteriorPoints))
			return nil
		},
	}
	cmd.Flags().BoolVar(&volume, "volume", false, "treat input as a tetrahedral volume mesh and use its boundary surface")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "boundary tolerance on the solid angle, 0 disables boundary detection")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines, 0 uses all CPUs")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print timing output")
	cmd.Flags().IntSliceVar(&axes, "axes", []int{0, 1}, "the two coordinate axes spanning the point plane")
	cmd.Flags().IntSliceVar(&resolution, "resolution", []int{101, 101}, "points along each plane axis")
	cmd.Flags().Float64SliceVar(&bounds, "bounds", []float64{-1, 1, -1, 1}, "plane bounds min1,max1,min2,max2")
	cmd.Flags().Float64Var(&offset, "offset", 0, "plane offset along the perpendicular axis")
	return cmd
}

func newTransformCmd() *cobra.Command {
	var (
		out          string
		scale        float64
		translate    string
		rotate       string
		rotateCenter string
	)
	cmd := &cobra.Command{
		Use:   "transform <mesh file>",
		Short: "Scale, translate or rotate a surface mesh, preserving connectivity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m geometry.Grid
			m, err := geometry.ReadMshFile(args[0])
			if err != nil {
				return err
			}
			if scale != 1 {
				if m, err = geometry.Scale(m, scale); err != nil {
					return err
				}
			}
			if translate != "" {
				v, err := parseFloats(translate, 3)
				if err != nil {
					return fmt.Errorf("--translate: %w", err)
				}
				m = geometry.Translate(m, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
			}
			if rotate != "" {
				angles, err := parseFloats(rotate, 3)
				if err != nil {
					return fmt.Errorf("--rotate: %w", err)
				}
				if m, err = geometry.Rotate(m, angles); err != nil {
					return err
				}
			}
			if rotateCenter != "" {
				angles, err := parseFloats(rotateCenter, 3)
				if err != nil {
					return fmt.Errorf("--rotate-around-center: %w", err)
				}
				if m, err = geometry.RotateAroundCenter(m, angles); err != nil {
					return err
				}
			}
			if err := geometry.WriteMshFile(m, out); err != nil {
				return err
			}
			fmt.Printf("Wrote transformed mesh to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output mesh file")
	cmd.Flags().Float64Var(&scale, "scale", 1, "multiplicative scaling factor")
	cmd.Flags().StringVar(&translate, "translate", "", "translation vector x,y,z")
	cmd.Flags().StringVar(&rotate, "rotate", "", "rotation angles in radians x,y,z around the origin")
	cmd.Flags().StringVar(&rotateCenter, "rotate-around-center", "", "rotation angles in radians x,y,z around the mesh center")
	cobra.CheckErr(cmd.MarkFlagRequired("output"))
	return cmd
}

func newMaterialCmd() *cobra.Command {
	var (
		userDB string
		freq   float64
	)
	cmd := &cobra.Command{
		Use:   "material <name>",
		Short: "Look up acoustic material properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := material.Open(userDB)
			if err != nil {
				return err
			}
			p, err := db.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Material: %s\n", p.Name)
			fmt.Printf("  Density:        %g kg/m^3\n", p.Density)
			fmt.Printf("  Speed of sound: %g m/s\n", p.SpeedOfSound)
			fmt.Printf("  Attenuation:    %g * f^%g Np/m (f in MHz)\n", p.AttenuationCoeffA, p.AttenuationPowB)
			if freq > 0 {
				fmt.Printf("  At %g MHz:      %g Np/m\n", freq, p.Attenuation(freq))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&userDB, "user-database", "", "path to a user-defined material CSV overlay")
	cmd.Flags().Float64Var(&freq, "freq", 0, "frequency in MHz to evaluate attenuation at")
	return cmd
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("need %d comma-separated values, got %d", n, len(parts))
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		vals[i] = v
	}
	return vals, nil
}
