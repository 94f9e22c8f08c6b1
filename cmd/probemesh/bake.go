package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tijon1/rbfx/probemesh"
)

func init() {
	bakeCmd.Flags().String("input", "", "point file to tetrahedralize (required)")
	bakeCmd.Flags().String("format", "csv", "point file format: csv or yaml")
	bakeCmd.Flags().Float32Slice("query", nil, "x,y,z position to query after baking")
	bakeCmd.Flags().Bool("profile", false, "wrap Define in a CPU profile")
	bakeCmd.Flags().String("out", "", "write the baked mesh to this file in the persisted layout")
	bakeCmd.Flags().Bool("plot", false, "open a live 2D plot of the mesh edges and block")

	_ = viper.BindPFlag("input", bakeCmd.Flags().Lookup("input"))
	_ = viper.BindPFlag("format", bakeCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(bakeCmd)
}

var bakeCmd = &cobra.Command{
	Use:   "bake",
	Short: "Tetrahedralize a point cloud and print mesh statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := viper.GetString("input")
		if input == "" {
			return fmt.Errorf("--input is required")
		}
		format := viper.GetString("format")

		points, err := loadPoints(input, format)
		if err != nil {
			return fmt.Errorf("loading points from %s: %w", input, err)
		}

		doProfile, _ := cmd.Flags().GetBool("profile")
		if doProfile {
			stop := profile.Start(profile.CPUProfile)
			defer stop.Stop()
		}

		m := &probemesh.Mesh{}
		if err := m.Define(points); err != nil {
			fmt.Printf("probemesh: Define reported %v (mesh may be degraded)\n", err)
		}

		fmt.Printf("vertices:            %d\n", len(m.Vertices))
		fmt.Printf("inner tetrahedra:    %d\n", m.NumInnerTetrahedrons)
		fmt.Printf("outer tetrahedra:    %d\n", len(m.Tetrahedrons)-int(m.NumInnerTetrahedrons))
		fmt.Printf("ignored vertices:    %d\n", len(m.IgnoredVertices))

		query, _ := cmd.Flags().GetFloat32Slice("query")
		if len(query) == 3 {
			p := probemesh.Vector3{X: query[0], Y: query[1], Z: query[2]}
			var hint uint32
			weights := m.GetInterpolationFactors(p, &hint)
			fmt.Printf("query (%g,%g,%g) -> weights (%g,%g,%g,%g) in tetrahedron %d\n",
				p.X, p.Y, p.Z, weights.X, weights.Y, weights.Z, weights.W, hint)
		}

		out, _ := cmd.Flags().GetString("out")
		if out != "" {
			if err := saveMeshFile(m, out); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
		}

		doPlot, _ := cmd.Flags().GetBool("plot")
		if doPlot {
			m.DebugPlot()
		}
		return nil
	},
}
