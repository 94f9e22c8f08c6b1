package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tijon1/rbfx/probemesh"
)

func init() {
	queryCmd.Flags().String("mesh", "", "baked mesh file to load (required)")
	queryCmd.Flags().Float32Slice("point", nil, "x,y,z position to query (required)")
	queryCmd.Flags().Uint32("hint", 0, "starting tetrahedron hint")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Load a baked mesh and run a single point-location query",
	RunE: func(cmd *cobra.Command, args []string) error {
		meshFile, _ := cmd.Flags().GetString("mesh")
		if meshFile == "" {
			return fmt.Errorf("--mesh is required")
		}
		point, _ := cmd.Flags().GetFloat32Slice("point")
		if len(point) != 3 {
			return fmt.Errorf("--point requires exactly 3 components")
		}
		hint, _ := cmd.Flags().GetUint32("hint")

		m, err := loadMeshFile(meshFile)
		if err != nil {
			return fmt.Errorf("loading %s: %w", meshFile, err)
		}

		p := probemesh.Vector3{X: point[0], Y: point[1], Z: point[2]}
		weights := m.GetInterpolationFactors(p, &hint)
		fmt.Printf("weights (%g,%g,%g,%g) in tetrahedron %d\n", weights.X, weights.Y, weights.Z, weights.W, hint)
		return nil
	},
}

func saveMeshFile(m *probemesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Save(f)
}

func loadMeshFile(path string) (*probemesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := &probemesh.Mesh{}
	if err := m.Load(f); err != nil {
		return nil, err
	}
	return m, nil
}
