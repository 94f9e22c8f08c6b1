// Command probemesh demonstrates probemesh.Define and
// probemesh.GetInterpolationFactors over a point cloud loaded from a
// file. It is not part of the core (spec.md 6: "No CLI is part of the
// core") — the same boundary the teacher draws between
// DG3D/mesh/partition_mesh's demonstration CLI and the mesh package it
// drives.
package main

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "probemesh",
	Short: "Build and query tetrahedral probe meshes",
	Long: `probemesh builds a Delaunay tetrahedralization of a 3D point set,
closes it with an outer shell of virtual tetrahedra, and answers
point-location queries that return barycentric interpolation weights.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.probemesh.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".probemesh")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PROBEMESH")
	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
