package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gorcdraft/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gorcdraft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gorcdraft v%s\n", version.Version)
		fmt.Printf("Built %s from %s\n", version.BuildTime, version.GitCommit)
		fmt.Println("Structural drafting and BS 8110 calculation reports")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
