package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxrobot CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxrobot version %s\n", version)
		fmt.Println("An automated FX trading decision engine")
		fmt.Println("https://github.com/rustyeddy/fxrobot")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
