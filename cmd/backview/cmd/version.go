package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("backview version %s\n", version)
		fmt.Println("A backtest result dashboard with chart replay")
		fmt.Println("https://github.com/rustyeddy/backview")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
