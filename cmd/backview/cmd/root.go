package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backview",
	Short: "A backtest result dashboard with chart replay",
	Long: `Backview stores exported backtest results and plays them back,
candle by candle, to a charting frontend.

It provides tools for:
  - Ingesting backtest result exports into a local SQLite store
  - Serving run history, strategy profiles, and candle data over REST
  - Streaming chart replay frames over websockets
  - Stepping through a stored run from the terminal

Complete documentation is available at https://github.com/rustyeddy/backview`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var dbPath string

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "./backview.db", "path to the SQLite store")
}
