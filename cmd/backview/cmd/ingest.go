package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/pkg/id"
	"github.com/rustyeddy/backview/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <result.json>",
	Short: "Ingest a backtest result export into the store",
	Long: `Read a backtest result export, validate it, and record it under a
fresh run ID.

Examples:
  backview ingest results/aapl-sma.json
  backview ingest --db ./runs.db result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	res, err := backtest.DecodeFile(args[0])
	if err != nil {
		return fmt.Errorf("read result: %w", err)
	}
	if err := res.Validate(); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}

	st, err := store.NewSQLite(dbPath, nil)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	runID := id.New()
	if err := st.RecordRun(context.Background(), runID, res); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	fmt.Printf("✓ Ingested %s as run %s\n", args[0], runID)
	fmt.Printf("  %d candles, %d trades, %d equity points\n",
		len(res.Candles), len(res.Trades), len(res.Equity))
	fmt.Println()
	backtest.PrintSummary(os.Stdout, res)
	return nil
}
