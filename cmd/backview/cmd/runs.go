package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored backtest runs",
	Long: `Inspect the backtest runs recorded in the store.

Subcommands:
  list    - List stored runs, newest first
  show    - Show a run's summary metrics
  delete  - Delete a run and its payload

Examples:
  backview runs list
  backview runs show 01J8X4N2M9QZT5W7RVBK3CEFGH
  backview runs delete 01J8X4N2M9QZT5W7RVBK3CEFGH`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's summary metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsDeleteCmd)
}

func openStore() (*store.SQLite, error) {
	st, err := store.NewSQLite(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs stored yet. Ingest one with: backview ingest <result.json>")
		return nil
	}

	fmt.Printf("%-26s  %-19s  %-8s  %-10s  %6s  %8s\n",
		"RUN ID", "CREATED", "SYMBOL", "STRATEGY", "TRADES", "RETURN")
	for _, r := range runs {
		fmt.Printf("%-26s  %-19s  %-8s  %-10s  %6d  %7.2f%%\n",
			r.RunID,
			r.CreatedAt.Time().Format("2006-01-02 15:04:05"),
			r.Symbol,
			r.Strategy,
			r.Metrics.NumTrades,
			r.Metrics.TotalReturn*100)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := st.GetRun(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	backtest.PrintSummary(os.Stdout, res)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	fmt.Printf("✓ Deleted run %s\n", args[0])
	return nil
}
