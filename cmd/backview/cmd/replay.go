package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Replay a stored run candle by candle in the terminal",
	Long: `Step through a recorded backtest one candle at a time, printing the
revealed close, the equity at that point, and the trades placed so far.

Examples:
  backview replay 01J8X4N2M9QZT5W7RVBK3CEFGH
  backview replay 01J8X4N2M9QZT5W7RVBK3CEFGH --speed-ms 50
  backview replay --file result.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

var (
	replaySpeedMs int
	replayFile    string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().IntVar(&replaySpeedMs, "speed-ms", replay.DefaultSpeedMs, "milliseconds per candle")
	replayCmd.Flags().StringVar(&replayFile, "file", "", "replay straight from a result file instead of the store")
}

func runReplay(cmd *cobra.Command, args []string) error {
	var res *backtest.Result
	switch {
	case replayFile != "":
		loaded, err := backtest.DecodeFile(replayFile)
		if err != nil {
			return fmt.Errorf("read result: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid result: %w", err)
		}
		res = loaded
	case len(args) == 1:
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		loaded, err := st.GetRun(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		res = loaded
	default:
		return fmt.Errorf("either a run ID or --file is required")
	}

	comp := replay.NewCompositor(res)
	if comp.Len() == 0 {
		return fmt.Errorf("run has no candles")
	}

	// Buffered past the run length so notifications from inside the
	// controller's lock never block on the printer.
	states := make(chan replay.State, comp.Len()+8)
	ctrl := replay.NewController(comp.Len(), replaySpeedMs, nil, func(st replay.State) {
		states <- st
	})
	defer ctrl.Close()

	fmt.Printf("Replaying %s %s (%d candles at %d ms each)\n",
		res.Symbol, res.Interval, comp.Len(), replaySpeedMs)
	fmt.Println()

	ctrl.Start()
	for st := range states {
		frame := comp.Compose(st, nil)
		printFrameLine(frame, comp.Len())
		if st.Status == replay.Stopped {
			break
		}
	}

	fmt.Println()
	fmt.Println("Replay complete!")
	fmt.Println()
	backtest.PrintSummary(os.Stdout, res)
	return nil
}

func printFrameLine(f *replay.Frame, total int) {
	if len(f.Candles) == 0 {
		return
	}
	last := f.Candles[len(f.Candles)-1]
	equity := 0.0
	if len(f.Equity) > 0 {
		equity = f.Equity[len(f.Equity)-1].Equity
	}
	fmt.Printf("  [%4d/%-4d] %s  close %9.4f  equity $%.2f  trades %d\n",
		f.State.Cursor, total,
		last.Time.Time().Format("2006-01-02 15:04"),
		last.Close, equity, len(f.Markers))
}
