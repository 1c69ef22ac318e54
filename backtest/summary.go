package backtest

import (
	"fmt"
	"io"
)

// PrintSummary writes a human-readable report of one run.
func PrintSummary(w io.Writer, r *Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Symbol:        %s\n", r.Symbol)
	if r.Strategy != "" {
		fmt.Fprintf(w, "Strategy:      %s\n", r.Strategy)
	}
	if r.Period != "" {
		fmt.Fprintf(w, "Period:        %s\n", r.Period)
	}
	if r.Interval != "" {
		fmt.Fprintf(w, "Interval:      %s\n", r.Interval)
	}

	if start, end := r.Span(); start != 0 || end != 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Range")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Start:         %s\n", start)
		fmt.Fprintf(w, "End:           %s\n", end)
		fmt.Fprintf(w, "Candles:       %d\n", len(r.Candles))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "SMA Windows:   %d / %d\n", r.ShortWindow, r.LongWindow)
	fmt.Fprintf(w, "EMA Windows:   %d / %d\n", r.EMAFast, r.EMASlow)
	if r.InitialCapital > 0 {
		fmt.Fprintf(w, "Capital:       %.2f\n", r.InitialCapital)
	}
	if r.FeeRate > 0 {
		fmt.Fprintf(w, "Fee Rate:      %.4f%%\n", r.FeeRate*100)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Metrics.NumTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.Metrics.WinRate*100)
	fmt.Fprintf(w, "Total Return:  %.2f%%\n", r.Metrics.TotalReturn*100)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.Metrics.MaxDrawdown*100)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", r.Metrics.Sharpe)
}
