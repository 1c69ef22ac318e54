package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backview/config"
	"github.com/rustyeddy/backview/pkg/logging"
	"github.com/rustyeddy/backview/server"
	"github.com/rustyeddy/backview/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	Long: `Serve the REST API, websocket replay sessions, and Prometheus
metrics until interrupted.

Examples:
  backview serve
  backview serve --config backview.yaml
  backview serve --addr :9090 --db ./runs.db`,
	RunE: runServe,
}

var (
	serveConfigPath string
	serveAddr       string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "f", "", "path to config file")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.LoadFromFile(serveConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cmd.Flags().Changed("db") {
		cfg.Store.DBPath = dbPath
	}

	log := logging.New(cfg.Log.Level)
	logging.SetDefault(log)

	st, err := store.NewSQLite(cfg.Store.DBPath, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving dashboard on %s (store: %s)\n", cfg.Server.Addr, cfg.Store.DBPath)
	return server.New(cfg, st, log).Run(ctx)
}
