package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backview/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage backview configuration files.

Subcommands:
  init      - Create a default configuration file
  validate  - Validate a configuration file

Examples:
  backview config init
  backview config validate --file backview.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	RunE:  runConfigValidate,
}

var (
	configOutput string
	configFile   string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configOutput, "output", "o", "backview.yaml", "output file path")
	configValidateCmd.Flags().StringVarP(&configFile, "file", "f", "", "configuration file to validate")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configOutput); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("✓ Created default configuration: %s\n", configOutput)
	fmt.Println("Edit it, then start the server with: backview serve --config", configOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if configFile == "" {
		return fmt.Errorf("--file is required")
	}
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	fmt.Printf("✓ Configuration valid: %s\n", configFile)
	fmt.Printf("  Listen:  %s\n", cfg.Server.Addr)
	fmt.Printf("  Store:   %s\n", cfg.Store.DBPath)
	fmt.Printf("  Replay:  %d ms/candle\n", cfg.Replay.SpeedMs)
	fmt.Printf("  Log:     %s\n", cfg.Log.Level)
	return nil
}
