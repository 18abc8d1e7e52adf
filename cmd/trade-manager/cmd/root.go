// Package cmd wires the trade-manager CLI. Every business command prints a
// single structured JSON result on stdout and exits zero, including on
// handled business errors; a non-zero exit means the invocation itself was
// malformed.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tradeops/mt5-engine/internal/config"
	"github.com/tradeops/mt5-engine/internal/gateway"
	"github.com/tradeops/mt5-engine/internal/gateway/factory"
	"github.com/tradeops/mt5-engine/internal/logger"
)

var (
	envFile string
	symbol  string
)

var rootCmd = &cobra.Command{
	Use:   "trade-manager",
	Short: "Manage open positions on a brokerage gateway",
	Long: `trade-manager runs batch operations against the broker's open-position
set: listing, closing all, closing profitable, closing losing, and querying
the account's autotrade flag. Results are printed as a single JSON object.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "environment file path")
	rootCmd.PersistentFlags().StringVar(&symbol, "symbol", "", "restrict the operation to one symbol (default: all)")
}

// setup loads configuration and connects a gateway session. Logging is
// routed away from stdout so the JSON result stays parseable.
func setup(ctx context.Context) (gateway.Session, *config.Config, error) {
	_ = godotenv.Load(envFile)
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel}); err != nil {
		return nil, nil, err
	}

	gw, err := factory.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	session, err := gw.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session, cfg, nil
}

// printResult writes the command's single JSON result object to stdout.
func printResult(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// printError reports a handled business error as the command's result.
// The process still exits zero: the invocation itself was well-formed.
func printError(err error) {
	printResult(map[string]string{"error": err.Error()})
}
