package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tradeops/mt5-engine/internal/engine"
	"github.com/tradeops/mt5-engine/pkg/report"
)

var (
	outputFormat string
	exportPath   string
)

var getOpenTradesCmd = &cobra.Command{
	Use:   "get_open_trades",
	Short: "List open positions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		session, _, err := setup(ctx)
		if err != nil {
			printError(err)
			return
		}
		defer session.Close()

		manager := engine.NewPositionManager(session, engine.NewExecutor(session))
		positions, err := manager.OpenPositions(ctx, symbol)
		if err != nil {
			printError(err)
			return
		}

		if exportPath != "" {
			if err := report.WritePositionsXLSX(exportPath, positions); err != nil {
				printError(err)
				return
			}
		}

		if outputFormat == "table" {
			report.RenderPositions(os.Stdout, positions)
			return
		}
		printResult(positions)
	},
}

var closeAllTradesCmd = &cobra.Command{
	Use:   "close_all_trades",
	Short: "Close every open position, aborting on the first failure",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBatchClose(cmd, func(m *engine.PositionManager) (*engine.BatchResult, error) {
			return m.CloseAll(cmd.Context(), symbol)
		}, "All trades closed successfully")
	},
}

var closeTradesInProfitCmd = &cobra.Command{
	Use:   "close_trades_in_profit",
	Short: "Close profitable positions, skipping over failures",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBatchClose(cmd, func(m *engine.PositionManager) (*engine.BatchResult, error) {
			return m.CloseProfitable(cmd.Context(), symbol)
		}, "All profitable trades closed successfully")
	},
}

var closeTradesInLossCmd = &cobra.Command{
	Use:   "close_trades_in_loss",
	Short: "Close losing positions, aborting on the first failure",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runBatchClose(cmd, func(m *engine.PositionManager) (*engine.BatchResult, error) {
			return m.CloseLosing(cmd.Context(), symbol)
		}, "All losing trades closed successfully")
	},
}

type batchCloseResult struct {
	Status string              `json:"status"`
	Result *engine.BatchResult `json:"result"`
}

func runBatchClose(cmd *cobra.Command, op func(*engine.PositionManager) (*engine.BatchResult, error), status string) {
	session, _, err := setup(cmd.Context())
	if err != nil {
		printError(err)
		return
	}
	defer session.Close()

	manager := engine.NewPositionManager(session, engine.NewExecutor(session))
	result, err := op(manager)
	if err != nil {
		printError(err)
		return
	}
	printResult(batchCloseResult{Status: status, Result: result})
}

func init() {
	getOpenTradesCmd.Flags().StringVar(&outputFormat, "format", "json", "output format: json or table")
	getOpenTradesCmd.Flags().StringVar(&exportPath, "export", "", "also write the snapshot to an Excel workbook")

	rootCmd.AddCommand(getOpenTradesCmd)
	rootCmd.AddCommand(closeAllTradesCmd)
	rootCmd.AddCommand(closeTradesInProfitCmd)
	rootCmd.AddCommand(closeTradesInLossCmd)
}
