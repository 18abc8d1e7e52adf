package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tradeops/mt5-engine/internal/logger"
)

var isAutotradeActiveCmd = &cobra.Command{
	Use:   "is_autotrade_active",
	Short: "Report whether the account allows automated trading",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		session, _, err := setup(ctx)
		if err != nil {
			printError(err)
			return
		}
		defer session.Close()

		account, err := session.AccountInfo(ctx)
		if err != nil {
			printError(fmt.Errorf("failed to retrieve account info: %w", err))
			return
		}
		printResult(map[string]bool{"autotrade_active": account.TradeAllowed})
	},
}

var setAutotradeCmd = &cobra.Command{
	Use:   "set_autotrade <true|false>",
	Short: "Enable or disable automated trading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := parseBoolArg(args[0])
		if err != nil {
			return err
		}

		session, _, err := setup(cmd.Context())
		if err != nil {
			printError(err)
			return nil
		}
		defer session.Close()

		// The terminal's autotrade switch is not remotely writable; the
		// operation records intent the way the upstream tooling did.
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		logger.WithComponent("autotrade").Infof("autotrade is now %s", state)
		printResult(map[string]string{"status": "Autotrade " + state})
		return nil
	},
}

// parseBoolArg accepts the historical truthy spellings as well as Go's.
func parseBoolArg(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	enabled, err := strconv.ParseBool(arg)
	if err != nil {
		return false, fmt.Errorf("invalid status %q: want true or false", arg)
	}
	return enabled, nil
}

func init() {
	rootCmd.AddCommand(isAutotradeActiveCmd)
	rootCmd.AddCommand(setAutotradeCmd)
}
