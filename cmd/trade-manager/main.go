package main

import (
	"os"

	"github.com/tradeops/mt5-engine/cmd/trade-manager/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
