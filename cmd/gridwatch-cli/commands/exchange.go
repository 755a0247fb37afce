package commands

import (
	"log/slog"
	"time"

	"gridwatch-backend/lib/serviceutil"
	"gridwatch-backend/lib/sources/aeso"

	"github.com/spf13/cobra"
)

var exchangeFrom *string
var exchangeTo *string

func init() {
	exchangeFrom = exchangeCmd.Flags().String("from", "CA-AB", "One side of the interconnection.")
	exchangeTo = exchangeCmd.Flags().String("to", "CA-BC", "The other side of the interconnection.")
	rootCmd.AddCommand(exchangeCmd)
}

var exchangeCmd = &cobra.Command{
	Use:   "exchange [--from <code>] [--to <code>]",
	Short: "Fetches the latest cross-border power flow for a region pair.",
	Run: func(cmd *cobra.Command, args []string) {
		client := aeso.NewClient(aeso.ClientOptions{DebugOutput: debugOutput()})
		record, err := client.FetchExchange(cmd.Context(), *exchangeFrom, *exchangeTo)
		if err != nil {
			serviceutil.Fatal("failed to fetch exchange", err)
		}

		slog.Info(
			"exchange",
			"pair", record.SortedPairKey,
			"net_flow_mw", record.NetFlow,
			"at", record.At.Format(time.RFC3339),
			"source", record.Source,
		)
	},
}
