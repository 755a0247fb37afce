package commands

import (
	"log/slog"
	"time"

	"gridwatch-backend/lib/serviceutil"
	"gridwatch-backend/lib/sources/statnett"

	"github.com/spf13/cobra"
)

var consumptionRegion *string

func init() {
	consumptionRegion = consumptionCmd.Flags().String("region", "NO", "Region code to fetch.")
	rootCmd.AddCommand(consumptionCmd)
}

var consumptionCmd = &cobra.Command{
	Use:   "consumption [--region <code>]",
	Short: "Fetches the latest load for a Nordic region.",
	Run: func(cmd *cobra.Command, args []string) {
		client := statnett.NewClient(statnett.ClientOptions{DebugOutput: debugOutput()})
		record, err := client.FetchConsumption(cmd.Context(), *consumptionRegion)
		if err != nil {
			serviceutil.Fatal("failed to fetch consumption", err)
		}

		slog.Info(
			"consumption",
			"region", record.Region,
			"load_mw", record.Consumption,
			"at", record.At.Format(time.RFC3339),
			"source", record.Source,
		)
	},
}
