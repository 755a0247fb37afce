package commands

import (
	"os"
	"time"

	"gridwatch-backend/lib/serviceutil"
	"gridwatch-backend/lib/sources/aeso"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(priceCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Fetches the day's hourly pool prices for Alberta.",
	Run: func(cmd *cobra.Command, args []string) {
		client := aeso.NewClient(aeso.ClientOptions{DebugOutput: debugOutput()})
		records, err := client.FetchPrice(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch prices", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Hour Starting", "Price", "Currency"})
		for _, r := range records {
			t.AppendRow(table.Row{r.At.Format(time.RFC3339), r.Price, r.Currency})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
