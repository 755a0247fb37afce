package commands

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gridwatch-backend/lib/canonmap"
	"gridwatch-backend/lib/serviceutil"
	"gridwatch-backend/lib/sources/aeso"
	"gridwatch-backend/lib/sources/statnett"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var productionRegion *string

func init() {
	productionRegion = productionCmd.Flags().String("region", aeso.Region, "Region code to fetch.")
	rootCmd.AddCommand(productionCmd)
}

var productionCmd = &cobra.Command{
	Use:   "production [--region <code>]",
	Short: "Fetches the latest generation mix for a region.",
	Run: func(cmd *cobra.Command, args []string) {
		record, err := fetchProduction(cmd.Context(), *productionRegion)
		if err != nil {
			serviceutil.Fatal("failed to fetch production", err)
		}
		renderProduction(record)
	},
}

func fetchProduction(ctx context.Context, region string) (canonmap.ProductionRecord, error) {
	if region == aeso.Region {
		client := aeso.NewClient(aeso.ClientOptions{DebugOutput: debugOutput()})
		return client.FetchProduction(ctx)
	}
	client := statnett.NewClient(statnett.ClientOptions{DebugOutput: debugOutput()})
	return client.FetchProduction(ctx, region)
}

func renderProduction(record canonmap.ProductionRecord) {
	slog.Info(
		"production",
		"region", record.Region,
		"at", record.At.Format(time.RFC3339),
		"source", record.Source,
	)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	if record.Capacity != nil {
		t.AppendHeader(table.Row{"Fuel", "Production (MW)", "Capacity (MW)"})
	} else {
		t.AppendHeader(table.Row{"Fuel", "Production (MW)"})
	}

	t.AppendRows(productionRows(record))
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// productionRows emits one row per fuel reported in either mix, so a
// fuel with a capacity figure but no current generation still shows up.
func productionRows(record canonmap.ProductionRecord) []table.Row {
	var rows []table.Row
	for _, fuel := range canonmap.Fuels() {
		v, hasProduction := record.Production.Value(fuel)
		var c float64
		hasCapacity := false
		if record.Capacity != nil {
			c, hasCapacity = record.Capacity.Value(fuel)
		}
		if !hasProduction && !hasCapacity {
			continue
		}
		row := table.Row{string(fuel)}
		if hasProduction {
			row = append(row, v)
		} else {
			row = append(row, "")
		}
		if record.Capacity != nil {
			if hasCapacity {
				row = append(row, c)
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
