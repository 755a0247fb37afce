package commands

import (
	"testing"

	"gridwatch-backend/lib/canonmap"

	"github.com/google/go-cmp/cmp"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/require"
)

func TestProductionRows(t *testing.T) {
	var production canonmap.FuelMix
	require.NoError(t, production.Add(canonmap.Coal, 6271))
	require.NoError(t, production.Add(canonmap.Wind, 0))

	var capacity canonmap.FuelMix
	require.NoError(t, capacity.Add(canonmap.Coal, 5670))
	// a unit can be offline with its capability still published
	require.NoError(t, capacity.Add(canonmap.Gas, 4738))

	rows := productionRows(canonmap.ProductionRecord{
		Region:     "CA-AB",
		Production: production,
		Capacity:   &capacity,
	})

	want := []table.Row{
		{"coal", 6271.0, 5670.0},
		{"gas", "", 4738.0},
		{"wind", 0.0, ""},
	}
	require.Empty(t, cmp.Diff(want, rows))
}

func TestProductionRowsNoCapacity(t *testing.T) {
	var production canonmap.FuelMix
	require.NoError(t, production.Add(canonmap.Hydro, 8226))

	rows := productionRows(canonmap.ProductionRecord{
		Region:     "SE",
		Production: production,
	})

	want := []table.Row{{"hydro", 8226.0}}
	require.Empty(t, cmp.Diff(want, rows))
}
