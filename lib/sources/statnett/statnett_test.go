package statnett

import (
	"errors"
	"testing"
	"time"

	"gridwatch-backend/lib/canonmap"
	"gridwatch-backend/lib/jsonfeed"
	"gridwatch-backend/lib/telemetry"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/detailed_overview.json
var detailedOverview []byte

func TestParseProduction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:statnett")
	defer cleanup()

	record, err := ParseProduction(detailedOverview, "SE")
	require.NoError(t, err)

	require.Equal(t, "SE", record.Region)
	require.Equal(t, Source, record.Source)
	require.True(t, record.At.Equal(time.UnixMilli(1492777200000)))
	require.Equal(t, location.String(), record.At.Location().String())

	expected := map[canonmap.Fuel]float64{
		canonmap.Wind:    2605,
		canonmap.Nuclear: 6489,
		canonmap.Hydro:   8226,
		canonmap.Unknown: 110, // thermal 100 + not specified 10
	}
	for fuel, want := range expected {
		v, ok := record.Production.Value(fuel)
		require.True(t, ok, fuel)
		require.Equal(t, want, v, fuel)
	}

	require.Nil(t, record.Capacity, "the feed publishes no capacity data")
}

func TestParseProductionSentinelZero(t *testing.T) {
	record, err := ParseProduction(detailedOverview, "NO")
	require.NoError(t, err)

	// norway reports "-" for nuclear, which this feed means as zero
	nuclear, ok := record.Production.Value(canonmap.Nuclear)
	require.True(t, ok)
	require.Equal(t, 0.0, nuclear)

	hydro, ok := record.Production.Value(canonmap.Hydro)
	require.True(t, ok)
	require.Equal(t, 11207.0, hydro)
}

func TestParseProductionUnknownRegion(t *testing.T) {
	_, err := ParseProduction(detailedOverview, "SWE")
	require.Error(t, err)

	var notFound *jsonfeed.RegionNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "SWE", notFound.Target)
	require.Equal(t, "SE", notFound.Closest)
}

func TestParseProductionTruncatedFeed(t *testing.T) {
	truncated := []byte(`{
		"MeasuredAt": 1492777200000,
		"Headers": [{"value": "NO"}, {"value": "SE"}],
		"ThermalData": [{"value": "86"}, {"value": "100"}],
		"NotSpecifiedData": [{"value": "0"}],
		"WindData": [{"value": "278"}, {"value": "2605"}],
		"NuclearData": [{"value": "-"}, {"value": "6489"}],
		"HydroData": [{"value": "11207"}, {"value": "8226"}],
		"ConsumptionData": [{"value": "12750"}, {"value": "14246"}]
	}`)

	_, err := ParseProduction(truncated, "SE")
	require.Error(t, err)

	var misaligned *jsonfeed.MisalignedFeedError
	require.True(t, errors.As(err, &misaligned))
	require.Equal(t, "NotSpecifiedData", misaligned.Metric)
}

func TestParseProductionMalformedJSON(t *testing.T) {
	_, err := ParseProduction([]byte("<html>not json</html>"), "SE")
	require.Error(t, err)
}

func TestParseConsumption(t *testing.T) {
	record, err := ParseConsumption(detailedOverview, "FI")
	require.NoError(t, err)

	require.Equal(t, "FI", record.Region)
	require.Equal(t, 7646.0, record.Consumption)
	require.True(t, record.At.Equal(time.UnixMilli(1492777200000)))
}
