package aeso

import (
	"errors"
	"testing"
	"time"

	"gridwatch-backend/lib/canonmap"
	"gridwatch-backend/lib/htmltable"
	"gridwatch-backend/lib/telemetry"

	_ "embed"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/csd_report.html
var csdReport []byte

//go:embed testdata/pool_price.html
var poolPrice []byte

func TestParseProduction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:aeso")
	defer cleanup()

	record, err := ParseProduction(csdReport)
	require.NoError(t, err)

	require.Equal(t, "CA-AB", record.Region)
	require.Equal(t, Source, record.Source)
	require.True(t, record.At.Equal(time.Date(2017, 4, 21, 13, 22, 0, 0, location)))

	expected := map[canonmap.Fuel]float64{
		canonmap.Coal:    5670,
		canonmap.Gas:     4738,
		canonmap.Hydro:   350,
		canonmap.Wind:    0, // "-" is AESO's explicit zero
		canonmap.Unknown: 227,
	}
	for fuel, want := range expected {
		v, ok := record.Production.Value(fuel)
		require.True(t, ok, fuel)
		require.Equal(t, want, v, fuel)
	}

	_, ok := record.Production.Value(canonmap.Nuclear)
	require.False(t, ok, "alberta has no nuclear and must not report one")

	require.NotNil(t, record.Capacity)
	capacity := map[canonmap.Fuel]float64{
		canonmap.Coal:    6271,
		canonmap.Gas:     7684,
		canonmap.Hydro:   894,
		canonmap.Wind:    1445,
		canonmap.Unknown: 424,
	}
	for fuel, want := range capacity {
		v, ok := record.Capacity.Value(fuel)
		require.True(t, ok, fuel)
		require.Equal(t, want, v, fuel)
	}
}

func TestParseProductionChangedMarkup(t *testing.T) {
	_, err := ParseProduction([]byte("<html><body><p>maintenance</p></body></html>"))
	require.Error(t, err)

	var notFound *htmltable.TableNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestParsePrices(t *testing.T) {
	records, err := ParsePrices(poolPrice)
	require.NoError(t, err)

	// the "-" row (hour not yet settled) is skipped, the rest come back
	// ascending regardless of the page's descending order
	expected := []canonmap.PriceRecord{
		{
			Region:   "CA-AB",
			At:       time.Date(2017, 4, 20, 23, 0, 0, 0, location),
			Currency: "CAD",
			Price:    30.10,
			Source:   Source,
		},
		{
			Region:   "CA-AB",
			At:       time.Date(2017, 4, 21, 10, 0, 0, 0, location),
			Currency: "CAD",
			Price:    25.50,
			Source:   Source,
		},
		{
			Region:   "CA-AB",
			At:       time.Date(2017, 4, 21, 11, 0, 0, 0, location),
			Currency: "CAD",
			Price:    18.32,
			Source:   Source,
		},
	}
	require.Empty(t, cmp.Diff(expected, records))
}

func TestParseExchange(t *testing.T) {
	at := time.Date(2017, 4, 21, 13, 30, 0, 0, location)

	record, err := ParseExchange(csdReport, "CA-AB", "CA-BC", at)
	require.NoError(t, err)
	require.Equal(t, "CA-AB->CA-BC", record.SortedPairKey)
	require.Equal(t, -157.0, record.NetFlow)
	require.Equal(t, Source, record.Source)
	require.True(t, record.At.Equal(at))

	// querying the opposite direction yields the identical record
	reverse, err := ParseExchange(csdReport, "CA-BC", "CA-AB", at)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(record, reverse))

	montana, err := ParseExchange(csdReport, "US", "CA-AB", at)
	require.NoError(t, err)
	require.Equal(t, 53.0, montana.NetFlow)

	// "-" means no flow on this path right now
	sask, err := ParseExchange(csdReport, "CA-AB", "CA-SK", at)
	require.NoError(t, err)
	require.Equal(t, 0.0, sask.NetFlow)
}

func TestParseExchangeUnsupportedPair(t *testing.T) {
	_, err := ParseExchange(csdReport, "CA-AB", "CA-ON", time.Now())
	require.Error(t, err)

	var unsupported *canonmap.UnsupportedPairError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "CA-AB->CA-ON", unsupported.PairKey)
}

func TestPriceRowInstant(t *testing.T) {
	at, err := priceRowInstant("04/21/2017 1")
	require.NoError(t, err)
	require.True(t, at.Equal(time.Date(2017, 4, 21, 0, 0, 0, 0, location)))

	at, err = priceRowInstant("04/21/2017 24")
	require.NoError(t, err)
	require.True(t, at.Equal(time.Date(2017, 4, 21, 23, 0, 0, 0, location)))

	_, err = priceRowInstant("04/21/2017")
	require.Error(t, err)

	_, err = priceRowInstant("garbage label")
	require.Error(t, err)
}
