package jsonfeed

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestColumn(t *testing.T) {
	col, err := Column([]string{"AB", "BC", "SK"}, "BC")
	require.NoError(t, err)
	require.Equal(t, 1, col)

	col, err = Column([]string{"AB", "BC", "SK"}, "AB")
	require.NoError(t, err)
	require.Equal(t, 0, col)
}

func TestColumnMissingRegion(t *testing.T) {
	_, err := Column([]string{"AB", "BC"}, "ON")
	require.Error(t, err)

	var notFound *RegionNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "ON", notFound.Target)
}

func TestColumnSuggestsClosest(t *testing.T) {
	_, err := Column([]string{"NO", "SE", "FI", "DK"}, "SWE")
	var notFound *RegionNotFoundError
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, "SE", notFound.Closest)
}

func TestAligned(t *testing.T) {
	metrics := map[string][]string{
		"ThermalData":      {"100", "200"},
		"NotSpecifiedData": {"10", "20"},
	}

	row, err := Aligned(metrics, 0)
	require.NoError(t, err)
	diff := cmp.Diff(map[string]string{
		"ThermalData":      "100",
		"NotSpecifiedData": "10",
	}, row)
	require.Empty(t, diff)

	row, err = Aligned(metrics, 1)
	require.NoError(t, err)
	require.Equal(t, "200", row["ThermalData"])
	require.Equal(t, "20", row["NotSpecifiedData"])
}

func TestAlignedTruncatedFeed(t *testing.T) {
	metrics := map[string][]string{
		"ThermalData": {"100", "200"},
		"WindData":    {"50"},
	}

	_, err := Aligned(metrics, 1)
	require.Error(t, err)

	var misaligned *MisalignedFeedError
	require.True(t, errors.As(err, &misaligned))
	require.Equal(t, "WindData", misaligned.Metric)
	require.Equal(t, 1, misaligned.Length)
	require.Equal(t, 1, misaligned.Column)
}
