package chrono

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLocal(t *testing.T) {
	mountain := MustLoad("Canada/Mountain")

	at, err := ParseLocal("Apr 21, 2017 13:22", "Jan 2, 2006 15:04", mountain)
	require.NoError(t, err)

	require.Equal(t, 2017, at.Year())
	require.Equal(t, time.April, at.Month())
	require.Equal(t, 21, at.Day())
	require.Equal(t, 13, at.Hour())
	require.Equal(t, 22, at.Minute())
	require.Equal(t, mountain.String(), at.Location().String())

	// MDT is UTC-6 in April
	require.Equal(t, time.Date(2017, 4, 21, 19, 22, 0, 0, time.UTC), at.UTC())
}

func TestParseLocalMismatch(t *testing.T) {
	_, err := ParseLocal("21/04/2017", "Jan 2, 2006 15:04", time.UTC)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, "21/04/2017", parseErr.Text)
	require.Equal(t, "Jan 2, 2006 15:04", parseErr.Layout)
}

func TestHourBucket(t *testing.T) {
	stockholm := MustLoad("Europe/Stockholm")
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, stockholm)

	testCases := []struct {
		hourIndex int
		expected  time.Time
	}{
		{hourIndex: 1, expected: time.Date(2021, 1, 1, 0, 0, 0, 0, stockholm)},
		{hourIndex: 2, expected: time.Date(2021, 1, 1, 1, 0, 0, 0, stockholm)},
		{hourIndex: 24, expected: time.Date(2021, 1, 1, 23, 0, 0, 0, stockholm)},
	}

	for _, test := range testCases {
		at, err := HourBucket(date, test.hourIndex, stockholm)
		require.NoError(t, err)
		require.True(t, at.Equal(test.expected), "hour %d", test.hourIndex)
	}
}

func TestHourBucketRange(t *testing.T) {
	date := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, hourIndex := range []int{0, -1, 25} {
		_, err := HourBucket(date, hourIndex, time.UTC)
		require.Error(t, err, "hour %d", hourIndex)
	}
}
