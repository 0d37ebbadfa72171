package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveFollowsTimeWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Campaign{
		StartTime: base.Add(1 * time.Hour),
		EndTime:   base.Add(2 * time.Hour),
		Status:    StatusUpcoming,
	}

	require.Equal(t, StatusUpcoming, Resolve(c, base))
	require.Equal(t, StatusActive, Resolve(c, base.Add(90*time.Minute)))
	require.Equal(t, StatusEnded, Resolve(c, base.Add(3*time.Hour)))
}

func TestResolveWindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	c := Campaign{StartTime: start, EndTime: end, Status: StatusUpcoming}

	require.Equal(t, StatusActive, Resolve(c, start))
	require.Equal(t, StatusActive, Resolve(c, end))
	require.Equal(t, StatusUpcoming, Resolve(c, start.Add(-time.Nanosecond)))
	require.Equal(t, StatusEnded, Resolve(c, end.Add(time.Nanosecond)))
}

func TestResolveCancelledIsAbsorbing(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := Campaign{StartTime: start, EndTime: start.Add(time.Hour), Status: StatusCancelled}

	for _, now := range []time.Time{
		start.Add(-time.Hour),
		start.Add(30 * time.Minute),
		start.Add(24 * time.Hour),
	} {
		require.Equal(t, StatusCancelled, Resolve(c, now))
	}
}

// TestResolveTotality sweeps a window with many instants and persisted
// statuses: the result is always one of the four canonical statuses.
func TestResolveTotality(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	for _, persisted := range []Status{StatusUpcoming, StatusActive, StatusEnded, StatusCancelled} {
		c := Campaign{StartTime: start, EndTime: end, Status: persisted}
		for offset := -72 * time.Hour; offset <= 120*time.Hour; offset += 7 * time.Hour {
			got := Resolve(c, start.Add(offset))
			require.True(t, got.Valid(), "persisted=%s offset=%s got=%q", persisted, offset, got)
			if persisted == StatusCancelled {
				require.Equal(t, StatusCancelled, got)
			}
		}
	}
}

func TestStatusValid(t *testing.T) {
	require.True(t, StatusUpcoming.Valid())
	require.True(t, StatusActive.Valid())
	require.True(t, StatusEnded.Valid())
	require.True(t, StatusCancelled.Valid())
	require.False(t, Status("PAUSED").Valid())
	require.False(t, Status("").Valid())

	require.True(t, StatusCancelled.Terminal())
	require.False(t, StatusEnded.Terminal())
}

func TestLineItemRemaining(t *testing.T) {
	require.Equal(t, 7, LineItem{StockQuantity: 10, SoldQuantity: 3}.Remaining())
	require.Equal(t, 0, LineItem{StockQuantity: 10, SoldQuantity: 10}.Remaining())
	require.Equal(t, 0, LineItem{StockQuantity: 10, SoldQuantity: 12}.Remaining())
}
