package arrivals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickcwilkins/gtfsrt-arrivals/internal/testutil"
)

func buildQuerySnapshot(t *testing.T) *Snapshot {
	t.Helper()
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "",
			testutil.StopArrival("S1", epoch(5*time.Minute))),
		testutil.TripUpdate("2", "42", 1, "T2", "",
			testutil.StopArrival("S1", epoch(time.Minute))),
		testutil.TripUpdate("3", "77", 0, "T3", "",
			testutil.StopArrival("S1", epoch(3*time.Minute)),
			testutil.StopArrival("S2", epoch(8*time.Minute))),
	)
	return BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)
}

func TestNextArrivals_UnknownRouteReturnsEmpty(t *testing.T) {
	snap := buildQuerySnapshot(t)
	assert.Empty(t, snap.NextArrivals("S1", "999", nil))
}

func TestNextArrivals_RouteOmittedConsidersAllRoutes(t *testing.T) {
	snap := buildQuerySnapshot(t)

	got := snap.NextArrivals("S1", "", nil)
	require.Len(t, got, 3)
	// Re-sorted ascending across route and direction buckets.
	assert.Equal(t, baseTime.Add(time.Minute), got[0].Time)
	assert.Equal(t, baseTime.Add(3*time.Minute), got[1].Time)
	assert.Equal(t, baseTime.Add(5*time.Minute), got[2].Time)
}

func TestNextArrivals_DirectionZeroMatchesOnlyItsBucket(t *testing.T) {
	snap := buildQuerySnapshot(t)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 1)
	assert.Equal(t, baseTime.Add(5*time.Minute), got[0].Time)
}

func TestNextArrivals_NilDirectionIsWildcard(t *testing.T) {
	snap := buildQuerySnapshot(t)

	got := snap.NextArrivals("S1", "42", nil)
	assert.Len(t, got, 2)
}

func TestNextArrivals_MissingStopSkippedSilently(t *testing.T) {
	snap := buildQuerySnapshot(t)

	// S2 exists only on route 77; route 42 buckets contribute nothing.
	got := snap.NextArrivals("S2", "", nil)
	require.Len(t, got, 1)
	assert.Equal(t, baseTime.Add(8*time.Minute), got[0].Time)

	assert.Empty(t, snap.NextArrivals("NOWHERE", "", nil))
}
