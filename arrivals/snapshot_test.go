package arrivals

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nickcwilkins/gtfsrt-arrivals/internal/testutil"
)

var baseTime = time.Unix(1_700_000_000, 0)

func fixedNow() time.Time { return baseTime }

func epoch(offset time.Duration) int64 { return baseTime.Add(offset).Unix() }

func direction(d uint32) *uint32 { return &d }

func TestBuildSnapshot_LinksVehicleThroughTrip(t *testing.T) {
	// The trip update has no vehicle id of its own; the position must come
	// from the vehicle-position entity sharing its trip_id.
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "",
			testutil.StopArrival("S1", epoch(2*time.Minute))),
		testutil.Vehicle("2", "V1", "T1", "42", 1.0, 2.0, gtfsrtpb.VehiclePosition_MANY_SEATS_AVAILABLE),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 1)
	assert.Equal(t, "S1", got[0].Destination)
	require.NotNil(t, got[0].Position)
	assert.Equal(t, VehiclePosition{Latitude: 1.0, Longitude: 2.0}, *got[0].Position)
	require.NotNil(t, got[0].Occupancy)
	assert.Equal(t, int32(gtfsrtpb.VehiclePosition_MANY_SEATS_AVAILABLE), *got[0].Occupancy)
}

func TestBuildSnapshot_DiscardsPastArrivals(t *testing.T) {
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "V1",
			testutil.StopArrival("S1", epoch(-time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	assert.Empty(t, snap.NextArrivals("S1", "42", direction(0)))
}

func TestBuildSnapshot_SortsAscendingByArrival(t *testing.T) {
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "",
			testutil.StopArrival("S1", epoch(5*time.Minute))),
		testutil.TripUpdate("2", "42", 0, "T2", "",
			testutil.StopArrival("S1", epoch(time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 2)
	assert.Equal(t, baseTime.Add(time.Minute), got[0].Time)
	assert.Equal(t, baseTime.Add(5*time.Minute), got[1].Time)
}

func TestBuildSnapshot_ZeroArrivalFallsThroughToDeparture(t *testing.T) {
	// An arrival event whose time is zero is treated as unset upstream;
	// the departure prediction is used instead.
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "",
			testutil.StopTimes("S1", 0, epoch(3*time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 1)
	assert.Equal(t, baseTime.Add(3*time.Minute), got[0].Time)
}

func TestBuildSnapshot_ArrivalTakesPriorityOverDeparture(t *testing.T) {
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "",
			testutil.StopTimes("S1", epoch(2*time.Minute), epoch(4*time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 1)
	assert.Equal(t, baseTime.Add(2*time.Minute), got[0].Time)
}

func TestBuildSnapshot_DestinationIsLastStop(t *testing.T) {
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 1, "T1", "",
			testutil.StopArrival("S1", epoch(time.Minute)),
			testutil.StopArrival("S2", epoch(2*time.Minute)),
			testutil.StopArrival("S3", epoch(3*time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(1))
	require.Len(t, got, 1)
	assert.Equal(t, "S3", got[0].Destination)
}

func TestBuildSnapshot_EmptyTripStillEstablishesRouteKey(t *testing.T) {
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", ""),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	assert.True(t, snap.HasRoute("42"))
	assert.Zero(t, snap.TotalArrivals())
}

func TestBuildSnapshot_IgnoresUnlinkedVehicles(t *testing.T) {
	// A trip update with an unknown vehicle id still yields a record, just
	// without position or occupancy: lookup misses are not errors.
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "GHOST",
			testutil.StopArrival("S1", epoch(time.Minute))),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	got := snap.NextArrivals("S1", "42", direction(0))
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Position)
	assert.Nil(t, got[0].Occupancy)
}

func TestBuildSnapshot_StopTimeWithoutPredictions(t *testing.T) {
	stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{}
	feed := testutil.Feed(
		testutil.TripUpdate("1", "42", 0, "T1", "", stu),
	)

	snap := BuildSnapshot(feed, BuildVehicleIndex(feed), fixedNow)

	assert.Zero(t, snap.TotalArrivals())
}
