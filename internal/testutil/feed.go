// Package testutil builds GTFS-RT feed fixtures in memory for tests.
package testutil

import (
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Feed wraps entities in a FeedMessage with a minimal valid header.
func Feed(entities ...*gtfsrtpb.FeedEntity) *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfsrtpb.FeedHeader_FULL_DATASET.Enum(),
		},
		Entity: entities,
	}
}

// Marshal serializes a feed, failing the test on error.
func Marshal(t *testing.T, fm *gtfsrtpb.FeedMessage) []byte {
	t.Helper()
	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	return b
}

// TripUpdate builds a trip-update entity. vehicleID may be empty to model
// trip updates without a vehicle descriptor.
func TripUpdate(id, routeID string, directionID uint32, tripID, vehicleID string, stus ...*gtfsrtpb.TripUpdate_StopTimeUpdate) *gtfsrtpb.FeedEntity {
	tu := &gtfsrtpb.TripUpdate{
		Trip: &gtfsrtpb.TripDescriptor{
			TripId:      proto.String(tripID),
			RouteId:     proto.String(routeID),
			DirectionId: proto.Uint32(directionID),
		},
		StopTimeUpdate: stus,
	}
	if vehicleID != "" {
		tu.Vehicle = &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicleID)}
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), TripUpdate: tu}
}

// StopArrival builds a stop-time update with only an arrival prediction.
func StopArrival(stopID string, arrival int64) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	return &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:  proto.String(stopID),
		Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(arrival)},
	}
}

// StopDeparture builds a stop-time update with only a departure prediction.
func StopDeparture(stopID string, departure int64) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	return &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:    proto.String(stopID),
		Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(departure)},
	}
}

// StopTimes builds a stop-time update carrying both predictions. A zero
// arrival models the field being set but empty upstream.
func StopTimes(stopID string, arrival, departure int64) *gtfsrtpb.TripUpdate_StopTimeUpdate {
	return &gtfsrtpb.TripUpdate_StopTimeUpdate{
		StopId:    proto.String(stopID),
		Arrival:   &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(arrival)},
		Departure: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(departure)},
	}
}

// Vehicle builds a vehicle-position entity. An empty routeID models a
// vehicle that is out of service.
func Vehicle(id, vehicleID, tripID, routeID string, lat, lon float32, occupancy gtfsrtpb.VehiclePosition_OccupancyStatus) *gtfsrtpb.FeedEntity {
	vp := &gtfsrtpb.VehiclePosition{
		Trip: &gtfsrtpb.TripDescriptor{
			TripId:  proto.String(tripID),
			RouteId: proto.String(routeID),
		},
		Vehicle: &gtfsrtpb.VehicleDescriptor{Id: proto.String(vehicleID)},
		Position: &gtfsrtpb.Position{
			Latitude:  proto.Float32(lat),
			Longitude: proto.Float32(lon),
		},
		OccupancyStatus: occupancy.Enum(),
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Vehicle: vp}
}

// Alert builds an alert entity informing the given routes and stops.
func Alert(id, header string, routeIDs, stopIDs []string) *gtfsrtpb.FeedEntity {
	a := &gtfsrtpb.Alert{
		HeaderText: &gtfsrtpb.TranslatedString{
			Translation: []*gtfsrtpb.TranslatedString_Translation{
				{Text: proto.String(header)},
			},
		},
	}
	for _, rid := range routeIDs {
		a.InformedEntity = append(a.InformedEntity, &gtfsrtpb.EntitySelector{RouteId: proto.String(rid)})
	}
	for _, sid := range stopIDs {
		a.InformedEntity = append(a.InformedEntity, &gtfsrtpb.EntitySelector{StopId: proto.String(sid)})
	}
	return &gtfsrtpb.FeedEntity{Id: proto.String(id), Alert: a}
}
