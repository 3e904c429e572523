package arrivals

import (
	"sort"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Arrival is one predicted arrival of a vehicle at a stop. Records are
// immutable once created and only carry times that were in the future when
// the snapshot was built.
type Arrival struct {
	Time        time.Time        `json:"arrivalTime"`
	Destination string           `json:"destination"`
	Position    *VehiclePosition `json:"position,omitempty"`
	Occupancy   *int32           `json:"occupancy,omitempty"`
}

// Snapshot is the complete arrival index produced by one refresh cycle:
// route_id -> direction_id -> stop_id -> arrivals sorted ascending by time.
// It is never mutated after BuildSnapshot returns; a refresh replaces it
// wholesale.
type Snapshot struct {
	routes  map[string]map[uint32]map[string][]Arrival
	builtAt time.Time
}

// BuildSnapshot projects the trip-update entities of the merged feed into an
// arrival index, linking vehicle data through idx. The now func is read once
// per stop-time evaluation so the future-only filter always compares against
// the current wall clock.
func BuildSnapshot(feed *gtfsrtpb.FeedMessage, idx *VehicleIndex, now func() time.Time) *Snapshot {
	if now == nil {
		now = time.Now
	}
	if idx == nil {
		idx = BuildVehicleIndex(nil)
	}
	s := &Snapshot{
		routes:  map[string]map[uint32]map[string][]Arrival{},
		builtAt: now(),
	}
	if feed == nil {
		return s
	}

	for _, e := range feed.Entity {
		tu := e.TripUpdate
		if tu == nil {
			continue
		}
		var routeID, tripID string
		var directionID uint32
		if tu.Trip != nil {
			if tu.Trip.RouteId != nil {
				routeID = *tu.Trip.RouteId
			}
			if tu.Trip.DirectionId != nil {
				directionID = *tu.Trip.DirectionId
			}
			if tu.Trip.TripId != nil {
				tripID = *tu.Trip.TripId
			}
		}
		// Link vehicle through the trip when the update omits its own id.
		var vehicleID string
		if tu.Vehicle != nil && tu.Vehicle.Id != nil {
			vehicleID = *tu.Vehicle.Id
		}
		if vehicleID == "" {
			vehicleID = idx.VehicleByTrip[tripID]
		}

		// A trip with no stop-time updates still establishes its
		// route/direction keys.
		stops := s.routes[routeID]
		if stops == nil {
			stops = map[uint32]map[string][]Arrival{}
			s.routes[routeID] = stops
		}
		byStop := stops[directionID]
		if byStop == nil {
			byStop = map[string][]Arrival{}
			stops[directionID] = byStop
		}

		destination := "Unknown"
		if n := len(tu.StopTimeUpdate); n > 0 {
			if last := tu.StopTimeUpdate[n-1]; last.StopId != nil {
				destination = *last.StopId
			}
		}

		for _, stu := range tu.StopTimeUpdate {
			var stopID string
			if stu.StopId != nil {
				stopID = *stu.StopId
			}
			ts := stopTimestamp(stu)
			if ts == 0 {
				continue
			}
			at := time.Unix(ts, 0)
			// Upstream feeds routinely report arrivals already in the past.
			if !at.After(now()) {
				continue
			}
			rec := Arrival{Time: at, Destination: destination}
			if vehicleID != "" {
				if pos, ok := idx.PositionByVehicle[vehicleID]; ok {
					p := pos
					rec.Position = &p
				}
				if occ, ok := idx.OccupancyByVehicle[vehicleID]; ok {
					o := occ
					rec.Occupancy = &o
				}
			}
			byStop[stopID] = append(byStop[stopID], rec)
		}
	}

	for _, dirs := range s.routes {
		for _, byStop := range dirs {
			for _, list := range byStop {
				sort.Slice(list, func(i, j int) bool { return list[i].Time.Before(list[j].Time) })
			}
		}
	}
	return s
}

// stopTimestamp picks a stop's prediction epoch: the arrival time when set
// and non-zero, else the departure time. Zero means no usable prediction.
func stopTimestamp(stu *gtfsrtpb.TripUpdate_StopTimeUpdate) int64 {
	if stu.Arrival != nil && stu.Arrival.Time != nil && *stu.Arrival.Time != 0 {
		return *stu.Arrival.Time
	}
	if stu.Departure != nil && stu.Departure.Time != nil {
		return *stu.Departure.Time
	}
	return 0
}

// BuiltAt reports when the snapshot was assembled.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// TotalArrivals counts every arrival record held by the snapshot.
func (s *Snapshot) TotalArrivals() int {
	total := 0
	for _, dirs := range s.routes {
		for _, byStop := range dirs {
			for _, list := range byStop {
				total += len(list)
			}
		}
	}
	return total
}

// HasRoute reports whether the snapshot carries the given route, including
// routes established by trips with no usable stop times.
func (s *Snapshot) HasRoute(routeID string) bool {
	_, ok := s.routes[routeID]
	return ok
}
