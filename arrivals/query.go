package arrivals

import "sort"

// NextArrivals returns the upcoming arrivals at stopID, optionally filtered
// by route and direction, sorted ascending by arrival time.
//
// A routeID that is absent from the snapshot yields an empty result, not an
// error. A nil directionID matches all directions; direction 0 is a valid
// GTFS value and only matches buckets keyed 0. Stops missing from a
// contributing bucket are skipped silently, since stop sets vary per trip.
func (s *Snapshot) NextArrivals(stopID string, routeID string, directionID *uint32) []Arrival {
	var out []Arrival

	routes := s.routes
	if routeID != "" {
		dirs, ok := s.routes[routeID]
		if !ok {
			return out
		}
		routes = map[string]map[uint32]map[string][]Arrival{routeID: dirs}
	}

	for _, dirs := range routes {
		for dir, byStop := range dirs {
			if directionID != nil && *directionID != dir {
				continue
			}
			out = append(out, byStop[stopID]...)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
