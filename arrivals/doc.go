// Package arrivals turns a merged GTFS-Realtime feed into a queryable
// arrival index.
//
// Each refresh cycle builds three derived structures from the merged feed:
//   - VehicleIndex: vehicle position/occupancy lookups plus the
//     trip_id -> vehicle_id link used when trip updates omit a vehicle
//   - Snapshot: route -> direction -> stop -> time-ordered arrivals,
//     restricted to times still in the future at build time
//   - AlertIndex: service alerts indexed by informed route, stop and trip
//
// All three are immutable after construction; the owning source swaps them
// atomically when the next cycle completes.
package arrivals
