package arrivals

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// VehiclePosition is the reported location of one vehicle.
type VehiclePosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Bearing   float64 `json:"bearing"`
	Speed     float64 `json:"speed"`
}

// VehicleIndex holds the lookup tables derived from the vehicle-position
// entities of one merged feed. It is rebuilt from scratch every refresh
// cycle.
type VehicleIndex struct {
	// PositionByVehicle maps vehicle_id -> last reported position.
	PositionByVehicle map[string]VehiclePosition
	// OccupancyByVehicle maps vehicle_id -> occupancy status enum value.
	OccupancyByVehicle map[string]int32
	// VehicleByTrip maps trip_id -> vehicle_id, used when a trip update
	// omits its vehicle descriptor.
	VehicleByTrip map[string]string
}

// BuildVehicleIndex derives the vehicle lookup tables from the merged feed.
// Entities whose trip has no route_id are out of service and excluded. When
// several entities report the same vehicle_id the later one wins.
func BuildVehicleIndex(feed *gtfsrtpb.FeedMessage) *VehicleIndex {
	idx := &VehicleIndex{
		PositionByVehicle:  map[string]VehiclePosition{},
		OccupancyByVehicle: map[string]int32{},
		VehicleByTrip:      map[string]string{},
	}
	if feed == nil {
		return idx
	}
	for _, e := range feed.Entity {
		v := e.Vehicle
		if v == nil {
			continue
		}
		if v.Trip == nil || v.Trip.RouteId == nil || *v.Trip.RouteId == "" {
			// Vehicle is not in service
			continue
		}
		var vehicleID string
		if v.Vehicle != nil && v.Vehicle.Id != nil {
			vehicleID = *v.Vehicle.Id
		}
		var pos VehiclePosition
		if v.Position != nil {
			if v.Position.Latitude != nil {
				pos.Latitude = float64(*v.Position.Latitude)
			}
			if v.Position.Longitude != nil {
				pos.Longitude = float64(*v.Position.Longitude)
			}
			if v.Position.Bearing != nil {
				pos.Bearing = float64(*v.Position.Bearing)
			}
			if v.Position.Speed != nil {
				pos.Speed = float64(*v.Position.Speed)
			}
		}
		idx.PositionByVehicle[vehicleID] = pos
		idx.OccupancyByVehicle[vehicleID] = int32(v.GetOccupancyStatus())
		if v.Trip.TripId != nil {
			idx.VehicleByTrip[*v.Trip.TripId] = vehicleID
		}
	}
	return idx
}
