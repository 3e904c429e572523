// Package gtfsrt handles fetching and decoding GTFS-Realtime protobuf feeds.
//
// It supports three feed types:
//   - Trip Updates: real-time arrival/departure predictions (required)
//   - Vehicle Positions: current vehicle locations (optional)
//   - Service Alerts: disruptions and service changes (optional)
//
// The three endpoints are fetched concurrently and merged into a single
// FeedMessage by entity-list concatenation.
package gtfsrt
