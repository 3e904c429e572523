// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// The package supports multiple GTFS-RT sources and departure-board bindings
// that reference sources by name.
package config
