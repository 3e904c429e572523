package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"omitempty,gt=0"`
}

// SourceConfig describes one upstream GTFS-Realtime publisher. Trip updates
// are required; vehicle positions and service alerts are optional feeds.
type SourceConfig struct {
	Name                string            `yaml:"name" validate:"required"`
	Headers             map[string]string `yaml:"headers"`
	TripUpdatesURL      string            `yaml:"tripUpdatesURL" validate:"required,http_url"`
	VehiclePositionsURL string            `yaml:"vehiclePositionsURL" validate:"omitempty,http_url"`
	ServiceAlertsURL    string            `yaml:"serviceAlertsURL" validate:"omitempty,http_url"`
	StaticURL           string            `yaml:"staticURL" validate:"omitempty,http_url"`
	RefreshIntervalSec  int               `yaml:"refreshIntervalSec" validate:"gte=0"`
	TimeoutSec          int               `yaml:"timeoutSec" validate:"gte=0"`
}

// DepartureConfig binds a named departure board to a stop on a source,
// optionally narrowed to a route and direction.
type DepartureConfig struct {
	Name        string  `yaml:"name"`
	Source      string  `yaml:"source" validate:"required"`
	StopID      string  `yaml:"stopID" validate:"required"`
	RouteID     string  `yaml:"routeID"`
	DirectionID *uint32 `yaml:"directionID"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig      `yaml:"server"`
	SentryDSN  string            `yaml:"sentryDSN"`
	Sources    []SourceConfig    `yaml:"sources" validate:"required,min=1"`
	Departures []DepartureConfig `yaml:"departures"`
}

// Source returns the source configuration with the given name.
func (c *AppConfig) Source(name string) (SourceConfig, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceConfig{}, false
}
