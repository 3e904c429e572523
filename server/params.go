package server

import (
	"strings"
)

// QueryError is a client-side query validation failure mapped to HTTP 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

type arrivalParams struct {
	StopID      string
	RouteID     string
	DirectionID *uint32
}

// parseArrivalParams validates the arrivals query string. The stop is
// required; direction, when present, must be 0 or 1; an absent direction
// means all directions.
func parseArrivalParams(query map[string]string) (arrivalParams, error) {
	p := arrivalParams{
		StopID:  strings.TrimSpace(query["stop"]),
		RouteID: strings.TrimSpace(query["route"]),
	}
	if p.StopID == "" {
		return p, &QueryError{Msg: "You must provide a stop."}
	}
	dir, err := parseDirection(query["direction"])
	if err != nil {
		return p, err
	}
	p.DirectionID = dir
	return p, nil
}

func parseDirection(s string) (*uint32, error) {
	switch strings.TrimSpace(s) {
	case "":
		return nil, nil
	case "0":
		d := uint32(0)
		return &d, nil
	case "1":
		d := uint32(1)
		return &d, nil
	}
	return nil, &QueryError{Msg: "direction must be either 0 or 1."}
}
