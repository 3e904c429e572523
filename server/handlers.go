package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/nickcwilkins/gtfsrt-arrivals/arrivals"
)

type arrivalEntry struct {
	ArrivalTime  string                    `json:"arrivalTime"`
	DueInMinutes int                       `json:"dueInMinutes"`
	Destination  string                    `json:"destination"`
	Position     *arrivals.VehiclePosition `json:"position,omitempty"`
	Occupancy    *int32                    `json:"occupancy,omitempty"`
}

type arrivalsResponse struct {
	Source      string         `json:"source"`
	StopID      string         `json:"stopID"`
	RouteID     string         `json:"routeID,omitempty"`
	DirectionID *uint32        `json:"directionID,omitempty"`
	Arrivals    []arrivalEntry `json:"arrivals"`
}

type alertsResponse struct {
	Source string           `json:"source"`
	Alerts []arrivals.Alert `json:"alerts"`
}

type departureEntry struct {
	Name         string  `json:"name"`
	Source       string  `json:"source"`
	StopID       string  `json:"stopID"`
	RouteID      string  `json:"routeID,omitempty"`
	DirectionID  *uint32 `json:"directionID,omitempty"`
	DueInMinutes *int    `json:"dueInMinutes,omitempty"`
	DueAt        string  `json:"dueAt,omitempty"`
	NextArrivals []int   `json:"nextArrivals"`
}

type sourceHealth struct {
	LastRefresh string `json:"lastRefresh,omitempty"`
	LastError   string `json:"lastError,omitempty"`
	HasSnapshot bool   `json:"hasSnapshot"`
}

type healthResponse struct {
	Status  string                  `json:"status"`
	Sources map[string]sourceHealth `json:"sources"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Sources: map[string]sourceHealth{}}
	for _, name := range s.registry.Names() {
		src, _ := s.registry.Get(name)
		lastRefresh, lastErr := src.Status()
		h := sourceHealth{HasSnapshot: src.Snapshot() != nil}
		if !lastRefresh.IsZero() {
			h.LastRefresh = lastRefresh.Format(time.RFC3339)
		}
		if lastErr != nil {
			h.LastError = lastErr.Error()
			resp.Status = "degraded"
		}
		resp.Sources[name] = h
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArrivals(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	src, ok := s.registry.Get(ps.ByName("source"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such source"})
		return
	}
	params, err := parseArrivalParams(singleValues(r))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	snap := src.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no data yet"})
		return
	}

	cache := s.caches[src.Name()]
	gen := src.Generation()
	key := memoKey("arrivals", params.StopID, params.RouteID, directionKey(params.DirectionID))
	list, ok := cache.get(gen, key)
	if !ok {
		list = snap.NextArrivals(params.StopID, params.RouteID, params.DirectionID)
		cache.put(gen, key, list)
	}

	resp := arrivalsResponse{
		Source:      src.Name(),
		StopID:      params.StopID,
		RouteID:     params.RouteID,
		DirectionID: params.DirectionID,
		Arrivals:    []arrivalEntry{},
	}
	// The selection is stable for a snapshot generation; the minutes are
	// not, so they are computed against the clock on every request.
	now := s.now()
	for _, a := range list {
		resp.Arrivals = append(resp.Arrivals, arrivalEntry{
			ArrivalTime:  a.Time.Format(time.RFC3339),
			DueInMinutes: dueInMinutes(a.Time, now),
			Destination:  a.Destination,
			Position:     a.Position,
			Occupancy:    a.Occupancy,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	src, ok := s.registry.Get(ps.ByName("source"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such source"})
		return
	}
	idx := src.Alerts()
	if idx == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "no data yet"})
		return
	}
	query := singleValues(r)
	resp := alertsResponse{Source: src.Name()}
	switch {
	case query["stop"] != "":
		resp.Alerts = idx.ForStop(query["stop"])
	case query["route"] != "":
		resp.Alerts = idx.ForRoute(query["route"])
	default:
		resp.Alerts = idx.All()
	}
	if resp.Alerts == nil {
		resp.Alerts = []arrivals.Alert{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDepartures evaluates the configured departure bindings against the
// current snapshots. A binding whose source has no data yet simply reports
// no arrivals.
func (s *Server) handleDepartures(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	out := make([]departureEntry, 0, len(s.cfg.Departures))
	for _, d := range s.cfg.Departures {
		entry := departureEntry{
			Name:         d.Name,
			Source:       d.Source,
			StopID:       d.StopID,
			RouteID:      d.RouteID,
			DirectionID:  d.DirectionID,
			NextArrivals: []int{},
		}
		src, ok := s.registry.Get(d.Source)
		if ok {
			if snap := src.Snapshot(); snap != nil {
				list := snap.NextArrivals(d.StopID, d.RouteID, d.DirectionID)
				for _, a := range list {
					entry.NextArrivals = append(entry.NextArrivals, dueInMinutes(a.Time, now))
				}
				if len(list) > 0 {
					due := dueInMinutes(list[0].Time, now)
					entry.DueInMinutes = &due
					entry.DueAt = list[0].Time.Format(time.RFC3339)
				}
			}
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

// dueInMinutes is floor((t - now) / 60s); a presentation concern kept at the
// HTTP edge.
func dueInMinutes(t, now time.Time) int {
	return int(t.Sub(now) / time.Minute)
}

func directionKey(d *uint32) string {
	if d == nil {
		return ""
	}
	if *d == 0 {
		return "0"
	}
	return "1"
}

func singleValues(r *http.Request) map[string]string {
	params := map[string]string{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
