package arrivals

import (
	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// Alert is a simplified representation of a GTFS-RT service alert.
type Alert struct {
	ID          string   `json:"id"`
	Header      string   `json:"header"`
	Description string   `json:"description,omitempty"`
	Cause       string   `json:"cause,omitempty"`
	Effect      string   `json:"effect,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Start       int64    `json:"start,omitempty"`
	End         int64    `json:"end,omitempty"`
	RouteIDs    []string `json:"routeIDs,omitempty"`
	StopIDs     []string `json:"stopIDs,omitempty"`
	TripIDs     []string `json:"tripIDs,omitempty"`
}

// AlertIndex holds the alerts of one merged feed together with indices into
// the alert list by informed route, stop and trip.
type AlertIndex struct {
	alerts  []Alert
	byRoute map[string][]int
	byStop  map[string][]int
	byTrip  map[string][]int
}

// BuildAlertIndex extracts and indexes the alert entities of the merged feed.
func BuildAlertIndex(feed *gtfsrtpb.FeedMessage) *AlertIndex {
	idx := &AlertIndex{
		byRoute: map[string][]int{},
		byStop:  map[string][]int{},
		byTrip:  map[string][]int{},
	}
	if feed == nil {
		return idx
	}
	for _, e := range feed.Entity {
		a := e.Alert
		if a == nil {
			continue
		}
		al := Alert{}
		if e.Id != nil {
			al.ID = *e.Id
		}
		al.Header = translatedText(a.HeaderText)
		al.Description = translatedText(a.DescriptionText)
		if a.Cause != nil {
			al.Cause = a.Cause.String()
		}
		if a.Effect != nil {
			al.Effect = a.Effect.String()
		}
		if a.SeverityLevel != nil {
			al.Severity = a.SeverityLevel.String()
		}
		// ActivePeriod: keep the first window.
		if len(a.ActivePeriod) > 0 {
			if ap := a.ActivePeriod[0]; ap != nil {
				if ap.Start != nil {
					al.Start = int64(*ap.Start)
				}
				if ap.End != nil {
					al.End = int64(*ap.End)
				}
			}
		}
		for _, ie := range a.InformedEntity {
			if ie.RouteId != nil {
				al.RouteIDs = append(al.RouteIDs, *ie.RouteId)
			}
			if ie.StopId != nil {
				al.StopIDs = append(al.StopIDs, *ie.StopId)
			}
			if ie.Trip != nil && ie.Trip.TripId != nil {
				al.TripIDs = append(al.TripIDs, *ie.Trip.TripId)
			}
		}

		i := len(idx.alerts)
		idx.alerts = append(idx.alerts, al)
		for _, rid := range al.RouteIDs {
			idx.byRoute[rid] = append(idx.byRoute[rid], i)
		}
		for _, sid := range al.StopIDs {
			idx.byStop[sid] = append(idx.byStop[sid], i)
		}
		for _, tid := range al.TripIDs {
			idx.byTrip[tid] = append(idx.byTrip[tid], i)
		}
	}
	return idx
}

// All returns every alert in feed order.
func (x *AlertIndex) All() []Alert { return x.alerts }

// ForRoute returns the alerts that inform the given route.
func (x *AlertIndex) ForRoute(routeID string) []Alert { return x.pick(x.byRoute[routeID]) }

// ForStop returns the alerts that inform the given stop.
func (x *AlertIndex) ForStop(stopID string) []Alert { return x.pick(x.byStop[stopID]) }

// ForTrip returns the alerts that inform the given trip.
func (x *AlertIndex) ForTrip(tripID string) []Alert { return x.pick(x.byTrip[tripID]) }

func (x *AlertIndex) pick(indices []int) []Alert {
	if len(indices) == 0 {
		return nil
	}
	out := make([]Alert, 0, len(indices))
	for _, i := range indices {
		out = append(out, x.alerts[i])
	}
	return out
}

// translatedText extracts best-effort text from a GTFS-RT TranslatedString,
// preferring a translation without a language tag.
func translatedText(ts *gtfsrtpb.TranslatedString) string {
	if ts == nil {
		return ""
	}
	var first string
	for _, tr := range ts.Translation {
		if tr.Text == nil {
			continue
		}
		if tr.Language == nil || *tr.Language == "" {
			return *tr.Text
		}
		if first == "" {
			first = *tr.Text
		}
	}
	return first
}
