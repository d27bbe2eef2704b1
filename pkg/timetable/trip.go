package timetable

import "time"

// TripSearchResponse is the body of GET /api/timetable/v2/trips.
// Trips are kept in the order the server returned them.
type TripSearchResponse struct {
	Trips []Trip `json:"trips"`

	EarlierPagingCursor string `json:"earlierPagingCursor,omitempty"`
	LaterPagingCursor   string `json:"laterPagingCursor,omitempty"`
}

type Trip struct {
	Meta    TripMeta    `json:"meta"`
	Summary TripSummary `json:"summary"`

	// Detail is missing for some trips, Summary is always there to fall back on
	Detail *TripDetail `json:"detail,omitempty"`
}

// Transfers is the number of public transport legs minus one.
// Trips without detail are counted as a single ride.
func (t *Trip) Transfers() int {
	rides := 1
	if t.Detail != nil {
		rides = len(t.Detail.PtRideLegs())
	}

	if rides == 0 {
		return 0
	}

	return rides - 1
}

type TripMeta struct {
	ID          string `json:"id"`
	NextRefresh *int64 `json:"nextRefresh,omitempty"`
}

// NextRefreshTime converts the epoch millisecond refresh hint.
func (m *TripMeta) NextRefreshTime() (time.Time, bool) {
	if m.NextRefresh == nil {
		return time.Time{}, false
	}

	return time.UnixMilli(*m.NextRefresh), true
}

type TripSummary struct {
	Duration *TripDuration `json:"duration,omitempty"`

	OccupancyFirstClassMax  Occupancy `json:"occupancyFirstClassMax,omitempty"`
	OccupancySecondClassMax Occupancy `json:"occupancySecondClassMax,omitempty"`

	DepartureDisplayName string `json:"departureDisplayName,omitempty"`
	ArrivalDisplayName   string `json:"arrivalDisplayName,omitempty"`

	DepartureAnchor DepartureAnchor `json:"departureAnchor"`
	ArrivalAnchor   ArrivalAnchor   `json:"arrivalAnchor"`
}

type TripDuration struct {
	LocalizedLabel    string `json:"localizedLabel"`
	DurationInMinutes int    `json:"durationInMinutes"`
}

// Duration prefers the structured minute count and falls back to parsing the label.
func (d *TripDuration) Duration() time.Duration {
	if d == nil {
		return 0
	}
	if d.DurationInMinutes > 0 {
		return time.Duration(d.DurationInMinutes) * time.Minute
	}

	return LegDuration(d.LocalizedLabel)
}

type DepartureAnchor struct {
	PlaceName    string `json:"placeName"`
	TimeAimed    string `json:"timeAimed,omitempty"`
	TimeExpected string `json:"timeExpected,omitempty"`
	DisplayTime  string `json:"displayTime"`
	DisplayDate  string `json:"displayDate"`
	Quay         *Quay  `json:"quay,omitempty"`

	Direction            string                `json:"direction,omitempty"`
	TransportDesignation *TransportDesignation `json:"transportDesignation,omitempty"`
}

func (a *DepartureAnchor) Delay() (int, bool) {
	return DelayMinutes(a.TimeAimed, a.TimeExpected)
}

type ArrivalAnchor struct {
	PlaceName    string `json:"placeName"`
	TimeAimed    string `json:"timeAimed,omitempty"`
	TimeExpected string `json:"timeExpected,omitempty"`
	DisplayTime  string `json:"displayTime"`
	DisplayDate  string `json:"displayDate"`
	Quay         *Quay  `json:"quay,omitempty"`
}

func (a *ArrivalAnchor) Delay() (int, bool) {
	return DelayMinutes(a.TimeAimed, a.TimeExpected)
}

// Quay is a platform or track. Changed marks a short notice platform change.
type Quay struct {
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
}

// Present reports whether there is a platform name worth displaying.
func (q *Quay) Present() bool {
	return q != nil && q.Name != ""
}
