package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/liip/sheriff"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/sbb/pkg/timetable"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type searchView struct {
	Trips         []tripView `json:"trips" groups:"basic,detailed"`
	EarlierCursor string     `json:"earlierCursor,omitempty" groups:"basic,detailed"`
	LaterCursor   string     `json:"laterCursor,omitempty" groups:"basic,detailed"`
}

type tripView struct {
	ID        string     `json:"id" groups:"basic,detailed"`
	Transport string     `json:"transport,omitempty" groups:"basic,detailed"`
	Direction string     `json:"direction,omitempty" groups:"basic,detailed"`
	Departure anchorView `json:"departure" groups:"basic,detailed"`
	Arrival   anchorView `json:"arrival" groups:"basic,detailed"`
	Duration  string     `json:"duration,omitempty" groups:"basic,detailed"`
	Transfers int        `json:"transfers" groups:"basic,detailed"`

	DurationLabel        string     `json:"durationLabel,omitempty" groups:"detailed"`
	OccupancyFirstClass  string     `json:"occupancyFirstClass,omitempty" groups:"detailed"`
	OccupancySecondClass string     `json:"occupancySecondClass,omitempty" groups:"detailed"`
	NextRefresh          *time.Time `json:"nextRefresh,omitempty" groups:"detailed"`
	Legs                 []legView  `json:"legs,omitempty" groups:"detailed"`
}

type anchorView struct {
	Place           string `json:"place" groups:"basic,detailed"`
	Time            string `json:"time,omitempty" groups:"basic,detailed"`
	Date            string `json:"date,omitempty" groups:"basic,detailed"`
	Platform        string `json:"platform,omitempty" groups:"basic,detailed"`
	PlatformChanged bool   `json:"platformChanged,omitempty" groups:"detailed"`
	Delay           int    `json:"delay,omitempty" groups:"basic,detailed"`
}

type legView struct {
	Type      string     `json:"type" groups:"detailed"`
	Transport string     `json:"transport,omitempty" groups:"detailed"`
	Direction string     `json:"direction,omitempty" groups:"detailed"`
	Departure anchorView `json:"departure" groups:"detailed"`
	Arrival   anchorView `json:"arrival" groups:"detailed"`
	Notice    string     `json:"notice,omitempty" groups:"detailed"`
}

type placeView struct {
	Name      string  `json:"name" groups:"basic"`
	Reference string  `json:"reference,omitempty" groups:"basic"`
	Type      string  `json:"type" groups:"basic"`
	Latitude  float64 `json:"latitude" groups:"basic"`
	Longitude float64 `json:"longitude" groups:"basic"`
}

// isoDuration formats d as an ISO-8601 duration such as PT2H45M.
func isoDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)

	duration := iso8601.Duration{TH: hours, TM: minutes}

	return duration.String()
}

func quayName(quay *timetable.Quay) (string, bool) {
	if !quay.Present() {
		return "", false
	}

	return quay.Name, quay.Changed
}

func stopView(stop *timetable.StopPoint, stopTime *timetable.StopTime) anchorView {
	if stop == nil {
		return anchorView{}
	}

	view := anchorView{Place: stop.DisplayName}
	view.Platform, view.PlatformChanged = quayName(stop.Quay)

	if stopTime != nil {
		view.Time = stopTime.DisplayTime
		view.Delay, _ = stopTime.Delay()
	}

	return view
}

func newTripView(trip *timetable.Trip) tripView {
	summary := &trip.Summary

	view := tripView{
		ID:                   trip.Meta.ID,
		Transport:            summary.DepartureAnchor.TransportDesignation.String(),
		Direction:            summary.DepartureAnchor.Direction,
		Duration:             isoDuration(summary.Duration.Duration()),
		Transfers:            trip.Transfers(),
		OccupancyFirstClass:  string(summary.OccupancyFirstClassMax),
		OccupancySecondClass: string(summary.OccupancySecondClassMax),
		Departure: anchorView{
			Place: summary.DepartureAnchor.PlaceName,
			Time:  summary.DepartureAnchor.DisplayTime,
			Date:  summary.DepartureAnchor.DisplayDate,
		},
		Arrival: anchorView{
			Place: summary.ArrivalAnchor.PlaceName,
			Time:  summary.ArrivalAnchor.DisplayTime,
			Date:  summary.ArrivalAnchor.DisplayDate,
		},
	}

	if summary.Duration != nil {
		view.DurationLabel = summary.Duration.LocalizedLabel
	}

	view.Departure.Platform, view.Departure.PlatformChanged = quayName(summary.DepartureAnchor.Quay)
	view.Arrival.Platform, view.Arrival.PlatformChanged = quayName(summary.ArrivalAnchor.Quay)
	view.Departure.Delay, _ = summary.DepartureAnchor.Delay()
	view.Arrival.Delay, _ = summary.ArrivalAnchor.Delay()

	if refresh, ok := trip.Meta.NextRefreshTime(); ok {
		view.NextRefresh = &refresh
	}

	if trip.Detail != nil {
		for _, leg := range trip.Detail.Legs {
			item := legView{
				Type:      string(leg.LegType()),
				Departure: stopView(leg.DepartureStop(), nil),
				Arrival:   stopView(leg.ArrivalStop(), nil),
			}

			if ride, ok := leg.(*timetable.PtRideLeg); ok {
				item.Transport = ride.FirstTransportDesignation.String()
				item.Direction = ride.Direction
				item.Departure = stopView(&ride.DepartureStopPoint, ride.DepartureStopPoint.DepartureTime)
				item.Arrival = stopView(&ride.ArrivalStopPoint, ride.ArrivalStopPoint.ArrivalTime)

				if ride.RtPtRideLegInfo != nil {
					item.Notice = ride.RtPtRideLegInfo.DisplayName
				}
			}

			view.Legs = append(view.Legs, item)
		}
	}

	return view
}

func outputGroups(detailed bool) []string {
	if detailed {
		return []string{"basic", "detailed"}
	}

	return []string{"basic"}
}

func newSearchView(response *timetable.TripSearchResponse) searchView {
	view := searchView{
		Trips:         []tripView{},
		EarlierCursor: response.EarlierPagingCursor,
		LaterCursor:   response.LaterPagingCursor,
	}

	for i := range response.Trips {
		view.Trips = append(view.Trips, newTripView(&response.Trips[i]))
	}

	return view
}

func writeJSON(w io.Writer, groups []string, value interface{}) error {
	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
	if err != nil {
		return fmt.Errorf("reduce output: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(reduced)
}

func WriteTripsJSON(w io.Writer, response *timetable.TripSearchResponse, detailed bool) error {
	return writeJSON(w, outputGroups(detailed), newSearchView(response))
}

func WritePlacesJSON(w io.Writer, places []timetable.Place) error {
	views := []placeView{}
	for _, place := range places {
		views = append(views, placeView{
			Name:      place.DisplayName,
			Reference: place.Identifier,
			Type:      place.PlaceType,
			Latitude:  place.Coordinates.Latitude,
			Longitude: place.Coordinates.Longitude,
		})
	}

	return writeJSON(w, []string{"basic"}, views)
}
