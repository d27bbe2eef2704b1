package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/travigo/sbb/pkg/timetable"
	"github.com/travigo/sbb/pkg/util"
)

func transferText(transfers int) string {
	switch transfers {
	case 0:
		return "direct"
	case 1:
		return "1 transfer"
	default:
		return fmt.Sprintf("%d transfers", transfers)
	}
}

func platformText(quay *timetable.Quay, markChanged bool) string {
	if !quay.Present() {
		return ""
	}

	if markChanged && quay.Changed {
		return fmt.Sprintf("   [Pl. %s!]", quay.Name)
	}

	return fmt.Sprintf("   [Pl. %s]", quay.Name)
}

func stopTimeText(stopTime *timetable.StopTime) string {
	if stopTime == nil || stopTime.DisplayTime == "" {
		return "?"
	}

	if delay := timetable.FormatDelay(stopTime.TimeAimed, stopTime.TimeExpected); delay != "" {
		return stopTime.DisplayTime + " " + delay
	}

	return stopTime.DisplayTime
}

// RenderTrips prints trips as a numbered list, one line per trip followed by
// one line per ride.
func RenderTrips(w io.Writer, trips []timetable.Trip, detailed bool) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No connections found.")
		return
	}

	for i := range trips {
		renderTrip(w, i+1, &trips[i], detailed)
		fmt.Fprintln(w)
	}
}

func renderTrip(w io.Writer, number int, trip *timetable.Trip, detailed bool) {
	summary := &trip.Summary

	transport := util.FirstNonEmpty(summary.DepartureAnchor.TransportDesignation.String(), "?")

	direction := ""
	if summary.DepartureAnchor.Direction != "" {
		direction = " → " + summary.DepartureAnchor.Direction
	}

	duration := "?"
	if summary.Duration != nil && summary.Duration.LocalizedLabel != "" {
		duration = summary.Duration.LocalizedLabel
	}

	fmt.Fprintf(w, "%d. %s%s (%s, %s)\n", number, transport, direction, duration, transferText(trip.Transfers()))

	if trip.Detail == nil {
		departure := &summary.DepartureAnchor
		arrival := &summary.ArrivalAnchor

		fmt.Fprintf(w, "   %s  %s  →  %s  %s%s\n",
			departure.PlaceName, departure.DisplayTime, arrival.PlaceName, arrival.DisplayTime, platformText(departure.Quay, false),
		)
	} else {
		for _, ride := range trip.Detail.PtRideLegs() {
			departure := &ride.DepartureStopPoint
			arrival := &ride.ArrivalStopPoint

			fmt.Fprintf(w, "   %s  %s  →  %s  %s%s\n",
				departure.DisplayName, stopTimeText(departure.DepartureTime),
				arrival.DisplayName, stopTimeText(arrival.ArrivalTime),
				platformText(departure.Quay, true),
			)

			if detailed && ride.RtPtRideLegInfo != nil && ride.RtPtRideLegInfo.DisplayName != "" {
				fmt.Fprintf(w, "      ! %s\n", ride.RtPtRideLegInfo.DisplayName)
			}
		}
	}

	if detailed {
		var occupancy []string
		if summary.OccupancyFirstClassMax.Known() {
			occupancy = append(occupancy, "1st "+strings.ToLower(string(summary.OccupancyFirstClassMax)))
		}
		if summary.OccupancySecondClassMax.Known() {
			occupancy = append(occupancy, "2nd "+strings.ToLower(string(summary.OccupancySecondClassMax)))
		}

		if len(occupancy) > 0 {
			fmt.Fprintf(w, "   occupancy: %s\n", strings.Join(occupancy, ", "))
		}
	}
}

func RenderPlaces(w io.Writer, places []timetable.Place) {
	if len(places) == 0 {
		fmt.Fprintln(w, "No places found.")
		return
	}

	for _, place := range places {
		if place.Identifier != "" {
			fmt.Fprintf(w, "%s (%s)  %s\n", place.DisplayName, place.Identifier, place.PlaceType)
		} else {
			fmt.Fprintf(w, "%s  %s\n", place.DisplayName, place.PlaceType)
		}
	}
}
