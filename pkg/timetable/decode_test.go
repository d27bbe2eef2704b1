package timetable

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()

	body, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return body
}

func TestDecode(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	require.Len(t, response.Trips, 3)
	assert.Equal(t, "cursor-earlier-abc", response.EarlierPagingCursor)
	assert.Equal(t, "cursor-later-def", response.LaterPagingCursor)

	ids := []string{}
	for _, trip := range response.Trips {
		ids = append(ids, trip.Meta.ID)
	}
	assert.Equal(t, []string{"trip-bern-lugano-1", "trip-bern-lugano-2", "trip-bern-lugano-3"}, ids)

	first := response.Trips[0]
	require.NotNil(t, first.Detail)
	require.Len(t, first.Detail.Legs, 7)

	legTypes := []LegType{}
	for _, leg := range first.Detail.Legs {
		legTypes = append(legTypes, leg.LegType())
	}
	assert.Equal(t, []LegType{
		LegTypeAccess, LegTypePtRide, LegTypeChange, LegTypePtRide, LegTypeChange, LegTypePtRide, LegTypeAccess,
	}, legTypes)

	rides := first.Detail.PtRideLegs()
	require.Len(t, rides, 3)
	assert.Equal(t, "IC 1", rides[0].FirstTransportDesignation.String())
	assert.Equal(t, "EC", rides[1].FirstTransportDesignation.String())
	assert.Equal(t, "IR 26", rides[2].FirstTransportDesignation.String())
	assert.Equal(t, "Gotthard", rides[1].MarketingName)
	require.NotNil(t, rides[1].RtPtRideLegInfo)
	assert.Equal(t, "DELAY", rides[1].RtPtRideLegInfo.RtType)

	access := first.Detail.Legs[0].(*AccessLeg)
	assert.Nil(t, access.DepartureStop())
	require.NotNil(t, access.ArrivalStop())
	assert.Equal(t, "Bern", access.ArrivalStop().DisplayName)

	assert.Equal(t, OccupancyLow, rides[0].DepartureStopPoint.OccupancyFirstClass)
	assert.True(t, rides[0].ArrivalStopPoint.Quay.Changed)

	assert.Nil(t, response.Trips[1].Detail)
}

func TestDecodeSummary(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	first := response.Trips[0]
	assert.Equal(t, "Bern", first.Summary.DepartureAnchor.PlaceName)
	assert.Equal(t, "Lugano", first.Summary.ArrivalAnchor.PlaceName)
	assert.Equal(t, "IC 1", first.Summary.DepartureAnchor.TransportDesignation.String())
	assert.True(t, first.Summary.DepartureAnchor.Quay.Present())
	assert.Equal(t, OccupancyMedium, first.Summary.OccupancySecondClassMax)

	refresh, ok := first.Meta.NextRefreshTime()
	assert.True(t, ok)
	assert.Equal(t, int64(1740229200000), refresh.UnixMilli())

	_, ok = response.Trips[1].Meta.NextRefreshTime()
	assert.False(t, ok)

	unknown := response.Trips[1].Summary.OccupancySecondClassMax
	assert.Equal(t, Occupancy("VERY_HIGH"), unknown)
	assert.False(t, unknown.Known())
	assert.False(t, response.Trips[1].Summary.DepartureAnchor.Quay.Present())
}

func TestTransfers(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	assert.Equal(t, 2, response.Trips[0].Transfers())
	assert.Equal(t, 0, response.Trips[1].Transfers())
	assert.Equal(t, 0, response.Trips[2].Transfers())

	walkOnly := Trip{Detail: &TripDetail{Legs: []TripLeg{&AccessLeg{}}}}
	assert.Equal(t, 0, walkOnly.Transfers())
}

func TestTripDuration(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	assert.Equal(t, 165*time.Minute, response.Trips[0].Summary.Duration.Duration())
	assert.Equal(t, 56*time.Minute, response.Trips[1].Summary.Duration.Duration())

	var missing *TripDuration
	assert.Equal(t, time.Duration(0), missing.Duration())
}

func TestDecodeDelay(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	minutes, delayed := response.Trips[0].Summary.DepartureAnchor.Delay()
	assert.True(t, delayed)
	assert.Equal(t, 5, minutes)

	rides := response.Trips[0].Detail.PtRideLegs()

	minutes, delayed = rides[0].DepartureStopPoint.DepartureTime.Delay()
	assert.True(t, delayed)
	assert.Equal(t, 5, minutes)

	_, delayed = rides[0].ArrivalStopPoint.ArrivalTime.Delay()
	assert.False(t, delayed, "arriving early is not a delay")

	_, delayed = rides[1].DepartureStopPoint.DepartureTime.Delay()
	assert.False(t, delayed)

	_, delayed = response.Trips[2].Summary.DepartureAnchor.Delay()
	assert.False(t, delayed)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "not json",
			body: `<html>maintenance</html>`,
		},
		{
			name: "truncated",
			body: `{"trips": [`,
		},
		{
			name: "unknown leg type",
			body: `{"trips":[{"meta":{"id":"a"},"summary":{},"detail":{"legs":[{"type":"TeleportLeg"}]}}]}`,
		},
		{
			name: "missing leg type",
			body: `{"trips":[{"meta":{"id":"a"},"summary":{},"detail":{"legs":[{"direction":"Bern"}]}}]}`,
		},
		{
			name: "empty legs",
			body: `{"trips":[{"meta":{"id":"a"},"summary":{},"detail":{"legs":[]}}]}`,
		},
		{
			name: "wrong field type",
			body: `{"trips":[{"meta":{"id":"a"},"summary":{"duration":{"durationInMinutes":"long"}}}]}`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response, err := Decode([]byte(test.body))
			assert.Nil(t, response)

			var decodeError *DecodeError
			assert.ErrorAs(t, err, &decodeError)
		})
	}
}

func TestDecodeUnknownLegReason(t *testing.T) {
	_, err := Decode([]byte(`{"trips":[{"meta":{"id":"a"},"summary":{},"detail":{"legs":[{"type":"PtRideLeg","departureStopPoint":{},"arrivalStopPoint":{}},{"type":"TeleportLeg"}]}}]}`))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "leg 1")
	assert.Contains(t, err.Error(), "TeleportLeg")
}

func TestDecodeEmptyTrips(t *testing.T) {
	response, err := Decode([]byte(`{"trips":[]}`))
	require.NoError(t, err)
	assert.Empty(t, response.Trips)
}

func TestRoundTrip(t *testing.T) {
	response, err := Decode(loadFixture(t, "trips.json"))
	require.NoError(t, err)

	encoded, err := json.Marshal(response)
	require.NoError(t, err)

	again, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, response, again)
}

func TestLegMarshalIncludesType(t *testing.T) {
	encoded, err := json.Marshal(TripDetail{Legs: []TripLeg{&ChangeLeg{}, &PtRideLeg{Direction: "Chur"}}})
	require.NoError(t, err)

	var raw struct {
		Legs []map[string]any `json:"legs"`
	}
	require.NoError(t, json.Unmarshal(encoded, &raw))
	require.Len(t, raw.Legs, 2)

	assert.Equal(t, "ChangeLeg", raw.Legs[0]["type"])
	assert.Equal(t, "PtRideLeg", raw.Legs[1]["type"])
	assert.Equal(t, "Chur", raw.Legs[1]["direction"])
}

func TestDecodePlaces(t *testing.T) {
	places, err := DecodePlaces(loadFixture(t, "places.json"))
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "Zürich HB", places[0].DisplayName)
	assert.Equal(t, "8503000", places[0].Identifier)
	assert.True(t, places[0].IsStation())
	assert.InDelta(t, 47.378177, places[0].Coordinates.Latitude, 0.000001)

	assert.Empty(t, places[1].Identifier)
	assert.False(t, places[1].IsStation())

	_, err = DecodePlaces([]byte(`{"places": "nope"}`))
	var decodeError *DecodeError
	assert.ErrorAs(t, err, &decodeError)
}
