package timetable

import (
	"encoding/json"
	"fmt"
)

type LegType string

const (
	LegTypePtRide LegType = "PtRideLeg"
	LegTypeAccess LegType = "AccessLeg"
	LegTypeChange LegType = "ChangeLeg"
)

// TripLeg is one segment of a trip. The set of implementations is closed,
// only *PtRideLeg, *AccessLeg and *ChangeLeg satisfy it.
type TripLeg interface {
	LegType() LegType
	DepartureStop() *StopPoint
	ArrivalStop() *StopPoint

	isTripLeg()
}

type TripDetail struct {
	Legs            []TripLeg `json:"legs"`
	RtPtRideLegInfo *RtInfo   `json:"rtPtRideLegInfo,omitempty"`
}

func (d *TripDetail) PtRideLegs() []*PtRideLeg {
	var rides []*PtRideLeg

	for _, leg := range d.Legs {
		if ride, ok := leg.(*PtRideLeg); ok {
			rides = append(rides, ride)
		}
	}

	return rides
}

func (d *TripDetail) UnmarshalJSON(data []byte) error {
	var raw struct {
		Legs            []json.RawMessage `json:"legs"`
		RtPtRideLegInfo *RtInfo           `json:"rtPtRideLegInfo"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if len(raw.Legs) == 0 {
		return &DecodeError{Reason: "trip detail has no legs"}
	}

	legs := make([]TripLeg, 0, len(raw.Legs))
	for i, rawLeg := range raw.Legs {
		leg, err := decodeLeg(rawLeg)
		if err != nil {
			return &DecodeError{Reason: fmt.Sprintf("leg %d", i), Err: err}
		}

		legs = append(legs, leg)
	}

	d.Legs = legs
	d.RtPtRideLegInfo = raw.RtPtRideLegInfo

	return nil
}

func decodeLeg(data []byte) (TripLeg, error) {
	var discriminator struct {
		Type LegType `json:"type"`
	}
	if err := json.Unmarshal(data, &discriminator); err != nil {
		return nil, err
	}

	var leg TripLeg
	switch discriminator.Type {
	case LegTypePtRide:
		leg = &PtRideLeg{}
	case LegTypeAccess:
		leg = &AccessLeg{}
	case LegTypeChange:
		leg = &ChangeLeg{}
	case "":
		return nil, fmt.Errorf("missing leg type")
	default:
		return nil, fmt.Errorf("unknown leg type %q", discriminator.Type)
	}

	if err := json.Unmarshal(data, leg); err != nil {
		return nil, err
	}

	return leg, nil
}

// PtRideLeg is a ride on a public transport vehicle.
type PtRideLeg struct {
	Direction                 string                `json:"direction,omitempty"`
	MarketingName             string                `json:"marketingName,omitempty"`
	FirstTransportDesignation *TransportDesignation `json:"firstTransportDesignation,omitempty"`
	DepartureStopPoint        StopPoint             `json:"departureStopPoint"`
	ArrivalStopPoint          StopPoint             `json:"arrivalStopPoint"`
	RtPtRideLegInfo           *RtInfo               `json:"rtPtRideLegInfo,omitempty"`
}

func (l *PtRideLeg) LegType() LegType          { return LegTypePtRide }
func (l *PtRideLeg) DepartureStop() *StopPoint { return &l.DepartureStopPoint }
func (l *PtRideLeg) ArrivalStop() *StopPoint   { return &l.ArrivalStopPoint }
func (l *PtRideLeg) isTripLeg()                {}

func (l PtRideLeg) MarshalJSON() ([]byte, error) {
	type alias PtRideLeg
	return json.Marshal(struct {
		Type LegType `json:"type"`
		alias
	}{LegTypePtRide, alias(l)})
}

// AccessLeg is a walk to, from or between stops.
type AccessLeg struct {
	DepartureStopPoint *StopPoint `json:"departureStopPoint,omitempty"`
	ArrivalStopPoint   *StopPoint `json:"arrivalStopPoint,omitempty"`
}

func (l *AccessLeg) LegType() LegType          { return LegTypeAccess }
func (l *AccessLeg) DepartureStop() *StopPoint { return l.DepartureStopPoint }
func (l *AccessLeg) ArrivalStop() *StopPoint   { return l.ArrivalStopPoint }
func (l *AccessLeg) isTripLeg()                {}

func (l AccessLeg) MarshalJSON() ([]byte, error) {
	type alias AccessLeg
	return json.Marshal(struct {
		Type LegType `json:"type"`
		alias
	}{LegTypeAccess, alias(l)})
}

// ChangeLeg is a transfer inside a station.
type ChangeLeg struct {
	DepartureStopPoint *StopPoint `json:"departureStopPoint,omitempty"`
	ArrivalStopPoint   *StopPoint `json:"arrivalStopPoint,omitempty"`
}

func (l *ChangeLeg) LegType() LegType          { return LegTypeChange }
func (l *ChangeLeg) DepartureStop() *StopPoint { return l.DepartureStopPoint }
func (l *ChangeLeg) ArrivalStop() *StopPoint   { return l.ArrivalStopPoint }
func (l *ChangeLeg) isTripLeg()                {}

func (l ChangeLeg) MarshalJSON() ([]byte, error) {
	type alias ChangeLeg
	return json.Marshal(struct {
		Type LegType `json:"type"`
		alias
	}{LegTypeChange, alias(l)})
}

type StopPoint struct {
	DisplayName          string    `json:"displayName"`
	OccupancyFirstClass  Occupancy `json:"occupancyFirstClass,omitempty"`
	OccupancySecondClass Occupancy `json:"occupancySecondClass,omitempty"`
	ArrivalTime          *StopTime `json:"arrivalTime,omitempty"`
	DepartureTime        *StopTime `json:"departureTime,omitempty"`
	Quay                 *Quay     `json:"quay,omitempty"`
	RtStopInfo           *RtInfo   `json:"rtStopInfo,omitempty"`
}

type StopTime struct {
	TimeAimed    string `json:"timeAimed,omitempty"`
	TimeExpected string `json:"timeExpected,omitempty"`
	DisplayTime  string `json:"displayTime,omitempty"`
}

func (t *StopTime) Delay() (int, bool) {
	if t == nil {
		return 0, false
	}

	return DelayMinutes(t.TimeAimed, t.TimeExpected)
}

// RtInfo carries realtime disruption information, RtType is e.g. DELAY,
// CANCELLED or PLATFORM_CHANGE.
type RtInfo struct {
	RtType      string `json:"rtType,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}
