package timetable

import (
	"strings"

	"github.com/travigo/sbb/pkg/util"
)

type Occupancy string

const (
	OccupancyLow    Occupancy = "LOW"
	OccupancyMedium Occupancy = "MEDIUM"
	OccupancyHigh   Occupancy = "HIGH"
)

// Known is false for empty values and for levels this client does not know about.
func (o Occupancy) Known() bool {
	return o == OccupancyLow || o == OccupancyMedium || o == OccupancyHigh
}

type TransportDesignation struct {
	TransportMode       string `json:"transportMode,omitempty"`
	TransportIcon       string `json:"transportIcon,omitempty"`
	TransportIconSuffix string `json:"transportIconSuffix,omitempty"`
	TransportText       string `json:"transportText,omitempty"`
	TransportName       string `json:"transportName,omitempty"`
}

// String gives the short label printed on departure boards, e.g. "IC 1".
func (t *TransportDesignation) String() string {
	if t == nil {
		return ""
	}

	label := strings.TrimSpace(t.TransportIcon + " " + t.TransportIconSuffix)

	return util.FirstNonEmpty(label, t.TransportText, t.TransportName, t.TransportMode)
}

type SearchDateTimeType string

const (
	SearchDateTimeTypeDeparture SearchDateTimeType = "DEPARTURE"
	SearchDateTimeTypeArrival   SearchDateTimeType = "ARRIVAL"
)

func (t SearchDateTimeType) String() string {
	if t == "" {
		return string(SearchDateTimeTypeDeparture)
	}

	return string(t)
}
