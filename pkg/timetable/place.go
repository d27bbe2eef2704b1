package timetable

// Place is a result of GET /api/timetable/v2/places.
type Place struct {
	DisplayName string `json:"displayName"`
	// UIC reference, missing for addresses and points of interest
	Identifier  string      `json:"identifier,omitempty"`
	PlaceType   string      `json:"placeType"`
	Coordinates Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *Place) IsStation() bool {
	return p.PlaceType == "STOP_PLACE"
}
