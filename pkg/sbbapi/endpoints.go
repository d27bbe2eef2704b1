package sbbapi

const (
	DefaultEndpoint = "https://p1.sbbmobile.ch"

	// TripsPath searches connections between two places
	// Required params: departureName, arrivalName, searchDate, searchTime, searchDateTimeType
	// Optional params: departureReference, arrivalReference, pagingCursor
	TripsPath = "/api/timetable/v2/trips"

	// PlacesPath looks up stations, addresses and points of interest by name
	// Required params: nameMatch
	PlacesPath = "/api/timetable/v2/places"
)

// DefaultUserAgent is the identity of the app build the signing key belongs to
const DefaultUserAgent = "SBBmobile/flavorpreviewRelease-9.6.2-RELEASE Android/9 (OnePlus;ONEPLUS A5010)"

const UseCaseTimetable = "TIMETABLE"

const (
	HeaderAppToken      = "X-APP-TOKEN"
	HeaderAPIDate       = "X-API-DATE"
	HeaderAuthorization = "X-API-AUTHORIZATION"
	HeaderUseCase       = "USE-CASE"
)
