package sbbapi

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/travigo/sbb/pkg/timetable"
	"github.com/travigo/sbb/pkg/util"
)

type TripSearch struct {
	From    string
	FromRef string
	To      string
	ToRef   string

	// DateTime is sent as wall clock date and time in its own location
	DateTime time.Time
	Type     timetable.SearchDateTimeType

	// PagingCursor comes from a previous response to fetch earlier or later trips
	PagingCursor string
}

// Build returns the request URL and the path that gets signed. The signed
// path never includes the query string.
func (s TripSearch) Build(endpoint string) (*url.URL, string, error) {
	if strings.TrimSpace(s.From) == "" {
		return nil, "", &BuildError{Field: "from", Reason: "departure place is required"}
	}
	if strings.TrimSpace(s.To) == "" {
		return nil, "", &BuildError{Field: "to", Reason: "arrival place is required"}
	}
	if s.Type != "" && s.Type != timetable.SearchDateTimeTypeDeparture && s.Type != timetable.SearchDateTimeTypeArrival {
		return nil, "", &BuildError{Field: "type", Reason: "unknown search date time type " + string(s.Type)}
	}

	for field, value := range map[string]string{
		"from":    s.From,
		"fromRef": s.FromRef,
		"to":      s.To,
		"toRef":   s.ToRef,
		"cursor":  s.PagingCursor,
	} {
		if !utf8.ValidString(value) {
			return nil, "", &BuildError{Field: field, Reason: "not valid UTF-8"}
		}
	}

	dateTime := s.DateTime
	if dateTime.IsZero() {
		dateTime = time.Now()
	}

	params := url.Values{}
	params.Set("departureName", s.From)
	params.Set("arrivalName", s.To)
	params.Set("searchDate", dateTime.Format(util.DateLayout))
	params.Set("searchTime", dateTime.Format(util.ClockLayout))
	params.Set("searchDateTimeType", s.Type.String())

	if s.FromRef != "" {
		params.Set("departureReference", s.FromRef)
	}
	if s.ToRef != "" {
		params.Set("arrivalReference", s.ToRef)
	}
	if s.PagingCursor != "" {
		params.Set("pagingCursor", s.PagingCursor)
	}

	return buildURL(endpoint, TripsPath, params)
}

type PlaceSearch struct {
	Name string
}

func (s PlaceSearch) Build(endpoint string) (*url.URL, string, error) {
	if strings.TrimSpace(s.Name) == "" {
		return nil, "", &BuildError{Field: "name", Reason: "place name is required"}
	}
	if !utf8.ValidString(s.Name) {
		return nil, "", &BuildError{Field: "name", Reason: "not valid UTF-8"}
	}

	params := url.Values{}
	params.Set("nameMatch", s.Name)

	return buildURL(endpoint, PlacesPath, params)
}

func buildURL(endpoint string, path string, params url.Values) (*url.URL, string, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, "", &BuildError{Field: "endpoint", Reason: "invalid endpoint", Err: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, "", &BuildError{Field: "endpoint", Reason: "endpoint must be an absolute URL"}
	}

	requestURL := base.JoinPath(path)
	// JoinPath keeps an empty base path relative, the request line never is
	if !strings.HasPrefix(requestURL.Path, "/") {
		requestURL.Path = "/" + requestURL.Path
		requestURL.RawPath = ""
	}
	requestURL.RawQuery = params.Encode()
	requestURL.Fragment = ""

	return requestURL, requestURL.EscapedPath(), nil
}
