package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/sbb/pkg/sbbapi"
	"github.com/travigo/sbb/pkg/timetable"
	"github.com/travigo/sbb/pkg/util"
)

// Searcher is the part of sbbapi.Client the commands need.
type Searcher interface {
	GetConnections(ctx context.Context, search sbbapi.TripSearch) (*timetable.TripSearchResponse, error)
}

type PlaceSearcher interface {
	GetPlaces(ctx context.Context, name string) ([]timetable.Place, error)
}

// SearchOptions is a connection search as typed by the user, either as flags
// or as an entry of a batch file.
type SearchOptions struct {
	From    string `yaml:"from"`
	FromRef string `yaml:"from-ref"`
	To      string `yaml:"to"`
	ToRef   string `yaml:"to-ref"`

	Date string `yaml:"date"` // YYYY-MM-DD
	At   string `yaml:"at"`   // HH:MM
	In   string `yaml:"in"`   // ISO-8601 duration from now, e.g. PT30M

	Arrival bool   `yaml:"arrival"`
	Cursor  string `yaml:"cursor"`
}

func (o SearchOptions) TripSearch(now time.Time) (sbbapi.TripSearch, error) {
	var dateTime time.Time

	if o.In != "" {
		if o.Date != "" || o.At != "" {
			return sbbapi.TripSearch{}, errors.New("--in cannot be combined with --date or --at")
		}

		offset, err := iso8601.ParseISO8601(o.In)
		if err != nil {
			return sbbapi.TripSearch{}, fmt.Errorf("invalid duration %q, expected ISO-8601 like PT30M: %w", o.In, err)
		}

		dateTime = offset.Shift(now)
	} else {
		var err error
		dateTime, err = util.CombineDateTime(o.Date, o.At, now)
		if err != nil {
			return sbbapi.TripSearch{}, err
		}
	}

	searchType := timetable.SearchDateTimeTypeDeparture
	if o.Arrival {
		searchType = timetable.SearchDateTimeTypeArrival
	}

	return sbbapi.TripSearch{
		From:         o.From,
		FromRef:      o.FromRef,
		To:           o.To,
		ToRef:        o.ToRef,
		DateTime:     dateTime,
		Type:         searchType,
		PagingCursor: o.Cursor,
	}, nil
}

func searchConnections(ctx context.Context, searcher Searcher, options SearchOptions, now time.Time) (*timetable.TripSearchResponse, error) {
	search, err := options.TripSearch(now)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("from", search.From).
		Str("fromref", search.FromRef).
		Str("to", search.To).
		Str("toref", search.ToRef).
		Str("date", search.DateTime.Format(util.DateLayout)).
		Str("time", search.DateTime.Format(util.ClockLayout)).
		Str("type", search.Type.String()).
		Msg("Searching connections")

	return searcher.GetConnections(ctx, search)
}
