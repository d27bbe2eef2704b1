package sbbapi

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/sbb/pkg/timetable"
)

// GetConnections fetches trips between two places. FromRef and ToRef are
// optional UIC references (e.g. 8503000 for Zürich HB) that make the search
// more reliable when a name matches several places.
func (c *Client) GetConnections(ctx context.Context, search TripSearch) (*timetable.TripSearchResponse, error) {
	requestURL, signedPath, err := search.Build(c.Endpoint)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, requestURL, signedPath)
	if err != nil {
		return nil, err
	}

	response, err := timetable.Decode(body)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("from", search.From).
		Str("to", search.To).
		Int("trips", len(response.Trips)).
		Msg("Decoded trip search response")

	return response, nil
}
