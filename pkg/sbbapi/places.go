package sbbapi

import (
	"context"

	"github.com/travigo/sbb/pkg/timetable"
)

func (c *Client) GetPlaces(ctx context.Context, name string) ([]timetable.Place, error) {
	requestURL, signedPath, err := PlaceSearch{Name: name}.Build(c.Endpoint)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, requestURL, signedPath)
	if err != nil {
		return nil, err
	}

	return timetable.DecodePlaces(body)
}
