package timetable

import (
	"encoding/json"
	"errors"
)

// DecodeError is returned for bodies that are not valid JSON or do not match
// the expected schema, including legs with an unknown type.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	message := "decode response"
	if e.Reason != "" {
		message += ": " + e.Reason
	}
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}

	return message
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func Decode(body []byte) (*TripSearchResponse, error) {
	var response TripSearchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, asDecodeError(err)
	}

	return &response, nil
}

func DecodePlaces(body []byte) ([]Place, error) {
	var places []Place
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, asDecodeError(err)
	}

	return places, nil
}

func asDecodeError(err error) error {
	var decodeError *DecodeError
	if errors.As(err, &decodeError) {
		return decodeError
	}

	return &DecodeError{Err: err}
}
