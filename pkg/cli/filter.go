package cli

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/travigo/sbb/pkg/timetable"
)

// tripEnv is what a --filter expression can see of a trip, e.g.
// `Transfers <= 1 && DurationMinutes < 120`
type tripEnv struct {
	Transfers       int
	DurationMinutes int
	Delay           int
	Transport       string
	Direction       string
	Direct          bool
}

func newTripEnv(trip *timetable.Trip) tripEnv {
	anchor := &trip.Summary.DepartureAnchor
	delay, _ := anchor.Delay()

	return tripEnv{
		Transfers:       trip.Transfers(),
		DurationMinutes: int(trip.Summary.Duration.Duration().Minutes()),
		Delay:           delay,
		Transport:       anchor.TransportDesignation.String(),
		Direction:       anchor.Direction,
		Direct:          trip.Transfers() == 0,
	}
}

type TripFilter struct {
	Expression string

	program *vm.Program
}

func NewTripFilter(expression string) (*TripFilter, error) {
	program, err := expr.Compile(expression, expr.Env(tripEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}

	return &TripFilter{
		Expression: expression,
		program:    program,
	}, nil
}

func (f *TripFilter) Match(trip *timetable.Trip) (bool, error) {
	output, err := expr.Run(f.program, newTripEnv(trip))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.Expression, err)
	}

	return output.(bool), nil
}

// Apply keeps the trips matching the filter, in their original order.
func (f *TripFilter) Apply(trips []timetable.Trip) ([]timetable.Trip, error) {
	var matching []timetable.Trip

	for i := range trips {
		match, err := f.Match(&trips[i])
		if err != nil {
			return nil, err
		}

		if match {
			matching = append(matching, trips[i])
		}
	}

	return matching, nil
}
