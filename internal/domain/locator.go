package domain

import (
	"errors"
	"fmt"

	"github.com/mantlewave/quake-data-etl/internal/geo"
)

// ErrMissingStationCoordinates is returned when a station referenced by an
// arrival or amplitude record is absent from the coordinate directory. A
// default coordinate is never substituted.
var ErrMissingStationCoordinates = errors.New("station has no known coordinates")

// ErrNoArrivals is returned by AttachStationCoords when the event carries no
// phase or amplitude records to take station codes from.
var ErrNoArrivals = errors.New("event has no arrival or amplitude records")

// StationLocator resolves a station code to its coordinates.
type StationLocator interface {
	Locate(station string) (geo.Point, bool)
}

// AttachStationCoords resolves the stations referenced by the event's
// arrival and amplitude records against the locator and stores the result in
// StationCoords. Every referenced station must resolve; a miss fails with
// ErrMissingStationCoordinates wrapped with the station code.
func (e *Event) AttachStationCoords(locator StationLocator) error {
	if len(e.Arrivals) == 0 && len(e.Amplitudes) == 0 {
		return ErrNoArrivals
	}

	stations := make(map[string]struct{}, len(e.Arrivals)+len(e.Amplitudes))
	for _, arr := range e.Arrivals {
		stations[arr.Station] = struct{}{}
	}
	for _, amp := range e.Amplitudes {
		stations[amp.Station] = struct{}{}
	}

	coords := make(map[string]geo.Point, len(stations))
	for sta := range stations {
		p, ok := locator.Locate(sta)
		if !ok {
			return fmt.Errorf("station %q: %w", sta, ErrMissingStationCoordinates)
		}
		coords[sta] = p
	}
	e.StationCoords = coords
	return nil
}
