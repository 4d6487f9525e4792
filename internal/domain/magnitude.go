package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/mantlewave/quake-data-etl/internal/geo"
)

// ErrNoUsableAmplitudes is returned when none of an event's amplitude picks
// produce a station magnitude (no picks at all, or every pick outside the
// model's distance range).
var ErrNoUsableAmplitudes = errors.New("no usable amplitude picks")

// StationMagnitudeModel converts one amplitude pick into a station
// magnitude. ok is false when the pick is outside the model's valid range
// and should be skipped.
type StationMagnitudeModel interface {
	StationMagnitude(amplitudeNm, distanceKm float64) (mag float64, ok bool)
}

// Kim1998 is the regional ML relation for eastern North America from
// Kim (1998):
//
//	ML = log10(amp/1000) + 1.55*log10(dist) - 0.22
//
// with amplitude in nm and epicentral distance in km. The relation was
// originally calibrated for 100-800 km; zero bounds leave the range
// unrestricted.
type Kim1998 struct {
	MinDistKm float64
	MaxDistKm float64
}

func (k Kim1998) StationMagnitude(amplitudeNm, distanceKm float64) (float64, bool) {
	if distanceKm <= 0 || amplitudeNm <= 0 {
		return 0, false
	}
	if k.MinDistKm > 0 && distanceKm < k.MinDistKm {
		return 0, false
	}
	if k.MaxDistKm > 0 && distanceKm > k.MaxDistKm {
		return 0, false
	}
	return math.Log10(amplitudeNm/1000) + 1.55*math.Log10(distanceKm) - 0.22, true
}

// AggregateFunc reduces per-station magnitudes to a network magnitude.
type AggregateFunc func(stationMags []float64) (float64, error)

// Mean and Median are the two stock aggregations.
func Mean(stationMags []float64) (float64, error)   { return stats.Mean(stationMags) }
func Median(stationMags []float64) (float64, error) { return stats.Median(stationMags) }

// DistanceFunc computes the station-epicenter distance in km.
type DistanceFunc func(a, b geo.Point) (float64, error)

// PlanarDistance adapts geo.PlanarKm to the estimator's distance hook.
func PlanarDistance(a, b geo.Point) (float64, error) {
	return geo.PlanarKm(a, b), nil
}

// GeodesicDistance uses the Vincenty inverse solution on WGS84.
func GeodesicDistance(a, b geo.Point) (float64, error) {
	m, _, _, err := geo.Inverse(a, b, geo.WGS84)
	if err != nil {
		return 0, err
	}
	return m / 1000, nil
}

// MagnitudeEstimator computes a network magnitude from an event's amplitude
// records and station coordinates. The zero value uses the unbounded
// Kim1998 model, planar distances, and a mean aggregation.
type MagnitudeEstimator struct {
	Model     StationMagnitudeModel
	Aggregate AggregateFunc
	Distance  DistanceFunc
}

// NetworkMagnitude computes the event's network magnitude, rounded to 0.1.
//
// Each amplitude pick yields a station magnitude; multiple picks at one
// station reduce to the station's maximum. The event must have an epicenter
// and a station-coordinate mapping covering every amplitude station; a
// missing station fails with ErrMissingStationCoordinates rather than
// guessing a coordinate.
func (m MagnitudeEstimator) NetworkMagnitude(e *Event) (float64, error) {
	model := m.Model
	if model == nil {
		model = Kim1998{}
	}
	aggregate := m.Aggregate
	if aggregate == nil {
		aggregate = Mean
	}
	distance := m.Distance
	if distance == nil {
		distance = PlanarDistance
	}

	epicenter, ok := e.Epicenter()
	if !ok {
		return 0, errors.New("event has no epicenter")
	}
	if len(e.Amplitudes) == 0 {
		return 0, ErrNoUsableAmplitudes
	}

	stationMags := make(map[string]float64)
	for _, amp := range e.Amplitudes {
		if amp.Amplitude == nil {
			continue
		}
		coord, found := e.StationCoords[amp.Station]
		if !found {
			return 0, fmt.Errorf("station %q: %w", amp.Station, ErrMissingStationCoordinates)
		}
		distKm, err := distance(coord, epicenter)
		if err != nil {
			return 0, fmt.Errorf("station %q distance: %w", amp.Station, err)
		}
		mag, usable := model.StationMagnitude(*amp.Amplitude, distKm)
		if !usable {
			continue
		}
		if prev, seen := stationMags[amp.Station]; !seen || mag > prev {
			stationMags[amp.Station] = mag
		}
	}
	if len(stationMags) == 0 {
		return 0, ErrNoUsableAmplitudes
	}

	mags := make([]float64, 0, len(stationMags))
	for _, mag := range stationMags {
		mags = append(mags, mag)
	}
	net, err := aggregate(mags)
	if err != nil {
		return 0, fmt.Errorf("aggregate station magnitudes: %w", err)
	}
	return math.Round(net*10) / 10, nil
}
