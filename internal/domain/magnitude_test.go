package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlewave/quake-data-etl/internal/domain"
	"github.com/mantlewave/quake-data-etl/internal/geo"
)

func amplitudeEvent() *domain.Event {
	return &domain.Event{
		Latitude:  ptr(41.0),
		Longitude: ptr(-78.0),
		Amplitudes: []domain.AmplitudeRecord{
			{ArrivalRecord: domain.ArrivalRecord{Station: "ALLY", Phase: "IAML", Amplitude: ptr(169.4)}},
			{ArrivalRecord: domain.ArrivalRecord{Station: "KSPA", Phase: "IAML", Amplitude: ptr(250.0)}},
		},
		StationCoords: map[string]geo.Point{
			"ALLY": {Lat: 41.6492, Lon: -80.1448},
			"KSPA": {Lat: 41.557, Lon: -75.7682},
		},
	}
}

func TestNetworkMagnitude_KimFormula(t *testing.T) {
	ev := amplitudeEvent()

	got, err := domain.MagnitudeEstimator{}.NetworkMagnitude(ev)
	require.NoError(t, err)

	// Recompute the expectation by hand: per-station Kim (1998), mean, 0.1 rounding.
	epicenter := geo.Point{Lat: 41.0, Lon: -78.0}
	kim := func(amp, dist float64) float64 {
		return math.Log10(amp/1000) + 1.55*math.Log10(dist) - 0.22
	}
	m1 := kim(169.4, geo.PlanarKm(geo.Point{Lat: 41.6492, Lon: -80.1448}, epicenter))
	m2 := kim(250.0, geo.PlanarKm(geo.Point{Lat: 41.557, Lon: -75.7682}, epicenter))
	want := math.Round((m1+m2)/2*10) / 10

	assert.Equal(t, want, got)
}

func TestNetworkMagnitude_MaxPickPerStation(t *testing.T) {
	ev := amplitudeEvent()
	// A second, larger pick on ALLY must win over the first; the smaller
	// pick must not drag the station magnitude down.
	ev.Amplitudes = append(ev.Amplitudes, domain.AmplitudeRecord{
		ArrivalRecord: domain.ArrivalRecord{Station: "ALLY", Phase: "IAML", Amplitude: ptr(500.0)},
	})

	withDup, err := domain.MagnitudeEstimator{}.NetworkMagnitude(ev)
	require.NoError(t, err)

	single := amplitudeEvent()
	single.Amplitudes[0].Amplitude = ptr(500.0)
	wanted, err := domain.MagnitudeEstimator{}.NetworkMagnitude(single)
	require.NoError(t, err)

	assert.Equal(t, wanted, withDup)
}

func TestNetworkMagnitude_MedianAggregation(t *testing.T) {
	ev := amplitudeEvent()
	est := domain.MagnitudeEstimator{Aggregate: domain.Median}
	got, err := est.NetworkMagnitude(ev)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(got))
}

func TestNetworkMagnitude_MissingStationCoordinates(t *testing.T) {
	ev := amplitudeEvent()
	delete(ev.StationCoords, "KSPA")

	_, err := domain.MagnitudeEstimator{}.NetworkMagnitude(ev)
	require.ErrorIs(t, err, domain.ErrMissingStationCoordinates)
	assert.Contains(t, err.Error(), "KSPA")
}

func TestNetworkMagnitude_DistanceBounds(t *testing.T) {
	ev := amplitudeEvent()
	// Both stations sit ~200 km out; a 1000 km minimum excludes everything.
	est := domain.MagnitudeEstimator{Model: domain.Kim1998{MinDistKm: 1000}}
	_, err := est.NetworkMagnitude(ev)
	assert.ErrorIs(t, err, domain.ErrNoUsableAmplitudes)
}

func TestNetworkMagnitude_NoAmplitudes(t *testing.T) {
	ev := &domain.Event{Latitude: ptr(41.0), Longitude: ptr(-78.0)}
	_, err := domain.MagnitudeEstimator{}.NetworkMagnitude(ev)
	assert.ErrorIs(t, err, domain.ErrNoUsableAmplitudes)
}

func TestNetworkMagnitude_GeodesicDistanceModel(t *testing.T) {
	ev := amplitudeEvent()
	est := domain.MagnitudeEstimator{Distance: domain.GeodesicDistance}
	geodesic, err := est.NetworkMagnitude(ev)
	require.NoError(t, err)

	planar, err := domain.MagnitudeEstimator{}.NetworkMagnitude(ev)
	require.NoError(t, err)

	// The two distance models should agree within rounding slop at
	// regional range.
	assert.InDelta(t, planar, geodesic, 0.2)
}

// pluggableModel caps every station magnitude at a constant, exercising the
// capability-interface substitution path.
type pluggableModel struct{ value float64 }

func (m pluggableModel) StationMagnitude(_, _ float64) (float64, bool) { return m.value, true }

func TestNetworkMagnitude_PluggableModel(t *testing.T) {
	ev := amplitudeEvent()
	est := domain.MagnitudeEstimator{Model: pluggableModel{value: 3.14}}
	got, err := est.NetworkMagnitude(ev)
	require.NoError(t, err)
	assert.Equal(t, 3.1, got)
}
