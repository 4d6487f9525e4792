package nordic

import (
	"fmt"

	"github.com/mantlewave/quake-data-etl/internal/domain"
)

// Fixed-column renderers for the line types test fixtures need. Width and
// padding are not guaranteed byte-identical to any particular producer, but
// the digits round-trip through the decoders.

// lineBuffer is an 80-column line under construction, blank by default.
type lineBuffer [80]byte

func newLineBuffer() lineBuffer {
	var b lineBuffer
	for i := range b {
		b[i] = ' '
	}
	return b
}

// put writes s right-aligned into [from:to), truncating on overflow.
func (b *lineBuffer) put(from, to int, s string) {
	if len(s) > to-from {
		s = s[:to-from]
	}
	copy(b[to-len(s):to], s)
}

// putLeft writes s left-aligned into [from:to).
func (b *lineBuffer) putLeft(from, to int, s string) {
	if len(s) > to-from {
		s = s[:to-from]
	}
	copy(b[from:from+len(s)], s)
}

func (b *lineBuffer) String() string { return string(b[:]) }

// EncodeHypocenter renders a type 1 line from an event's origin fields.
func EncodeHypocenter(e *domain.Event) string {
	b := newLineBuffer()

	if e.OriginTime != nil {
		t := e.OriginTime.UTC()
		b.put(1, 5, fmt.Sprintf("%4d", t.Year()))
		b.put(6, 8, fmt.Sprintf("%2d", int(t.Month())))
		b.put(8, 10, fmt.Sprintf("%2d", t.Day()))
		b.put(11, 13, fmt.Sprintf("%2d", t.Hour()))
		b.put(13, 15, fmt.Sprintf("%2d", t.Minute()))
		sec := float64(t.Second()) + float64(t.Nanosecond())/1e9
		b.put(16, 20, fmt.Sprintf("%4.1f", sec))
	}
	b.putLeft(21, 22, e.DistanceIndicator)
	b.putLeft(22, 23, e.EventType)
	if e.Latitude != nil {
		b.put(23, 30, fmt.Sprintf("%7.3f", *e.Latitude))
	}
	if e.Longitude != nil {
		b.put(30, 38, fmt.Sprintf("%8.3f", *e.Longitude))
	}
	if e.Depth != nil {
		b.put(38, 43, fmt.Sprintf("%5.1f", *e.Depth))
	}
	if e.FixedDepth {
		b.putLeft(43, 44, "F")
	}
	b.putLeft(45, 48, e.Agency)
	if e.StationCount != nil {
		b.put(48, 51, fmt.Sprintf("%3d", *e.StationCount))
	}
	if e.RMS != nil {
		b.put(51, 55, fmt.Sprintf("%4.1f", *e.RMS))
	}
	if e.Magnitude != nil {
		b.put(55, 59, fmt.Sprintf("%4.1f", *e.Magnitude))
	}
	b.putLeft(59, 60, e.MagnitudeType)
	b.putLeft(60, 63, e.MagnitudeAgency)
	b[typeColumn] = '1'
	return b.String()
}

// EncodePhase renders a legacy (format 1) phase line from an arrival.
func EncodePhase(arr domain.ArrivalRecord) string {
	b := newLineBuffer()

	b.putLeft(1, 6, arr.Station)
	b.putLeft(6, 7, arr.Instrument)
	b.putLeft(7, 8, arr.Component)
	b.putLeft(9, 10, arr.Quality)
	b.putLeft(10, 14, arr.Phase)
	b.putLeft(14, 15, arr.WeightIndicator)
	b.putLeft(16, 17, arr.Polarity)
	if arr.Hour != nil {
		b.put(18, 20, fmt.Sprintf("%2d", *arr.Hour))
	}
	if arr.Minute != nil {
		b.put(20, 22, fmt.Sprintf("%2d", *arr.Minute))
	}
	if arr.Second != nil {
		b.put(22, 28, fmt.Sprintf("%6.2f", *arr.Second))
	}
	if arr.Amplitude != nil {
		b.put(33, 40, fmt.Sprintf("%7.1f", *arr.Amplitude))
	}
	if arr.Period != nil {
		b.put(41, 45, fmt.Sprintf("%4.1f", *arr.Period))
	}
	if arr.AngleOfIncidence != nil {
		b.put(56, 60, fmt.Sprintf("%4.0f", *arr.AngleOfIncidence))
	}
	if arr.Residual != nil {
		b.put(63, 68, fmt.Sprintf("%5.2f", *arr.Residual))
	}
	if arr.DistanceKm != nil {
		b.put(70, 75, fmt.Sprintf("%5.0f", *arr.DistanceKm))
	}
	if arr.AzimuthDeg != nil {
		b.put(75, 79, fmt.Sprintf("%4.0f", *arr.AzimuthDeg))
	}
	return b.String()
}
