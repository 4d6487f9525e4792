package domain

import (
	"errors"
	"time"
)

// ErrMissingOriginTime is returned when a derived-time computation is
// requested before any hypocenter line set the event's origin time.
var ErrMissingOriginTime = errors.New("event has no origin time")

// TravelTimeEntry is one derived (station, phase, distance, elapsed) tuple.
type TravelTimeEntry struct {
	Station    string  `json:"station"`
	Phase      string  `json:"phase"`
	DistanceKm float64 `json:"distance_km"`
	ElapsedSec float64 `json:"elapsed_sec"`
}

// TravelTimes derives travel-time entries from the event's arrival records,
// in bulletin line order. Entries are recomputed on every call.
//
// Arrivals without an epicentral distance are informational picks not used
// in the location and are skipped. Arrivals decoded before the hypocenter
// line carried no date component; their times are resolved against the
// origin date here.
func (e *Event) TravelTimes() ([]TravelTimeEntry, error) {
	if e.OriginTime == nil {
		return nil, ErrMissingOriginTime
	}

	entries := make([]TravelTimeEntry, 0, len(e.Arrivals))
	for _, arr := range e.Arrivals {
		if arr.DistanceKm == nil {
			continue
		}
		at, ok := arr.AbsoluteTime(*e.OriginTime)
		if !ok {
			continue
		}
		entries = append(entries, TravelTimeEntry{
			Station:    arr.Station,
			Phase:      arr.Phase,
			DistanceKm: *arr.DistanceKm,
			ElapsedSec: at.Sub(*e.OriginTime).Seconds(),
		})
	}
	return entries, nil
}

// AbsoluteTime resolves the arrival to an absolute timestamp. When the
// record was decoded after the hypocenter line it already carries one;
// otherwise the time-of-day components are combined with the origin date.
// ok is false when the record has neither.
func (a ArrivalRecord) AbsoluteTime(origin time.Time) (time.Time, bool) {
	if a.Time != nil {
		return *a.Time, true
	}
	if a.Hour == nil || a.Minute == nil {
		return time.Time{}, false
	}
	var sec float64
	if a.Second != nil {
		sec = *a.Second
	}
	whole := int(sec)
	nanos := int((sec - float64(whole)) * 1e9)
	return time.Date(origin.Year(), origin.Month(), origin.Day(),
		*a.Hour, *a.Minute, whole, nanos, origin.Location()), true
}
