package domain

import (
	"context"
	"time"

	"github.com/mantlewave/quake-data-etl/internal/geo"
)

// RawBulletin represents one unprocessed message from the source topic.
// The value holds the complete text of a single Nordic Sfile.
type RawBulletin struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// ArrivalRecord is one decoded phase-pick line. Pointer fields distinguish
// a blank fixed-width column (nil) from a recorded zero.
type ArrivalRecord struct {
	Station         string `json:"station"`
	Instrument      string `json:"instrument,omitempty"` // format 1 only
	Component       string `json:"component,omitempty"`
	Network         string `json:"network,omitempty"`  // format 2 only
	Location        string `json:"location,omitempty"` // format 2 only
	Quality         string `json:"quality,omitempty"`
	Phase           string `json:"phase"`
	WeightIndicator string `json:"weight_indicator,omitempty"`
	Polarity        string `json:"polarity,omitempty"`
	Agency          string `json:"agency,omitempty"`   // format 2 only
	Operator        string `json:"operator,omitempty"` // format 2 only

	// Time-of-day components as written in the bulletin. Time is the
	// absolute timestamp, set only once the event's origin date is known.
	Hour   *int       `json:"hour,omitempty"`
	Minute *int       `json:"minute,omitempty"`
	Second *float64   `json:"second,omitempty"`
	Time   *time.Time `json:"time,omitempty"`

	Amplitude        *float64 `json:"amplitude,omitempty"` // nm; non-nil only on amplitude records
	Period           *float64 `json:"period,omitempty"`    // seconds
	AngleOfIncidence *float64 `json:"angle_of_incidence,omitempty"`
	Residual         *float64 `json:"residual,omitempty"` // travel-time residual, seconds
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	AzimuthDeg       *float64 `json:"azimuth_deg,omitempty"`

	// BAZ-type phases in format 2 carry these instead of amplitude/period.
	BackAzimuthDeg      *float64 `json:"back_azimuth_deg,omitempty"`
	ApparentVelocityKmS *float64 `json:"apparent_velocity_kms,omitempty"`
}

// AmplitudeRecord is an arrival carrying a measured ground-motion amplitude.
// The split is decided once at decode time: a phase line with a non-blank
// amplitude column becomes an AmplitudeRecord, everything else an
// ArrivalRecord.
type AmplitudeRecord struct {
	ArrivalRecord
}

// FaultPlaneSolution holds a decoded type F line.
type FaultPlaneSolution struct {
	Strike *float64 `json:"strike,omitempty"`
	Dip    *float64 `json:"dip,omitempty"`
	Rake   *float64 `json:"rake,omitempty"`

	StrikeErr *float64 `json:"strike_err,omitempty"`
	DipErr    *float64 `json:"dip_err,omitempty"`
	RakeErr   *float64 `json:"rake_err,omitempty"`
	FitErr    *float64 `json:"fit_err,omitempty"`

	StationDistRatio *float64 `json:"station_dist_ratio,omitempty"`
	AmplitudeRatio   *float64 `json:"amplitude_ratio,omitempty"`
	BadPolarities    *int     `json:"bad_polarities,omitempty"`
	BadAmplitudes    *int     `json:"bad_amplitudes,omitempty"`

	Agency  string `json:"agency,omitempty"`
	Program string `json:"program,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// ExplosionInfo holds a decoded EC3 line.
type ExplosionInfo struct {
	Info         string   `json:"info,omitempty"`
	ChargeTonnes *float64 `json:"charge_tonnes,omitempty"`
	Extra        string   `json:"extra,omitempty"` // 54-character free text
}

// Event is one seismic event assembled from a single bulletin. It is built
// incrementally by the parser and immutable from the parser's perspective
// once the bulletin's last line has been folded in; consumers may still
// recompute derived fields (network magnitude, travel times) afterwards.
//
// Optional origin fields are pointers so a blank bulletin column stays
// distinguishable from a recorded zero; zero is a valid error estimate.
type Event struct {
	ID string `json:"id"`

	OriginTime *time.Time `json:"origin_time,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Depth      *float64   `json:"depth_km,omitempty"`
	FixedDepth bool       `json:"fixed_depth,omitempty"`

	Magnitude         *float64 `json:"magnitude,omitempty"`
	MagnitudeType     string   `json:"magnitude_type,omitempty"`
	MagnitudeAgency   string   `json:"magnitude_agency,omitempty"`
	Agency            string   `json:"agency,omitempty"`
	EventType         string   `json:"event_type,omitempty"`
	DistanceIndicator string   `json:"distance_indicator,omitempty"`

	StationCount *int     `json:"station_count,omitempty"`
	RMS          *float64 `json:"rms,omitempty"`
	AzimuthalGap *float64 `json:"azimuthal_gap,omitempty"`

	// Location error estimates: km for the spatial axes, seconds for origin time.
	LatErr        *float64 `json:"lat_err,omitempty"`
	LonErr        *float64 `json:"lon_err,omitempty"`
	DepthErr      *float64 `json:"depth_err,omitempty"`
	OriginTimeErr *float64 `json:"origin_time_err,omitempty"`

	Comments      []string            `json:"comments,omitempty"`
	WaveformFiles []string            `json:"waveform_files,omitempty"`
	FaultPlane    *FaultPlaneSolution `json:"fault_plane,omitempty"`
	Explosion     *ExplosionInfo      `json:"explosion,omitempty"`
	MacroFile     string              `json:"macro_file,omitempty"`

	// Arrivals and Amplitudes preserve bulletin line order.
	Arrivals   []ArrivalRecord   `json:"arrivals,omitempty"`
	Amplitudes []AmplitudeRecord `json:"amplitudes,omitempty"`

	// StationCoords is populated on demand via AttachStationCoords, never
	// at parse time.
	StationCoords map[string]geo.Point `json:"station_coords,omitempty"`

	Source   string    `json:"source,omitempty"` // file path or topic/partition/offset
	ParsedAt time.Time `json:"parsed_at"`
}

// Epicenter returns the event's computed location, or false when the
// bulletin carried no hypocenter coordinates.
func (e *Event) Epicenter() (geo.Point, bool) {
	if e.Latitude == nil || e.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *e.Latitude, Lon: *e.Longitude}, true
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
