package nordic

import (
	"strconv"
	"strings"
	"time"

	"github.com/mantlewave/quake-data-etl/internal/domain"
)

// hypocenterFields is the typed partial update produced by a type 1 line.
// Pointer fields carry a value only when the bulletin column was non-blank,
// so a later hypocenter line overwrites exactly the fields it names.
type hypocenterFields struct {
	OriginTime        time.Time
	DistanceIndicator string
	EventType         string
	Latitude          *float64
	Longitude         *float64
	Depth             *float64
	FixedDepth        bool
	Agency            string
	StationCount      *int
	RMS               *float64
	Magnitude         *float64
	MagnitudeType     string
	MagnitudeAgency   string
}

// decodeHypocenter decodes a type 1 line. The six date/time sub-fields are
// mandatory; anything unparsable or out of calendar range is a FormatError
// that aborts this event only.
func decodeHypocenter(line string) (hypocenterFields, error) {
	var f hypocenterFields

	year, err := requireInt(line, 1, 5, LineHypocenter, "year")
	if err != nil {
		return f, err
	}
	month, err := requireInt(line, 6, 8, LineHypocenter, "month")
	if err != nil {
		return f, err
	}
	day, err := requireInt(line, 8, 10, LineHypocenter, "day")
	if err != nil {
		return f, err
	}
	hour, err := requireInt(line, 11, 13, LineHypocenter, "hour")
	if err != nil {
		return f, err
	}
	minute, err := requireInt(line, 13, 15, LineHypocenter, "minute")
	if err != nil {
		return f, err
	}
	second, err := floatField(line, 16, 20, LineHypocenter, "second")
	if err != nil {
		return f, err
	}
	var sec float64
	if second != nil {
		sec = *second
	}
	origin, err := composeTime(year, month, day, hour, minute, sec, LineHypocenter)
	if err != nil {
		return f, err
	}
	f.OriginTime = origin

	f.DistanceIndicator = field(line, 21, 22)
	f.EventType = field(line, 22, 23)

	if f.Latitude, err = floatField(line, 23, 30, LineHypocenter, "latitude"); err != nil {
		return f, err
	}
	if f.Longitude, err = floatField(line, 30, 38, LineHypocenter, "longitude"); err != nil {
		return f, err
	}
	if f.Depth, err = floatField(line, 38, 43, LineHypocenter, "depth"); err != nil {
		return f, err
	}
	f.FixedDepth = field(line, 43, 44) == "F"
	f.Agency = field(line, 45, 48)
	if f.StationCount, err = intField(line, 48, 51, LineHypocenter, "station_count"); err != nil {
		return f, err
	}
	if f.RMS, err = floatField(line, 51, 55, LineHypocenter, "rms"); err != nil {
		return f, err
	}
	if f.Magnitude, err = floatField(line, 55, 59, LineHypocenter, "magnitude"); err != nil {
		return f, err
	}
	f.MagnitudeType = field(line, 59, 60)
	f.MagnitudeAgency = field(line, 60, 63)
	return f, nil
}

// composeTime validates the six numeric sub-fields as a calendar instant.
// time.Date silently normalizes out-of-range components, which would turn a
// malformed bulletin into a plausible-looking wrong timestamp.
func composeTime(year, month, day, hour, minute int, sec float64, lt LineType) (time.Time, error) {
	formatErr := func(name string, got int) error {
		return &FormatError{Line: lt, Field: name, Value: strconv.Itoa(got), Err: errOutOfRange}
	}
	if month < 1 || month > 12 {
		return time.Time{}, formatErr("month", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, formatErr("day", day)
	}
	if hour < 0 || hour > 23 {
		return time.Time{}, formatErr("hour", hour)
	}
	if minute < 0 || minute > 59 {
		return time.Time{}, formatErr("minute", minute)
	}
	if sec < 0 || sec >= 61 {
		return time.Time{}, &FormatError{Line: lt, Field: "second", Value: "", Err: errOutOfRange}
	}
	whole := int(sec)
	nanos := int((sec - float64(whole)) * 1e9)
	t := time.Date(year, time.Month(month), day, hour, minute, whole, nanos, time.UTC)
	if t.Day() != day {
		// e.g. February 30 normalized into March.
		return time.Time{}, formatErr("day", day)
	}
	return t, nil
}

// decodeComment decodes a type 3 line: the fixed span is the comment text.
func decodeComment(line string) string {
	return strings.TrimSpace(field(line, 1, 80))
}

// decodeWaveform decodes a type 6 line holding a waveform file reference.
func decodeWaveform(line string) string {
	return field(line, 1, 79)
}

// errorFields is the typed partial update produced by a type E line.
// Blank sub-fields stay nil; zero is a valid recorded error.
type errorFields struct {
	AzimuthalGap  *float64
	OriginTimeErr *float64
	LatErr        *float64
	LonErr        *float64
	DepthErr      *float64
}

func decodeError(line string) (errorFields, error) {
	var f errorFields
	var err error
	if f.AzimuthalGap, err = floatField(line, 5, 8, LineError, "azimuthal_gap"); err != nil {
		return f, err
	}
	if f.OriginTimeErr, err = floatField(line, 14, 20, LineError, "origin_time_err"); err != nil {
		return f, err
	}
	if f.LatErr, err = floatField(line, 23, 30, LineError, "lat_err"); err != nil {
		return f, err
	}
	if f.LonErr, err = floatField(line, 31, 38, LineError, "lon_err"); err != nil {
		return f, err
	}
	if f.DepthErr, err = floatField(line, 38, 43, LineError, "depth_err"); err != nil {
		return f, err
	}
	return f, nil
}

func decodeFaultPlane(line string) (domain.FaultPlaneSolution, error) {
	var fp domain.FaultPlaneSolution
	var err error
	if fp.Strike, err = floatField(line, 1, 10, LineFaultPlane, "strike"); err != nil {
		return fp, err
	}
	if fp.Dip, err = floatField(line, 10, 20, LineFaultPlane, "dip"); err != nil {
		return fp, err
	}
	if fp.Rake, err = floatField(line, 20, 30, LineFaultPlane, "rake"); err != nil {
		return fp, err
	}
	if fp.StrikeErr, err = floatField(line, 30, 35, LineFaultPlane, "strike_err"); err != nil {
		return fp, err
	}
	if fp.DipErr, err = floatField(line, 35, 40, LineFaultPlane, "dip_err"); err != nil {
		return fp, err
	}
	if fp.RakeErr, err = floatField(line, 40, 45, LineFaultPlane, "rake_err"); err != nil {
		return fp, err
	}
	if fp.FitErr, err = floatField(line, 45, 50, LineFaultPlane, "fit_err"); err != nil {
		return fp, err
	}
	if fp.StationDistRatio, err = floatField(line, 50, 55, LineFaultPlane, "station_dist_ratio"); err != nil {
		return fp, err
	}
	if fp.AmplitudeRatio, err = floatField(line, 55, 60, LineFaultPlane, "amplitude_ratio"); err != nil {
		return fp, err
	}
	if fp.BadPolarities, err = intField(line, 60, 62, LineFaultPlane, "bad_polarities"); err != nil {
		return fp, err
	}
	if fp.BadAmplitudes, err = intField(line, 63, 65, LineFaultPlane, "bad_amplitudes"); err != nil {
		return fp, err
	}
	fp.Agency = field(line, 66, 69)
	fp.Program = field(line, 70, 77)
	fp.Quality = field(line, 77, 78)
	return fp, nil
}

func decodeExplosion(line string) (domain.ExplosionInfo, error) {
	var ex domain.ExplosionInfo
	var err error
	ex.Info = field(line, 1, 11)
	if ex.ChargeTonnes, err = floatField(line, 12, 22, LineExplosion, "charge"); err != nil {
		return ex, err
	}
	ex.Extra = field(line, 23, 77)
	return ex, nil
}

// decodeMacroRef returns the referenced macroseismic observation filename:
// the line's first whitespace-delimited token.
func decodeMacroRef(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// phaseRecord tags a decoded phase line with its once-made classification.
type phaseRecord struct {
	arrival     domain.ArrivalRecord
	isAmplitude bool
}

// decodePhase dispatches to the format-specific phase decoder. originDate
// is the origin time of a previously-seen hypocenter line, or nil when no
// hypocenter has appeared yet, leaving arrival times as time-of-day only.
func decodePhase(line string, format Format, originDate *time.Time) (phaseRecord, error) {
	switch format {
	case Format2:
		return decodePhaseFormat2(line, originDate)
	default:
		return decodePhaseFormat1(line, originDate)
	}
}

// decodePhaseFormat1 decodes the legacy (Seisan < 12) phase-line layout.
func decodePhaseFormat1(line string, originDate *time.Time) (phaseRecord, error) {
	var arr domain.ArrivalRecord
	arr.Station = field(line, 1, 6)
	arr.Instrument = field(line, 6, 7)
	arr.Component = field(line, 7, 8)
	arr.Quality = field(line, 9, 10)
	arr.Phase = field(line, 10, 14)
	arr.WeightIndicator = field(line, 14, 15)
	arr.Polarity = field(line, 16, 17)

	var err error
	if arr.Hour, err = intField(line, 18, 20, LinePhase, "hour"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Minute, err = intField(line, 20, 22, LinePhase, "minute"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Second, err = floatField(line, 22, 28, LinePhase, "second"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Amplitude, err = floatField(line, 33, 40, LinePhase, "amplitude"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Period, err = floatField(line, 41, 45, LinePhase, "period"); err != nil {
		return phaseRecord{}, err
	}
	if arr.AngleOfIncidence, err = floatField(line, 56, 60, LinePhase, "angle_of_incidence"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Residual, err = floatField(line, 63, 68, LinePhase, "residual"); err != nil {
		return phaseRecord{}, err
	}
	if arr.DistanceKm, err = floatField(line, 70, 75, LinePhase, "distance"); err != nil {
		return phaseRecord{}, err
	}
	if arr.AzimuthDeg, err = floatField(line, 75, 79, LinePhase, "azimuth"); err != nil {
		return phaseRecord{}, err
	}

	resolveArrivalTime(&arr, originDate)
	return phaseRecord{arrival: arr, isAmplitude: arr.Amplitude != nil}, nil
}

// decodePhaseFormat2 decodes the revised phase-line layout. The two
// parameter columns are context-dependent: amplitude/period for amplitude
// phases (IA*/AM*), back-azimuth/apparent-velocity for BAZ phases, and
// ignored otherwise.
func decodePhaseFormat2(line string, originDate *time.Time) (phaseRecord, error) {
	var arr domain.ArrivalRecord
	arr.Station = field(line, 1, 6)
	arr.Component = field(line, 6, 9)
	arr.Network = field(line, 10, 12)
	arr.Location = field(line, 12, 14)
	arr.Quality = field(line, 15, 16)
	arr.Phase = field(line, 16, 24)
	arr.WeightIndicator = field(line, 24, 25)
	arr.Polarity = field(line, 25, 26)

	var err error
	if arr.Hour, err = intField(line, 26, 28, LinePhase, "hour"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Minute, err = intField(line, 28, 30, LinePhase, "minute"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Second, err = floatField(line, 31, 37, LinePhase, "second"); err != nil {
		return phaseRecord{}, err
	}

	param1, err := floatField(line, 37, 44, LinePhase, "param1")
	if err != nil {
		return phaseRecord{}, err
	}
	param2, err := floatField(line, 44, 50, LinePhase, "param2")
	if err != nil {
		return phaseRecord{}, err
	}
	upper := strings.ToUpper(arr.Phase)
	switch {
	case strings.HasPrefix(upper, "IA") || strings.HasPrefix(upper, "AM"):
		arr.Amplitude = param1
		arr.Period = param2
	case strings.HasPrefix(upper, "BAZ"):
		arr.BackAzimuthDeg = param1
		arr.ApparentVelocityKmS = param2
	}

	arr.Agency = field(line, 51, 54)
	arr.Operator = field(line, 55, 58)
	if arr.AngleOfIncidence, err = floatField(line, 59, 63, LinePhase, "angle_of_incidence"); err != nil {
		return phaseRecord{}, err
	}
	if arr.Residual, err = floatField(line, 63, 68, LinePhase, "residual"); err != nil {
		return phaseRecord{}, err
	}
	if arr.DistanceKm, err = floatField(line, 70, 75, LinePhase, "distance"); err != nil {
		return phaseRecord{}, err
	}
	if arr.AzimuthDeg, err = floatField(line, 76, 79, LinePhase, "azimuth"); err != nil {
		return phaseRecord{}, err
	}

	resolveArrivalTime(&arr, originDate)
	return phaseRecord{arrival: arr, isAmplitude: arr.Amplitude != nil}, nil
}

// resolveArrivalTime makes the arrival absolute when both the origin date
// and the time-of-day components are known. Without an origin date the
// record intentionally keeps time-of-day only.
func resolveArrivalTime(arr *domain.ArrivalRecord, originDate *time.Time) {
	if originDate == nil || arr.Hour == nil || arr.Minute == nil {
		return
	}
	t, ok := arr.AbsoluteTime(*originDate)
	if !ok {
		return
	}
	arr.Time = &t
}

