package nordic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mantlewave/quake-data-etl/internal/domain"
)

// Format selects the phase-line layout of a bulletin.
type Format int

const (
	Format1 Format = 1 // legacy layout, Seisan < 12
	Format2 Format = 2 // revised layout
)

// ErrUnsupportedFormat is returned for any format other than 1 or 2, before
// a single line is read.
var ErrUnsupportedFormat = errors.New("sfile format must be 1 or 2")

// ErrFinalized is returned when lines are fed to, or a second event taken
// from, an already-finalized parser.
var ErrFinalized = errors.New("parser already finalized")

// Valid reports whether f is a known phase-line layout.
func (f Format) Valid() bool { return f == Format1 || f == Format2 }

type parseState int

const (
	stateEmpty parseState = iota
	stateAccumulating
	stateFinalized
)

// Parser folds the lines of one bulletin into a single event. The zero
// value is not usable; construct with NewParser.
//
// The accumulator is a three-state machine (empty, accumulating,
// finalized). Merge-type lines overwrite only the fields they carry a value
// for, so a later hypocenter line supersedes an earlier one field-wise and
// an absent column never clears anything. Phase lines append in input
// order.
type Parser struct {
	format       Format
	skipArrivals bool

	state  parseState
	event  *domain.Event
	origin *time.Time
}

// NewParser returns a parser for one bulletin in the given format.
// skipArrivals drops phase/amplitude lines, for callers that only need
// origin parameters.
func NewParser(format Format, skipArrivals bool) (*Parser, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("format %d: %w", format, ErrUnsupportedFormat)
	}
	return &Parser{
		format:       format,
		skipArrivals: skipArrivals,
		event:        &domain.Event{},
	}, nil
}

// Feed folds one raw line into the in-progress event. Blank lines are
// skipped before classification. A FormatError aborts this event; the
// parser is unusable afterwards.
func (p *Parser) Feed(line string) error {
	if p.state == stateFinalized {
		return ErrFinalized
	}
	if strings.TrimSpace(line) == "" {
		return nil
	}
	p.state = stateAccumulating

	// The switch names every record type in the format contract so a new
	// type shows up here as a visible gap, not a silently-ignored line.
	switch lt := Classify(line); lt {
	case LineHypocenter:
		f, err := decodeHypocenter(line)
		if err != nil {
			return err
		}
		p.mergeHypocenter(f)
	case LineComment:
		p.event.Comments = append(p.event.Comments, decodeComment(line))
	case LinePhase:
		if p.skipArrivals {
			return nil
		}
		rec, err := decodePhase(line, p.format, p.origin)
		if err != nil {
			return err
		}
		if rec.isAmplitude {
			p.event.Amplitudes = append(p.event.Amplitudes, domain.AmplitudeRecord{ArrivalRecord: rec.arrival})
		} else {
			p.event.Arrivals = append(p.event.Arrivals, rec.arrival)
		}
	case LineWaveform:
		p.event.WaveformFiles = append(p.event.WaveformFiles, decodeWaveform(line))
	case LineError:
		f, err := decodeError(line)
		if err != nil {
			return err
		}
		p.mergeError(f)
	case LineFaultPlane:
		fp, err := decodeFaultPlane(line)
		if err != nil {
			return err
		}
		p.event.FaultPlane = &fp
	case LineExplosion:
		ex, err := decodeExplosion(line)
		if err != nil {
			return err
		}
		p.event.Explosion = &ex
	case LineMacroRef:
		p.event.MacroFile = decodeMacroRef(line)
	case LineMacroseismic, LineHighAccuracy, LineID, LineMomentTensor, LinePicture, LineSpectral:
		// Recognized by the format but carry no modeled fields yet.
	case LineUnsupported:
		// Header/'7' lines and similar; skipped by contract.
	}
	return nil
}

// Finalize ends accumulation and returns the event. The parser accepts no
// further lines; once a field is set it was never cleared during the
// event's lifetime.
func (p *Parser) Finalize() (*domain.Event, error) {
	if p.state == stateFinalized {
		return nil, ErrFinalized
	}
	p.state = stateFinalized
	return p.event, nil
}

// Parse reads one complete bulletin and returns the accumulated event.
func (p *Parser) Parse(r io.Reader) (*domain.Event, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := p.Feed(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read bulletin: %w", err)
	}
	return p.Finalize()
}

// ParseFile parses one Sfile from disk, recording the path as the event's
// source.
func ParseFile(path string, format Format) (*domain.Event, error) {
	p, err := NewParser(format, false)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sfile: %w", err)
	}
	defer f.Close()

	ev, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	ev.Source = path
	return ev, nil
}

// mergeHypocenter folds a type 1 line in. The origin time is also threaded
// into subsequent phase decodes so their arrival times become absolute.
func (p *Parser) mergeHypocenter(f hypocenterFields) {
	origin := f.OriginTime
	p.event.OriginTime = &origin
	p.origin = &origin

	if f.DistanceIndicator != "" {
		p.event.DistanceIndicator = f.DistanceIndicator
	}
	if f.EventType != "" {
		p.event.EventType = f.EventType
	}
	if f.Latitude != nil {
		p.event.Latitude = f.Latitude
	}
	if f.Longitude != nil {
		p.event.Longitude = f.Longitude
	}
	if f.Depth != nil {
		p.event.Depth = f.Depth
	}
	p.event.FixedDepth = f.FixedDepth
	if f.Agency != "" {
		p.event.Agency = f.Agency
	}
	if f.StationCount != nil {
		p.event.StationCount = f.StationCount
	}
	if f.RMS != nil {
		p.event.RMS = f.RMS
	}
	if f.Magnitude != nil {
		p.event.Magnitude = f.Magnitude
	}
	if f.MagnitudeType != "" {
		p.event.MagnitudeType = f.MagnitudeType
	}
	if f.MagnitudeAgency != "" {
		p.event.MagnitudeAgency = f.MagnitudeAgency
	}
}

func (p *Parser) mergeError(f errorFields) {
	if f.AzimuthalGap != nil {
		p.event.AzimuthalGap = f.AzimuthalGap
	}
	if f.OriginTimeErr != nil {
		p.event.OriginTimeErr = f.OriginTimeErr
	}
	if f.LatErr != nil {
		p.event.LatErr = f.LatErr
	}
	if f.LonErr != nil {
		p.event.LonErr = f.LonErr
	}
	if f.DepthErr != nil {
		p.event.DepthErr = f.DepthErr
	}
}
