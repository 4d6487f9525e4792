// Package station reads station-coordinate files into a directory that
// resolves station codes to coordinates for event enrichment.
//
// The file format is row-oriented: whitespace-separated by default, or
// split on an explicit delimiter (quote-aware). Column positions are
// configurable and 1-indexed, matching the convention of the coordinate
// files shipped alongside seismic networks.
package station

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mantlewave/quake-data-etl/internal/geo"
)

// ReadOptions configures how a coordinate file is split into columns.
// The zero value reads whitespace-separated rows with station, latitude,
// and longitude in the first three columns.
type ReadOptions struct {
	// Delimiter splits rows when non-zero; otherwise rows split on any
	// run of whitespace.
	Delimiter rune

	// 1-indexed column positions. Zero means the default (1, 2, 3).
	StationCol int
	LatCol     int
	LonCol     int
}

func (o ReadOptions) normalized() ReadOptions {
	if o.StationCol == 0 {
		o.StationCol = 1
	}
	if o.LatCol == 0 {
		o.LatCol = 2
	}
	if o.LonCol == 0 {
		o.LonCol = 3
	}
	return o
}

// Directory maps station codes to coordinates. It implements
// domain.StationLocator.
type Directory struct {
	coords map[string]geo.Point
}

// Locate resolves a station code.
func (d *Directory) Locate(station string) (geo.Point, bool) {
	p, ok := d.coords[station]
	return p, ok
}

// Len reports the number of known stations.
func (d *Directory) Len() int { return len(d.coords) }

// All returns a copy of the full mapping, for callers that attach a whole
// directory snapshot to an event.
func (d *Directory) All() map[string]geo.Point {
	out := make(map[string]geo.Point, len(d.coords))
	for k, v := range d.coords {
		out[k] = v
	}
	return out
}

// Read parses a coordinate file. A malformed row fails with its 1-indexed
// line number; later rows for the same station supersede earlier ones.
func Read(r io.Reader, opts ReadOptions) (*Directory, error) {
	opts = opts.normalized()

	var rows [][]string
	if opts.Delimiter != 0 {
		cr := csv.NewReader(r)
		cr.Comma = opts.Delimiter
		cr.TrimLeadingSpace = true
		cr.FieldsPerRecord = -1
		var err error
		rows, err = cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read coordinate file: %w", err)
		}
	} else {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read coordinate file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			rows = append(rows, strings.Fields(line))
		}
	}

	coords := make(map[string]geo.Point, len(rows))
	for i, row := range rows {
		sta, err := column(row, opts.StationCol)
		if err != nil {
			return nil, fmt.Errorf("coordinate file line %d: %w", i+1, err)
		}
		latStr, err := column(row, opts.LatCol)
		if err != nil {
			return nil, fmt.Errorf("coordinate file line %d: %w", i+1, err)
		}
		lonStr, err := column(row, opts.LonCol)
		if err != nil {
			return nil, fmt.Errorf("coordinate file line %d: %w", i+1, err)
		}

		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate file line %d: latitude %q: %w", i+1, latStr, err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate file line %d: longitude %q: %w", i+1, lonStr, err)
		}
		coords[sta] = geo.Point{Lat: lat, Lon: lon}
	}
	return &Directory{coords: coords}, nil
}

// ReadFile reads a coordinate file from disk.
func ReadFile(path string, opts ReadOptions) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coordinate file: %w", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// column fetches the trimmed 1-indexed column from a row.
func column(row []string, col int) (string, error) {
	if col < 1 || col > len(row) {
		return "", fmt.Errorf("column %d out of range (%d columns)", col, len(row))
	}
	v := strings.TrimSpace(row[col-1])
	if v == "" {
		return "", fmt.Errorf("column %d is empty", col)
	}
	return v, nil
}
