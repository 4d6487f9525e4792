// Command validate batch-checks Nordic-format bulletin files before they
// are fed into the pipeline. It reads one file path per line from stdin,
// parses each file, and writes a JSON report to stdout.
//
// Usage:
//
//	find ./bulletins -name '*.S*' | go run ./cmd/validate
//
// SFILE_FORMAT and PARSE_WORKERS are honored the same way the service
// honors them. The exit code is 1 when any file fails to parse.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mantlewave/quake-data-etl/internal/catalog"
	"github.com/mantlewave/quake-data-etl/internal/domain"
	"github.com/mantlewave/quake-data-etl/internal/nordic"
)

// report is the JSON document written to stdout.
type report struct {
	Checked  int           `json:"checked"`
	Parsed   int           `json:"parsed"`
	Failed   int           `json:"failed"`
	Failures []fileFailure `json:"failures,omitempty"`
	Events   []eventLine   `json:"events,omitempty"`
}

type fileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// eventLine is a one-line summary per parsed event.
type eventLine struct {
	Path       string   `json:"path"`
	ID         string   `json:"id"`
	OriginTime string   `json:"origin_time,omitempty"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lon,omitempty"`
	Magnitude  *float64 `json:"mag,omitempty"`
	Arrivals   int      `json:"arrivals"`
	Amplitudes int      `json:"amplitudes"`
}

func main() {
	if code := run(os.Stdin, os.Stdout); code != 0 {
		os.Exit(code)
	}
}

func run(in io.Reader, out io.Writer) int {
	format, err := formatFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	workers := workersFromEnv()

	var paths []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if path := strings.TrimSpace(scanner.Text()); path != "" {
			paths = append(paths, path)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read stdin: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cat, failures := catalog.LoadFiles(context.Background(), paths, format, workers, logger)

	rep := report{
		Checked: len(paths),
		Parsed:  cat.Len(),
		Failed:  len(failures),
	}
	for _, f := range failures {
		rep.Failures = append(rep.Failures, fileFailure{Path: f.Path, Error: f.Err.Error()})
	}
	for _, e := range cat.Events() {
		domain.EnrichEvent(e)
		line := eventLine{
			Path:       e.Source,
			ID:         e.ID,
			Latitude:   e.Latitude,
			Longitude:  e.Longitude,
			Magnitude:  e.Magnitude,
			Arrivals:   len(e.Arrivals),
			Amplitudes: len(e.Amplitudes),
		}
		if e.OriginTime != nil {
			line.OriginTime = e.OriginTime.Format("2006-01-02T15:04:05.000")
		}
		rep.Events = append(rep.Events, line)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: write report: %v\n", err)
		return 1
	}

	if rep.Failed > 0 {
		return 1
	}
	return 0
}

func formatFromEnv() (nordic.Format, error) {
	s := os.Getenv("SFILE_FORMAT")
	if s == "" {
		return nordic.Format1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("SFILE_FORMAT %q: %w", s, nordic.ErrUnsupportedFormat)
	}
	f := nordic.Format(n)
	if !f.Valid() {
		return 0, fmt.Errorf("SFILE_FORMAT %q: %w", s, nordic.ErrUnsupportedFormat)
	}
	return f, nil
}

func workersFromEnv() int {
	if n, err := strconv.Atoi(os.Getenv("PARSE_WORKERS")); err == nil && n > 0 {
		return n
	}
	return 4
}
