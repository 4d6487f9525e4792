// Package catalog groups parsed events into filterable collections and
// loads bulletin files concurrently from disk.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mantlewave/quake-data-etl/internal/domain"
	"github.com/mantlewave/quake-data-etl/internal/nordic"
)

// Catalog is an ordered collection of events.
type Catalog struct {
	events []*domain.Event
}

// New builds a catalog from the given events.
func New(events ...*domain.Event) *Catalog {
	c := &Catalog{}
	c.events = append(c.events, events...)
	return c
}

// Add appends an event.
func (c *Catalog) Add(e *domain.Event) {
	c.events = append(c.events, e)
}

// Len reports the number of events.
func (c *Catalog) Len() int { return len(c.events) }

// Events returns the events in insertion order.
func (c *Catalog) Events() []*domain.Event { return c.events }

// FilterDateRange returns a new catalog containing the events whose origin
// date falls within [start, end], compared by calendar date. Events without
// an origin time are dropped.
func (c *Catalog) FilterDateRange(start, end time.Time) *Catalog {
	startDay := truncateDay(start)
	endDay := truncateDay(end)

	out := New()
	for _, e := range c.events {
		if e.OriginTime == nil {
			continue
		}
		day := truncateDay(*e.OriginTime)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out.Add(e)
	}
	return out
}

// FilterBoundingBox returns a new catalog containing the events whose
// epicenter lies within the inclusive lat/lon box. Events without an
// epicenter are dropped.
func (c *Catalog) FilterBoundingBox(minLat, maxLat, minLon, maxLon float64) *Catalog {
	out := New()
	for _, e := range c.events {
		p, ok := e.Epicenter()
		if !ok {
			continue
		}
		if p.Lat < minLat || p.Lat > maxLat || p.Lon < minLon || p.Lon > maxLon {
			continue
		}
		out.Add(e)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FileError records a file that failed to parse during a bulk load.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error { return e.Err }

// LoadFiles parses the given bulletin files with up to workers parallel
// readers and returns the successfully parsed events in input order.
// Failed files are logged, counted in the returned FileError slice, and do
// not abort the load.
func LoadFiles(ctx context.Context, paths []string, format nordic.Format, workers int, logger *slog.Logger) (*Catalog, []FileError) {
	if workers < 1 {
		workers = 1
	}

	type result struct {
		event *domain.Event
		err   *FileError
	}

	// Results are collected by index so the catalog preserves input order
	// regardless of which file finishes first.
	results := make([]result, len(paths))

	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range paths {
		p.Go(func() {
			if err := ctx.Err(); err != nil {
				results[i] = result{err: &FileError{Path: path, Err: err}}
				return
			}
			ev, err := nordic.ParseFile(path, format)
			if err != nil {
				logger.Warn("failed to parse bulletin file",
					slog.String("path", path),
					slog.String("error", err.Error()))
				results[i] = result{err: &FileError{Path: path, Err: err}}
				return
			}
			results[i] = result{event: ev}
		})
	}
	p.Wait()

	catalog := New()
	var failures []FileError
	for _, r := range results {
		if r.err != nil {
			failures = append(failures, *r.err)
			continue
		}
		catalog.Add(r.event)
	}
	return catalog, failures
}
