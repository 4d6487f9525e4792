package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mantlewave/quake-data-etl/internal/domain"
	"github.com/mantlewave/quake-data-etl/internal/nordic"
	"github.com/mantlewave/quake-data-etl/internal/observability"
)

// BulletinTransformer implements Transformer by parsing Nordic-format
// bulletin payloads, with optional station-coordinate enrichment and
// network magnitude recomputation.
type BulletinTransformer struct {
	format    nordic.Format
	locator   domain.StationLocator
	estimator *domain.MagnitudeEstimator
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewTransformer creates a BulletinTransformer. Pass a nil locator to
// disable coordinate enrichment and a nil estimator to keep the reported
// magnitude as-is.
func NewTransformer(format nordic.Format, locator domain.StationLocator, estimator *domain.MagnitudeEstimator, logger *slog.Logger, metrics *observability.Metrics) *BulletinTransformer {
	return &BulletinTransformer{
		format:    format,
		locator:   locator,
		estimator: estimator,
		logger:    logger,
		metrics:   metrics,
	}
}

func (t *BulletinTransformer) Transform(_ context.Context, raw domain.RawBulletin) (domain.OutputEvent, error) {
	parser, err := nordic.NewParser(t.format, false)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	payload := string(raw.Value)
	for _, line := range strings.Split(payload, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.metrics.RecordLines.WithLabelValues(nordic.Classify(line).String()).Inc()
	}

	event, err := parser.Parse(strings.NewReader(payload))
	if err != nil {
		t.metrics.ParseErrors.Inc()
		return domain.OutputEvent{}, fmt.Errorf("parse bulletin: %w", err)
	}
	event.Source = fmt.Sprintf("%s/%d/%d", raw.Topic, raw.Partition, raw.Offset)

	domain.EnrichEvent(event)
	t.attachCoordinates(event)
	t.recomputeMagnitude(event)

	return domain.SerializeEvent(event)
}

// attachCoordinates resolves station coordinates when a locator is
// configured. A missing station degrades gracefully: the event keeps its
// reported values and the miss is counted.
func (t *BulletinTransformer) attachCoordinates(event *domain.Event) {
	if t.locator == nil {
		return
	}
	if err := event.AttachStationCoords(t.locator); err != nil {
		if errors.Is(err, domain.ErrMissingStationCoordinates) {
			t.metrics.StationLookups.WithLabelValues("miss").Inc()
			t.logger.Warn("station coordinates incomplete", "error", err, "event_id", event.ID)
			return
		}
		if !errors.Is(err, domain.ErrNoArrivals) {
			t.logger.Warn("station lookup failed", "error", err, "event_id", event.ID)
		}
		return
	}
	t.metrics.StationLookups.WithLabelValues("hit").Inc()
}

// recomputeMagnitude replaces the reported magnitude with a network
// magnitude from the event's own amplitude readings when an estimator is
// configured. Events without usable amplitudes keep the reported value.
func (t *BulletinTransformer) recomputeMagnitude(event *domain.Event) {
	if t.estimator == nil {
		return
	}
	mag, err := t.estimator.NetworkMagnitude(event)
	if err != nil {
		if !errors.Is(err, domain.ErrNoUsableAmplitudes) {
			t.logger.Warn("magnitude recomputation failed", "error", err, "event_id", event.ID)
		}
		return
	}
	event.Magnitude = &mag
	event.MagnitudeType = "L"
}
