package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// EnrichEvent assigns the deterministic ID and stamps ParsedAt on a parsed
// event. Reprocessing the same bulletin produces the same ID, which keeps
// downstream upserts idempotent under replay.
func EnrichEvent(e *Event) {
	e.ID = generateID(e)
	e.ParsedAt = clock.Now()
}

// generateID hashes the event's key origin fields. Fields the bulletin left
// blank hash as empty so partially-located events still get stable IDs.
func generateID(e *Event) string {
	origin := ""
	if e.OriginTime != nil {
		origin = e.OriginTime.UTC().Format(time.RFC3339Nano)
	}
	input := fmt.Sprintf("%s|%s|%s|%s",
		origin, floatKey(e.Latitude), floatKey(e.Longitude), floatKey(e.Magnitude))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if e.EventType == "" {
		return "quake-" + short
	}
	return "quake-" + e.EventType + "-" + short
}

func floatKey(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.4f", *v)
}

// SerializeEvent marshals an event into the sink-topic form: JSON value,
// event ID key, and routing headers.
func SerializeEvent(e *Event) (OutputEvent, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize event: %w", err)
	}
	return OutputEvent{
		Key:   []byte(e.ID),
		Value: data,
		Headers: map[string]string{
			"event_type": e.EventType,
			"parsed_at":  e.ParsedAt.Format(time.RFC3339),
		},
	}, nil
}
