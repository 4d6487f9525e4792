package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mantlewave/quake-data-etl/internal/nordic"
)

const maxBatchSize = 1000

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Bulletin parsing configuration.
	SfileFormat  nordic.Format
	ParseWorkers int

	// Station coordinate file configuration. StationFile empty disables
	// coordinate enrichment.
	StationFile      string
	StationFileDelim rune
	StationCol       int
	StationLatCol    int
	StationLonCol    int

	// Magnitude recomputation configuration.
	MagnitudeRecompute   bool
	MagnitudeAggregation string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	if batchSize > maxBatchSize {
		return nil, fmt.Errorf("invalid BATCH_SIZE: %d exceeds maximum %d", batchSize, maxBatchSize)
	}

	flushInterval, err := parseDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	format, err := parseSfileFormat()
	if err != nil {
		return nil, err
	}

	parseWorkers, err := parsePositiveInt("PARSE_WORKERS", 4)
	if err != nil {
		return nil, err
	}

	delim, err := parseDelim()
	if err != nil {
		return nil, err
	}

	stationCol, err := parsePositiveInt("STATION_COL", 1)
	if err != nil {
		return nil, err
	}
	stationLatCol, err := parsePositiveInt("STATION_LAT_COL", 2)
	if err != nil {
		return nil, err
	}
	stationLonCol, err := parsePositiveInt("STATION_LON_COL", 3)
	if err != nil {
		return nil, err
	}

	aggregation := envOrDefault("MAGNITUDE_AGGREGATION", "mean")
	if aggregation != "mean" && aggregation != "median" {
		return nil, fmt.Errorf("MAGNITUDE_AGGREGATION must be mean or median, got %q", aggregation)
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "raw-seismic-bulletins"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "parsed-seismic-events"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "quake-data-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SfileFormat:  format,
		ParseWorkers: parseWorkers,

		StationFile:      os.Getenv("STATION_FILE"),
		StationFileDelim: delim,
		StationCol:       stationCol,
		StationLatCol:    stationLatCol,
		StationLonCol:    stationLonCol,

		MagnitudeRecompute:   os.Getenv("MAGNITUDE_RECOMPUTE") == "true",
		MagnitudeAggregation: aggregation,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseSfileFormat() (nordic.Format, error) {
	s := envOrDefault("SFILE_FORMAT", "1")
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

func parseDelim() (rune, error) {
	s := os.Getenv("STATION_FILE_DELIM")
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("STATION_FILE_DELIM must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
