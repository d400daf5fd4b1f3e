package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zone names must resolve in minimal containers

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"

	"github.com/couchcryptid/wildfire-dashboard/internal/domain"
)

// Snapshot source kinds.
const (
	SourceDir  = "dir"
	SourceHTTP = "http"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Snapshot source configuration.
	DataSource    string
	DataDir       string
	DataBaseURL   string
	DataTimeout   time.Duration
	DataCacheSize int
	DataWatch     bool

	// DateKey pins every view to one snapshot when set.
	DateKey         domain.DateKey
	DateLocation    *time.Location
	DisplayLocation *time.Location

	// RefreshSchedule is a cron spec; empty disables scheduled refreshes.
	RefreshSchedule string

	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaNoticeTopic string
	KafkaGroupID     string

	ResizeDebounce time.Duration
	// LiveGrace is how long a live session may wait for its event stream
	// subscriber before it is discarded.
	LiveGrace    time.Duration
	ExportWidth  int
	ExportHeight int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	dataTimeout, err := parsePositiveDuration("DATA_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	debounce, err := parsePositiveDuration("RESIZE_DEBOUNCE", "100ms")
	if err != nil {
		return nil, err
	}
	liveGrace, err := parsePositiveDuration("LIVE_SUBSCRIBE_GRACE", "30s")
	if err != nil {
		return nil, err
	}
	dataWatch, err := parseBool("DATA_WATCH", true)
	if err != nil {
		return nil, err
	}
	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseInt("DATA_CACHE_SIZE", 256, 0)
	if err != nil {
		return nil, err
	}
	exportWidth, err := parseInt("EXPORT_WIDTH", 1200, 1)
	if err != nil {
		return nil, err
	}
	exportHeight, err := parseInt("EXPORT_HEIGHT", 1600, 1)
	if err != nil {
		return nil, err
	}

	dateLoc, err := parseLocation("DATE_TIMEZONE", "UTC")
	if err != nil {
		return nil, err
	}
	displayLoc, err := parseLocation("DISPLAY_TIMEZONE", "America/Denver")
	if err != nil {
		return nil, err
	}

	var dateKey domain.DateKey
	if s := os.Getenv("DATE_KEY"); s != "" {
		dateKey, err = domain.ParseDateKey(s)
		if err != nil {
			return nil, fmt.Errorf("invalid DATE_KEY: %w", err)
		}
	}

	schedule := sharedcfg.EnvOrDefault("REFRESH_SCHEDULE", "CRON_TZ=America/Denver 45 7 * * *")
	if v, ok := os.LookupEnv("REFRESH_SCHEDULE"); ok && v == "" {
		schedule = ""
	}
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("invalid REFRESH_SCHEDULE: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:    sharedcfg.EnvOrDefault("DATA_SOURCE", SourceDir),
		DataDir:       sharedcfg.EnvOrDefault("DATA_DIR", "./data"),
		DataBaseURL:   os.Getenv("DATA_BASE_URL"),
		DataTimeout:   dataTimeout,
		DataCacheSize: cacheSize,
		DataWatch:     dataWatch,

		DateKey:         dateKey,
		DateLocation:    dateLoc,
		DisplayLocation: displayLoc,
		RefreshSchedule: schedule,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaNoticeTopic: sharedcfg.EnvOrDefault("KAFKA_NOTICE_TOPIC", "fire-snapshots"),
		KafkaGroupID:     sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "wildfire-dashboard"),

		ResizeDebounce: debounce,
		LiveGrace:      liveGrace,
		ExportWidth:    exportWidth,
		ExportHeight:   exportHeight,
	}

	switch cfg.DataSource {
	case SourceDir:
	case SourceHTTP:
		if cfg.DataBaseURL == "" {
			return nil, errors.New("DATA_BASE_URL is required when DATA_SOURCE is http")
		}
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: must be dir or http", cfg.DataSource)
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaNoticeTopic == "" {
			return nil, errors.New("KAFKA_NOTICE_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseInt(key string, fallback, minimum int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < minimum {
		return 0, fmt.Errorf("invalid %s: must be an integer >= %d", key, minimum)
	}
	return n, nil
}

func parseLocation(key, fallback string) (*time.Location, error) {
	name := sharedcfg.EnvOrDefault(key, fallback)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return loc, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: must be a boolean", key)
	}
	return v, nil
}
