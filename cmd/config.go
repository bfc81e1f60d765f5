package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"evashoes/internal/core/domain/model/ledger"
	"evashoes/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort               = "8080"
	defaultDBSslMode              = "disable"
	defaultKafkaOrderChangedTopic = "orders.status_changed"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	JWTSecret              string
	LedgerMode             string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RedisAddr              string
	StatsReportSchedule    string
	OutboxRelaySchedule    string
}

// LoadConfig reads envFile into the process environment when it exists, then builds
// the Config from environment variables. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	config := Config{
		HTTPPort:               envOrDefault("HTTP_PORT", defaultHTTPPort),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 os.Getenv("DB_PORT"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOrDefault("DB_SSLMODE", defaultDBSslMode),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		LedgerMode:             os.Getenv("LEDGER_MODE"),
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: envOrDefault("KAFKA_ORDER_CHANGED_TOPIC", defaultKafkaOrderChangedTopic),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		StatsReportSchedule:    os.Getenv("STATS_REPORT_SCHEDULE"),
		OutboxRelaySchedule:    os.Getenv("OUTBOX_RELAY_SCHEDULE"),
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errList []error

	required := []struct {
		name  string
		value string
	}{
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"JWT_SECRET", c.JWTSecret},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(r.name))
		}
	}

	if _, err := ledger.ParseMode(c.LedgerMode); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// Ledger returns the parsed LEDGER_MODE. Call after Validate.
func (c Config) Ledger() ledger.Mode {
	mode, err := ledger.ParseMode(c.LedgerMode)
	if err != nil {
		return ledger.PerOrder
	}
	return mode
}

// DSN is the libpq connection string of the database.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
