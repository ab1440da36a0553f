package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tracking/internal/adapters/out/postgres"
	"tracking/internal/pkg/errs"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	SimulationSeed         uint64
	SimulationSpeed        float64
	DeliveredOrderTTL      time.Duration
	HistoryRetention       time.Duration
}

// LoadConfig reads the configuration through getenv, applying defaults to
// unset keys.
func LoadConfig(getenv func(string) string) (Config, error) {
	str := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		HTTPPort:               str("HTTP_PORT", "8080"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 str("DB_PORT", "5432"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              str("DB_SSLMODE", "disable"),
		KafkaHost:              getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic: str("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
	}

	var seedErr, speedErr, ttlErr, retentionErr error
	cfg.SimulationSeed, seedErr = strconv.ParseUint(str("SIMULATION_SEED", "0"), 10, 64)
	if seedErr != nil {
		seedErr = errs.NewValueIsInvalidErrorWithCause("SIMULATION_SEED", seedErr)
	}
	cfg.SimulationSpeed, speedErr = strconv.ParseFloat(str("SIMULATION_SPEED", "1"), 64)
	if speedErr == nil && cfg.SimulationSpeed <= 0 {
		speedErr = fmt.Errorf("%v is not positive", cfg.SimulationSpeed)
	}
	if speedErr != nil {
		speedErr = errs.NewValueIsInvalidErrorWithCause("SIMULATION_SPEED", speedErr)
	}
	cfg.DeliveredOrderTTL, ttlErr = parseDuration("DELIVERED_ORDER_TTL", str("DELIVERED_ORDER_TTL", "5m"))
	cfg.HistoryRetention, retentionErr = parseDuration("HISTORY_RETENTION", str("HISTORY_RETENTION", "720h"))

	if err := errors.Join(seedErr, speedErr, ttlErr, retentionErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseDuration(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s is not positive", d))
	}
	return d, nil
}

// UsePostgres reports whether the history lives in PostgreSQL.
func (c Config) UsePostgres() bool {
	return c.DBHost != ""
}

// UseKafka reports whether status changes are published to Kafka.
func (c Config) UseKafka() bool {
	return c.KafkaHost != ""
}

func (c Config) Postgres() postgres.ConnectionConfig {
	return postgres.ConnectionConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SslMode:  c.DBSslMode,
	}
}
