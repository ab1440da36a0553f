package cmd_test

import (
	"testing"
	"time"

	"tracking/cmd"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Equal(t, uint64(0), cfg.SimulationSeed)
	assert.InDelta(t, 1.0, cfg.SimulationSpeed, 1e-9)
	assert.Equal(t, 5*time.Minute, cfg.DeliveredOrderTTL)
	assert.Equal(t, 720*time.Hour, cfg.HistoryRetention)
	assert.False(t, cfg.UsePostgres())
	assert.False(t, cfg.UseKafka())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	cfg, err := cmd.LoadConfig(env(map[string]string{
		"HTTP_PORT":           "9000",
		"DB_HOST":             "db",
		"DB_USER":             "app",
		"DB_PASSWORD":         "secret",
		"DB_NAME":             "tracking",
		"KAFKA_HOST":          "kafka:9092",
		"SIMULATION_SEED":     "42",
		"SIMULATION_SPEED":    "4",
		"DELIVERED_ORDER_TTL": "30s",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.True(t, cfg.UsePostgres())
	assert.True(t, cfg.UseKafka())
	assert.Equal(t, uint64(42), cfg.SimulationSeed)
	assert.InDelta(t, 4.0, cfg.SimulationSpeed, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.DeliveredOrderTTL)

	pg := cfg.Postgres()
	assert.Equal(t, "db", pg.Host)
	assert.Equal(t, "5432", pg.Port)
	assert.Equal(t, "tracking", pg.Name)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SIMULATION_SEED", "-1"},
		{"SIMULATION_SPEED", "fast"},
		{"SIMULATION_SPEED", "0"},
		{"DELIVERED_ORDER_TTL", "soon"},
		{"HISTORY_RETENTION", "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := cmd.LoadConfig(env(map[string]string{tt.key: tt.value}))

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
