package cmd_test

import (
	"testing"

	"storefront/cmd"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := cmd.LoadConfig(env(map[string]string{}))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, cmd.StoragePostgres, config.Storage)
	assert.Equal(t, "disable", config.DBSslMode)
	assert.Equal(t, "0.00", config.ShippingFee.String())
	assert.Equal(t, 1024, config.NotifyQueueSize)
	assert.Equal(t, jobs.DefaultRelaySpec, config.NotifyRelaySpec)
	assert.Empty(t, config.KafkaBrokers)
}

func TestLoadConfig_ParsesEveryKey(t *testing.T) {
	config, err := cmd.LoadConfig(env(map[string]string{
		"HTTP_PORT":                "9090",
		"DB_HOST":                  "db",
		"DB_PORT":                  "5432",
		"DB_USER":                  "shop",
		"DB_PASSWORD":              "secret",
		"DB_NAME":                  "storefront",
		"DB_SSLMODE":               "require",
		"STORAGE":                  " Memory ",
		"REDIS_ADDR":               "redis:6379",
		"KAFKA_BROKERS":            "k1:9092, k2:9092,",
		"KAFKA_ORDER_EVENTS_TOPIC": "order-events",
		"SHIPPING_FEE":             "15000.5",
		"NOTIFY_QUEUE_SIZE":        "64",
		"NOTIFY_RELAY_SPEC":        "*/5 * * * * *",
		"STAFF_TOKEN":              "staff",
	}))

	require.NoError(t, err)
	assert.Equal(t, "9090", config.HTTPPort)
	assert.Equal(t, cmd.StorageMemory, config.Storage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, config.KafkaBrokers)
	assert.Equal(t, "order-events", config.KafkaOrderEventsTopic)
	assert.Equal(t, "15000.50", config.ShippingFee.String())
	assert.Equal(t, 64, config.NotifyQueueSize)
	assert.Equal(t, "*/5 * * * * *", config.NotifyRelaySpec)
	assert.Equal(t, "staff", config.StaffToken)
	assert.Equal(t,
		"host=db port=5432 user=shop password=secret dbname=storefront sslmode=require",
		config.DSN())
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown storage":       {"STORAGE": "sqlite"},
		"negative shipping fee": {"SHIPPING_FEE": "-1"},
		"malformed shipping":    {"SHIPPING_FEE": "abc"},
		"zero queue size":       {"NOTIFY_QUEUE_SIZE": "0"},
		"brokers without topic": {"KAFKA_BROKERS": "k1:9092"},
	}

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := cmd.LoadConfig(env(values))
			require.Error(t, err)
		})
	}
}
