package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/jobs"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	defaultNotifyQueueSize = 1024
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	Storage    string

	RedisAddr     string
	RedisPassword string

	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	ShippingFee     kernel.Money
	NotifyQueueSize int
	NotifyRelaySpec string
	StaffToken      string
}

// LoadConfig reads the configuration through getenv, applying defaults for optional keys.
func LoadConfig(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:              getenv("HTTP_PORT"),
		DBHost:                getenv("DB_HOST"),
		DBPort:                getenv("DB_PORT"),
		DBUser:                getenv("DB_USER"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                getenv("DB_NAME"),
		DBSslMode:             getenv("DB_SSLMODE"),
		Storage:               strings.ToLower(strings.TrimSpace(getenv("STORAGE"))),
		RedisAddr:             getenv("REDIS_ADDR"),
		RedisPassword:         getenv("REDIS_PASSWORD"),
		KafkaBrokers:          splitList(getenv("KAFKA_BROKERS")),
		KafkaOrderEventsTopic: getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		ShippingFee:           kernel.Zero,
		NotifyQueueSize:       defaultNotifyQueueSize,
		NotifyRelaySpec:       getenv("NOTIFY_RELAY_SPEC"),
		StaffToken:            getenv("STAFF_TOKEN"),
	}

	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.DBSslMode == "" {
		config.DBSslMode = "disable"
	}
	if config.NotifyRelaySpec == "" {
		config.NotifyRelaySpec = jobs.DefaultRelaySpec
	}

	switch config.Storage {
	case "":
		config.Storage = StoragePostgres
	case StoragePostgres, StorageMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, config.Storage)
	}

	if raw := getenv("SHIPPING_FEE"); raw != "" {
		fee, err := kernel.MoneyFromString(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SHIPPING_FEE: %w", err)
		}
		config.ShippingFee = fee
	}

	if raw := getenv("NOTIFY_QUEUE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return Config{}, fmt.Errorf("NOTIFY_QUEUE_SIZE must be a positive integer, got %q", raw)
		}
		config.NotifyQueueSize = size
	}

	if len(config.KafkaBrokers) > 0 && config.KafkaOrderEventsTopic == "" {
		return Config{}, fmt.Errorf("KAFKA_ORDER_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return config, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
