package cmd

import (
	"fmt"
	"strings"
	"time"
)

// Config is read from the environment. Empty optional values select the
// defaults documented on each field.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the package catalog cache when set.
	RedisAddr       string
	CatalogCacheTTL string // default 5m

	// KafkaHost is a comma separated broker list. Without it order change
	// events are only logged.
	KafkaHost              string
	KafkaOrderChangedTopic string // default "order.changed"

	GatewayURL     string
	GatewayAPIKey  string
	GatewayTimeout string // default 10s

	LookupTimeout     string // default 3s
	ReconcileSchedule string // default "@every 30s"
}

func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

func (c Config) KafkaBrokers() []string {
	if c.KafkaHost == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c Config) OrderChangedTopic() string {
	if c.KafkaOrderChangedTopic == "" {
		return "order.changed"
	}
	return c.KafkaOrderChangedTopic
}

func (c Config) CacheTTL() (time.Duration, error) {
	return durationOr("CATALOG_CACHE_TTL", c.CatalogCacheTTL, 5*time.Minute)
}

func (c Config) ChargeTimeout() (time.Duration, error) {
	return durationOr("GATEWAY_TIMEOUT", c.GatewayTimeout, 10*time.Second)
}

func (c Config) Lookup() (time.Duration, error) {
	return durationOr("LOOKUP_TIMEOUT", c.LookupTimeout, 3*time.Second)
}

func durationOr(key, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, raw)
	}
	return d, nil
}
