package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/jobboard/config"
)

const notifications = "notifications"

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("MARKET_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 10*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.SessionBinding {
		t.Fatalf("HTTP.SessionBinding must be off by default")
	}

	// Metrics
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "marketplace" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Postgres
	if c.Postgres.DSN == "" {
		t.Fatalf("Postgres.DSN should have default, got empty")
	}
	if c.Postgres.MaxConns != 10 || !c.Postgres.Migrate {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Redis
	if c.Redis.Addr != "redis:6379" || c.Redis.DB != 0 || c.Redis.KeyPrefix != "market" || c.Redis.OpTimeout != 500*time.Millisecond {
		t.Fatalf("Redis defaults wrong: %+v", c.Redis)
	}

	// Cache и Lock
	if c.Cache.Backend != "redis" || c.Cache.Capacity != 10000 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}
	if c.Cache.TTL != 10*time.Minute || c.Cache.SessionTTL != 59*time.Minute {
		t.Fatalf("Cache TTL defaults wrong: %+v", c.Cache)
	}
	if c.Lock.TTL != 30*time.Second {
		t.Fatalf("Lock.TTL: want 30s, got %v", c.Lock.TTL)
	}

	// Kafka
	if !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka.Brokers: want [kafka:9092], got %v", c.Kafka.Brokers)
	}
	if c.Kafka.Topic != notifications || c.Kafka.GroupID != notifications || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.ProcessTimeout != 5*time.Second || c.Kafka.RetryInitial != 1*time.Second ||
		c.Kafka.RetryMax != 30*time.Second || c.Kafka.MaxWait != time.Second {
		t.Fatalf("Kafka timeouts wrong: %+v", c.Kafka)
	}

	// S3 отключён без endpoint
	if c.S3.Endpoint != "" || c.S3.Bucket != "market-assets" || !c.S3.PathStyle {
		t.Fatalf("S3 defaults wrong: %+v", c.S3)
	}

	// Каталог пользователей
	if c.UserDirectory.BaseURL == "" || c.UserDirectory.Timeout != 2*time.Second || c.UserDirectory.CacheTTL != time.Minute {
		t.Fatalf("UserDirectory defaults wrong: %+v", c.UserDirectory)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "MARKET_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "2s")
	t.Setenv(p+"_HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv(p+"_HTTP_READ_HEADER_TIMEOUT", "1s")
	t.Setenv(p+"_HTTP_IDLE_TIMEOUT", "15s")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_SESSION_BINDING", "true")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// Postgres
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")
	t.Setenv(p+"_POSTGRES_MIGRATE", "false")

	// Redis, Cache, Lock
	t.Setenv(p+"_REDIS_ADDR", "cache:6380")
	t.Setenv(p+"_REDIS_DB", "3")
	t.Setenv(p+"_CACHE_BACKEND", "memory")
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_CACHE_SESSION_TTL", "2h")
	t.Setenv(p+"_LOCK_TTL", "45s")

	// Kafka
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_KAFKA_TOPIC", "notifications-test")
	t.Setenv(p+"_KAFKA_START_OFFSET", "first")
	t.Setenv(p+"_KAFKA_RETRY_MAX", "2m")

	// S3 и каталог пользователей
	t.Setenv(p+"_S3_ENDPOINT", "minio:9000")
	t.Setenv(p+"_S3_BUCKET", "assets")
	t.Setenv(p+"_USER_DIRECTORY_BASE_URL", "http://dir:9090")
	t.Setenv(p+"_USER_DIRECTORY_RETRY_COUNT", "5")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 2*time.Second || c.HTTP.WriteTimeout != 3*time.Second ||
		c.HTTP.ReadHeaderTimeout != 1*time.Second || c.HTTP.IdleTimeout != 15*time.Second ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP timeouts override wrong: %+v", c.HTTP)
	}
	if !c.HTTP.SessionBinding {
		t.Fatalf("HTTP.SessionBinding override not applied")
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" || c.Postgres.MaxConns != 42 || c.Postgres.Migrate {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if c.Redis.Addr != "cache:6380" || c.Redis.DB != 3 {
		t.Fatalf("Redis overrides wrong: %+v", c.Redis)
	}
	if c.Cache.Backend != "memory" || c.Cache.TTL != 30*time.Minute || c.Cache.SessionTTL != 2*time.Hour {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Lock.TTL != 45*time.Second {
		t.Fatalf("Lock.TTL override wrong: %v", c.Lock.TTL)
	}
	if !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) ||
		c.Kafka.Topic != "notifications-test" || c.Kafka.StartOffset != "first" || c.Kafka.RetryMax != 2*time.Minute {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if c.S3.Endpoint != "minio:9000" || c.S3.Bucket != "assets" {
		t.Fatalf("S3 overrides wrong: %+v", c.S3)
	}
	if c.UserDirectory.BaseURL != "http://dir:9090" || c.UserDirectory.RetryCount != 5 {
		t.Fatalf("UserDirectory overrides wrong: %+v", c.UserDirectory)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "MARKET_TEST_BAD"
	t.Setenv(p+"_LOCK_TTL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
