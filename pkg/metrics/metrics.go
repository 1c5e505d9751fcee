package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
	NotificationsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Notifications written to the broker",
		},
		[]string{"result"}, // ok|error
	)
)

var (
	// CacheOps — операции read-through кэша по пространствам имён.
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Read-through cache operations",
		},
		[]string{"namespace", "op"}, // hit|miss|corrupt|get_error|set_error
	)
	// CacheInvalidations — удаление ключей: eager до изменения, deferred после коммита, discarded при откате.
	CacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Cache key invalidations",
		},
		[]string{"mode"}, // eager|deferred|discarded|failed
	)
	// LocalCacheEvents — события локального LRU-кэша.
	LocalCacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "local_cache_events_total",
			Help: "In-process cache events",
		},
		[]string{"event"}, // evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "local_cache_size",
			Help: "Number of items currently in the in-process cache",
		},
	)
	// LockAttempts — попытки взять блокировку на обновление.
	LockAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "update_lock_attempts_total",
			Help: "Try-acquire attempts on update locks",
		},
		[]string{"result"}, // acquired|conflict|error
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в глобальном реестре; повторные вызовы безопасны.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, NotificationsPublished,
			CacheOps, CacheInvalidations, LocalCacheEvents, CacheSize, LockAttempts,
		)
	})
}
