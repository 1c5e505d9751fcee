package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustRegister_Twice(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.MustRegister()
		metrics.MustRegister()
	})
}

func TestCounterVecs_Increment(t *testing.T) {
	metrics.MustRegister()

	tests := []struct {
		name string
		c    prometheus.Counter
	}{
		{"cache hit", metrics.CacheOps.WithLabelValues("job", "hit")},
		{"deferred invalidation", metrics.CacheInvalidations.WithLabelValues("deferred")},
		{"lock conflict", metrics.LockAttempts.WithLabelValues("conflict")},
		{"notification published", metrics.NotificationsPublished.WithLabelValues("ok")},
		{"kafka failed", metrics.KafkaMessagesFailed.WithLabelValues("notifications")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.c)
			tt.c.Inc()
			assert.Equal(t, before+1, testutil.ToFloat64(tt.c))
		})
	}
}

func TestCacheOps_LabelsAreSeparate(t *testing.T) {
	miss := metrics.CacheOps.WithLabelValues("advert", "miss")
	before := testutil.ToFloat64(miss)

	metrics.CacheOps.WithLabelValues("advert", "hit").Inc()
	assert.Equal(t, before, testutil.ToFloat64(miss))
}

func TestLockAttempts_GatheredFromDefaultRegistry(t *testing.T) {
	metrics.MustRegister()
	metrics.LockAttempts.WithLabelValues("acquired").Inc()

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "update_lock_attempts_total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}
