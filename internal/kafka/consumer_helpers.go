package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// handleMessage — true, если оффсет можно коммитить.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	procCtx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.notifications.HandleMessage(procCtx, msg.Value)
	cancel()

	if err == nil {
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	}
	metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
	if errors.Is(err, domain.ErrInvalidArgument) {
		c.log.Warnf(ctx, "notification skipped recipient=%s partition=%d offset=%d: %v",
			msg.Key, msg.Partition, msg.Offset, err)
		return true
	}
	c.log.Warnf(ctx, "notification not saved recipient=%s partition=%d offset=%d: %v (redelivery pending)",
		msg.Key, msg.Partition, msg.Offset, err)
	return false
}

// commitSafely — ошибка коммита только логируется: сообщение придёт повторно и сохранится идемпотентно.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit partition=%d offset=%d failed: %v", msg.Partition, msg.Offset, err)
	}
}

// sleepWithBackoff — false, если ctx отменён раньше.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	return min(current*2, c.retryMax)
}

// withJitterEqual — половина d плюс случайная добавка в [0, d/2].
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
