package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — часть kafka.Reader, которой пользуется консьюмер.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — сохранение уведомления из сырого сообщения.
// domain.ErrInvalidArgument означает, что сообщение испорчено и повтор не поможет.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

//go:generate mockgen -source=consumer.go -destination=mocks/mock_consumer.go -package=mocks

// Consumer — читает топик уведомлений с ручным коммитом оффсетов (at-least-once).
// Повторная доставка безопасна: уведомление сохраняется по своему id без дублей.
type Consumer struct {
	reader         reader
	notifications  messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, notifications messageHandler, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		notifications:  notifications,
		log:            log,
		processTimeout: durationOr(cfg.ProcessTimeout, 5*time.Second),
		retryInitial:   durationOr(cfg.RetryInitial, time.Second),
		retryMax:       durationOr(cfg.RetryMax, 30*time.Second),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run — цикл до отмены ctx. Оффсет коммитится после сохранения уведомления
// и после испорченного сообщения; временная ошибка оставляет оффсет на месте.
// Ошибки FetchMessage повторяются с экспоненциальной паузой до retryMax.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "notification consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	backoff := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			pause := c.withJitterEqual(backoff)
			c.log.Warnf(ctx, "fetch from %s failed: %v (retry in %s)", rc.Topic, err, pause)
			if !c.sleepWithBackoff(ctx, pause) {
				return ctx.Err()
			}
			backoff = c.nextBackoff(backoff)
			continue
		}
		backoff = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		msgCtx := contextWithHeaders(ctx, msg.Headers)
		if c.handleMessage(msgCtx, rc.Topic, &msg) {
			c.commitSafely(msgCtx, &msg)
			continue
		}
		// сообщение будет прочитано снова, пауза разносит повторы во времени
		_ = c.sleepWithBackoff(ctx, c.withJitterEqual(min(c.retryInitial, 500*time.Millisecond)))
	}
}

// Close — повторные вызовы возвращают nil.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
