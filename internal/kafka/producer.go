package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/segmentio/kafka-go"
)

var _ ports.NotificationPublisher = (*Producer)(nil)

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

//go:generate mockgen -source=producer.go -destination=mocks/mock_producer.go -package=mocks

// ProducerConfig — параметры записи в топик уведомлений.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Producer — публикует уведомления в Kafka, ключ сообщения — получатель,
// поэтому уведомления одного пользователя попадают в одну партицию по порядку.
type Producer struct {
	writer  writer
	topic   string
	timeout time.Duration
}

func NewProducer(cfg *ProducerConfig) *Producer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		topic:   cfg.Topic,
		timeout: timeout,
	}
}

// Publish — синхронная запись одного уведомления; request_id из ctx уходит в заголовке.
func (p *Producer) Publish(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return errors.New("nil notification")
	}
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(n.UserID),
		Value:   value,
		Time:    n.CreatedAt,
		Headers: headersFromContext(ctx),
	}); err != nil {
		return fmt.Errorf("publish notification to %s: %w", p.topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
