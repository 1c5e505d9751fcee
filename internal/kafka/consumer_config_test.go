package kafka_test

import (
	"testing"
	"time"

	mykafka "github.com/Gunvolt24/jobboard/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConsumerConfig() mykafka.ConsumerConfig {
	return mykafka.ConsumerConfig{
		Brokers:      []string{"kafka-0:9092", "kafka-1:9092"},
		Topic:        "notifications",
		GroupID:      "notifications",
		RetryInitial: time.Second,
		RetryMax:     30 * time.Second,
	}
}

func TestConsumerConfig_ReaderConfig(t *testing.T) {
	t.Parallel()

	cfg := validConsumerConfig()
	rc := cfg.ReaderConfig()

	assert.Equal(t, cfg.Brokers, rc.Brokers)
	assert.Equal(t, "notifications", rc.Topic)
	assert.Equal(t, "notifications", rc.GroupID)
	assert.Zero(t, rc.CommitInterval, "оффсеты коммитятся вручную")
	assert.Equal(t, time.Second, rc.MaxWait, "MaxWait по умолчанию")

	cfg.MaxWait = 250 * time.Millisecond
	assert.Equal(t, 250*time.Millisecond, cfg.ReaderConfig().MaxWait)
}

func TestConsumerConfig_StartOffset(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]int64{
		"first":     kafkago.FirstOffset,
		" FiRsT \n": kafkago.FirstOffset,
		"":          kafkago.LastOffset,
		"LAST":      kafkago.LastOffset,
		"earliest":  kafkago.LastOffset,
	} {
		cfg := validConsumerConfig()
		cfg.StartOffset = in
		assert.Equal(t, want, cfg.ReaderConfig().StartOffset, "start offset %q", in)
	}
}

func TestConsumerConfig_Validate(t *testing.T) {
	t.Parallel()

	ok := validConsumerConfig()
	require.NoError(t, ok.Validate())

	broken := mykafka.ConsumerConfig{Topic: " ", RetryInitial: time.Minute, RetryMax: time.Second}
	err := broken.Validate()
	require.Error(t, err)
	for _, part := range []string{"no brokers", "empty topic", "empty consumer group", "retry initial exceeds retry max"} {
		assert.Contains(t, err.Error(), part)
	}
}
