package kafka

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/kafka/mocks"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

var notificationReader = kafka.ReaderConfig{Topic: "notifications", GroupID: "notifications", Brokers: []string{"kafka:9092"}}

func newTestConsumer(r reader, h messageHandler) *Consumer {
	return &Consumer{
		reader:         r,
		notifications:  h,
		log:            nopLogger{},
		processTimeout: 30 * time.Millisecond,
		retryInitial:   5 * time.Millisecond,
		retryMax:       10 * time.Millisecond,
		jitterRand:     rand.New(rand.NewSource(1)),
	}
}

// blockUntilCancel — следующий FetchMessage ждёт отмены ctx.
func blockUntilCancel(r *mocks.Mockreader) {
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})
}

func runAsync(ctx context.Context, c *Consumer) <-chan error {
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	return done
}

// runBriefly — Run в горутине, отмена через d; ожидается выход с context.Canceled.
func runBriefly(t *testing.T, c *Consumer, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, c)

	time.Sleep(d)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run не остановился после отмены")
	}
}

func TestConsumer_CommitPolicy(t *testing.T) {
	payload := []byte(`{"id":"n-1","message":"new offer","offer_id":"o-1","user_id":"alice"}`)

	tests := []struct {
		name       string
		handlerErr error
		wantCommit bool
	}{
		{name: "saved", wantCommit: true},
		{name: "malformed payload is skipped", handlerErr: domain.InvalidArgument("user_id", ""), wantCommit: true},
		{name: "storage failure keeps offset", handlerErr: errors.New("db down"), wantCommit: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := mocks.NewMockreader(ctrl)
			h := mocks.NewMockmessageHandler(ctrl)

			msg := kafka.Message{Key: []byte("alice"), Partition: 2, Offset: 41, Value: payload}
			r.EXPECT().Config().Return(notificationReader).AnyTimes()
			r.EXPECT().FetchMessage(gomock.Any()).Return(msg, nil)
			h.EXPECT().HandleMessage(gomock.Any(), payload).Return(tt.handlerErr)
			if tt.wantCommit {
				r.EXPECT().CommitMessages(gomock.Any(), msg).Return(nil)
			}
			// без коммита лишний вызов CommitMessages уронит тест как unexpected call
			blockUntilCancel(r)

			runBriefly(t, newTestConsumer(r, h), 30*time.Millisecond)
		})
	}
}

func TestConsumer_CommitErrorDoesNotStopLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(notificationReader).AnyTimes()
	gomock.InOrder(
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 1, Value: []byte("a")}, nil),
		r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{Offset: 2, Value: []byte("b")}, nil),
	)
	h.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(errors.New("rebalance in progress")).Times(2)
	blockUntilCancel(r)

	runBriefly(t, newTestConsumer(r, h), 30*time.Millisecond)
}

func TestConsumer_FetchErrorsRetryUntilDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	h := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(notificationReader).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).
		Return(kafka.Message{}, errors.New("leader not available")).MinTimes(2)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, newTestConsumer(r, h).Run(ctx), context.DeadlineExceeded)
}

func TestConsumer_CloseOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	r.EXPECT().Close().Return(nil).Times(1)

	c := newTestConsumer(r, mocks.NewMockmessageHandler(ctrl))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestConsumer_Backoff(t *testing.T) {
	c := newTestConsumer(nil, nil)

	assert.Equal(t, 10*time.Millisecond, c.nextBackoff(5*time.Millisecond))
	assert.Equal(t, c.retryMax, c.nextBackoff(8*time.Millisecond), "пауза не превышает retryMax")

	for range 100 {
		d := c.withJitterEqual(8 * time.Millisecond)
		assert.GreaterOrEqual(t, d, 4*time.Millisecond)
		assert.LessOrEqual(t, d, 8*time.Millisecond)
	}
	assert.Zero(t, c.withJitterEqual(0))

	assert.Equal(t, time.Second, durationOr(0, time.Second))
	assert.Equal(t, time.Minute, durationOr(time.Minute, time.Second))
}
