package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/domain"
	"github.com/Gunvolt24/jobboard/internal/kafka/mocks"
	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
)

func TestPublish_ForwardsRequestID(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := mocks.NewMockwriter(ctrl)

	w.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, []kafka.Header{{Key: headerRequestID, Value: []byte("rid-42")}}, msgs[0].Headers)
			return nil
		})

	ctx := ctxmeta.WithRequestID(context.Background(), "rid-42")
	require.NoError(t, newTestProducer(w).Publish(ctx, &domain.Notification{ID: "n-1", UserID: "u-1"}))
}

func TestPublish_NoRequestID_NoHeaders(t *testing.T) {
	assert.Nil(t, headersFromContext(context.Background()))
}

// Консьюмер восстанавливает request_id из заголовка для обработчика.
func TestRun_RequestIDFromHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockreader(ctrl)
	s := mocks.NewMockmessageHandler(ctrl)

	r.EXPECT().Config().Return(kafka.ReaderConfig{Topic: "notifications"}).AnyTimes()
	r.EXPECT().FetchMessage(gomock.Any()).Return(kafka.Message{
		Offset:  3,
		Key:     []byte("u-1"),
		Value:   []byte("{}"),
		Headers: []kafka.Header{{Key: "other", Value: []byte("x")}, {Key: headerRequestID, Value: []byte("rid-7")}},
	}, nil)
	seen := make(chan string, 1)
	s.EXPECT().HandleMessage(gomock.Any(), []byte("{}")).
		DoAndReturn(func(ctx context.Context, _ []byte) error {
			id, _ := ctxmeta.RequestIDFromContext(ctx)
			seen <- id
			return nil
		})
	r.EXPECT().CommitMessages(gomock.Any(), gomock.Any()).Return(nil)
	r.EXPECT().FetchMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, error) {
			<-ctx.Done()
			return kafka.Message{}, ctx.Err()
		})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := runAsync(ctx, newTestConsumer(r, s))

	select {
	case id := <-seen:
		assert.Equal(t, "rid-7", id)
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}
	cancel()
	require.True(t, errors.Is(<-errCh, context.Canceled))
}
