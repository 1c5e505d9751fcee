package app_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/jobboard/internal/app"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// stubConsumer — при runErr == nil ждёт отмены, иначе сразу падает.
type stubConsumer struct {
	runErr     error
	runCalls   atomic.Int32
	closeCalls atomic.Int32
}

func (s *stubConsumer) Run(ctx context.Context) error {
	s.runCalls.Add(1)
	if s.runErr != nil {
		return s.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubConsumer) Close() error {
	s.closeCalls.Add(1)
	return nil
}

func TestAppRun_Shutdown(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		timeout time.Duration // 0 — контекст без дедлайна
	}{
		{name: "context cancelled", timeout: 300 * time.Millisecond},
		{name: "consumer failure stops server", runErr: errors.New("broker unreachable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumer := &stubConsumer{runErr: tt.runErr}
			a := &app.App{
				Logger:        nopLogger{},
				HTTPServer:    &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
				KafkaConsumer: consumer,
			}

			ctx := context.Background()
			if tt.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.timeout)
				defer cancel()
			}

			done := make(chan error, 1)
			go func() { done <- a.Run(ctx) }()

			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Run не завершился")
			}
			assert.Equal(t, int32(1), consumer.runCalls.Load())
			assert.Positive(t, consumer.closeCalls.Load())
		})
	}
}
