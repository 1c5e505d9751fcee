package kafka

import (
	"context"

	"github.com/Gunvolt24/jobboard/pkg/ctxmeta"
	"github.com/segmentio/kafka-go"
)

// headerRequestID — request_id HTTP-запроса, создавшего предложение; по нему связываются
// логи API и консьюмера уведомлений.
const headerRequestID = "X-Request-ID"

func headersFromContext(ctx context.Context) []kafka.Header {
	id, ok := ctxmeta.RequestIDFromContext(ctx)
	if !ok {
		return nil
	}
	return []kafka.Header{{Key: headerRequestID, Value: []byte(id)}}
}

func contextWithHeaders(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == headerRequestID {
			return ctxmeta.WithRequestID(ctx, string(h.Value))
		}
	}
	return ctx
}
