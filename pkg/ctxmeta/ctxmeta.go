// Package ctxmeta — метаданные запроса в context.Context: request_id, имя пользователя из сессии, trace_id.
// HTTP-слой их кладёт, логгер и клиенты внешних сервисов читают; друг от друга они не зависят.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID ctxKey = "request_id"
	KeyPrincipal ctxKey = "principal"
)

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// WithRequestID — пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyRequestID)
}

// WithPrincipal — имя пользователя, от лица которого выполняется запрос.
func WithPrincipal(ctx context.Context, username string) context.Context {
	return withString(ctx, KeyPrincipal, username)
}

func PrincipalFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, KeyPrincipal)
}
