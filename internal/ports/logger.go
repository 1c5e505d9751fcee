package ports

import "context"

// Logger — логгер сервисов и адаптеров. Поля request_id, principal и trace_id
// реализация берёт из ctx, поэтому вызывающему достаточно передать контекст запроса.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	// Warnf — деградация без отказа операции: сбой кэша, публикации, снятия блокировки.
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
