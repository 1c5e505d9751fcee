package ports

import "context"

// MessageConsumer — фоновый читатель топика уведомлений.
// Run блокируется до отмены ctx и возвращает ctx.Err() либо фатальную ошибку чтения.
// Close освобождает соединение с брокером; повторный вызов безопасен.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
