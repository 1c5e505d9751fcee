package ports

import "context"

// TxManager — границы транзакции и отложенные действия после её исхода.
type TxManager interface {
	// WithinTx — выполняет fn в транзакции: ошибка или паника → откат, иначе коммит.
	// Вложенный вызов присоединяется к внешней транзакции.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Invalidate — ставит ключ кэша на удаление после коммита текущей транзакции.
	Invalidate(ctx context.Context, key string)

	// AfterCommit — регистрирует действие, выполняемое только после успешного коммита.
	AfterCommit(ctx context.Context, fn func(ctx context.Context))

	// AfterRollback — регистрирует действие, выполняемое только если транзакция не зафиксирована.
	AfterRollback(ctx context.Context, fn func(ctx context.Context))
}
