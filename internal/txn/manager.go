// Package txn — явные границы транзакции Postgres и отложенные до её исхода действия:
// инвалидация ключей кэша и колбэки после коммита (публикация уведомлений, удаление
// заменённых файлов) или после отката (удаление уже загруженных файлов).
package txn

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
	"github.com/jackc/pgx/v5"
)

var _ ports.TxManager = (*Manager)(nil)

// Beginner — источник транзакций (pgxpool.Pool, pgxmock).
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Manager — открывает транзакцию, кладёт её в контекст вместе с очередью отложенных действий,
// и после подтверждённого коммита сбрасывает очередь в кэш.
type Manager struct {
	db    Beginner
	cache ports.Cache
	log   ports.Logger
}

func NewManager(db Beginner, cache ports.Cache, log ports.Logger) *Manager {
	return &Manager{db: db, cache: cache, log: log}
}

// WithinTx — выполняет fn в транзакции. Ошибка или паника в fn → откат, сброс очереди
// и колбэки отката; иначе коммит, затем однократное удаление каждого поставленного ключа
// и запуск колбэков после коммита. Неудачный коммит обрабатывается как откат.
// Если в ctx уже есть транзакция, fn выполняется в ней, а очередь общая.
func (m *Manager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if scopeFrom(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	s := newScope(tx)
	txCtx := withScope(ctx, s)

	defer func() {
		if p := recover(); p != nil {
			m.rollback(ctx, tx)
			m.discard(context.WithoutCancel(ctx), s)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		m.rollback(ctx, tx)
		m.discard(context.WithoutCancel(ctx), s)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		m.discard(context.WithoutCancel(ctx), s)
		return fmt.Errorf("commit tx: %w", err)
	}

	m.flush(context.WithoutCancel(ctx), s)
	return nil
}

// Invalidate — ставит ключ в очередь текущей транзакции; вне транзакции удаляет сразу.
func (m *Manager) Invalidate(ctx context.Context, key string) {
	if s := scopeFrom(ctx); s != nil {
		s.addKey(key)
		return
	}
	m.deleteKey(ctx, key)
}

// AfterCommit — регистрирует колбэк после коммита; вне транзакции выполняет сразу.
func (m *Manager) AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if s := scopeFrom(ctx); s != nil {
		s.addCallback(fn)
		return
	}
	fn(ctx)
}

// AfterRollback — регистрирует колбэк на случай отката или неудачного коммита;
// вне транзакции откатывать нечего, и колбэк отбрасывается.
func (m *Manager) AfterRollback(ctx context.Context, fn func(ctx context.Context)) {
	if s := scopeFrom(ctx); s != nil {
		s.addRollback(fn)
	}
}

// flush — сначала ключи кэша, потом колбэки: подписчик уведомления не должен увидеть устаревший кэш.
func (m *Manager) flush(ctx context.Context, s *scope) {
	keys, callbacks, _ := s.drain()
	for _, key := range keys {
		m.deleteKey(ctx, key)
	}
	for _, cb := range callbacks {
		cb(ctx)
	}
}

func (m *Manager) deleteKey(ctx context.Context, key string) {
	if err := m.cache.Delete(ctx, key); err != nil {
		metrics.CacheInvalidations.WithLabelValues("failed").Inc()
		m.log.Warnf(ctx, "cache invalidation failed key=%s: %v", key, err)
		return
	}
	metrics.CacheInvalidations.WithLabelValues("deferred").Inc()
}

func (m *Manager) discard(ctx context.Context, s *scope) {
	keys, _, rollbacks := s.drain()
	metrics.CacheInvalidations.WithLabelValues("discarded").Add(float64(len(keys)))
	for _, cb := range rollbacks {
		cb(ctx)
	}
}

func (m *Manager) rollback(ctx context.Context, tx pgx.Tx) {
	// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
	if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		m.log.Warnf(ctx, "rollback tx: %v", rbErr)
	}
}
