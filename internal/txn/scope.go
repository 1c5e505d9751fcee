package txn

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
)

type scopeKey struct{}

// scope — состояние одной транзакции: сам tx и очереди действий после коммита и после отката.
type scope struct {
	tx pgx.Tx

	mu        sync.Mutex
	keys      []string
	seen      map[string]struct{}
	callbacks []func(context.Context)
	rollbacks []func(context.Context)
}

func newScope(tx pgx.Tx) *scope {
	return &scope{tx: tx, seen: make(map[string]struct{})}
}

func withScope(ctx context.Context, s *scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

func scopeFrom(ctx context.Context) *scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// addKey — повторные ключи схлопываются в одно удаление.
func (s *scope) addKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
}

func (s *scope) addCallback(fn func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

func (s *scope) addRollback(fn func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollbacks = append(s.rollbacks, fn)
}

// drain — забирает и очищает очереди; повторный вызов вернёт пустые срезы.
func (s *scope) drain() (keys []string, callbacks, rollbacks []func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys, callbacks, rollbacks = s.keys, s.callbacks, s.rollbacks
	s.keys, s.callbacks, s.rollbacks = nil, nil, nil
	s.seen = make(map[string]struct{})
	return keys, callbacks, rollbacks
}

// TxFromContext — активная транзакция из контекста (для репозиториев).
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	if s := scopeFrom(ctx); s != nil {
		return s.tx, true
	}
	return nil, false
}

// pendingKeys — ключи, ожидающие коммита текущей транзакции.
func pendingKeys(ctx context.Context) []string {
	s := scopeFrom(ctx)
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}
