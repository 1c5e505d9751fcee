// Package local — блокировка в пределах одного процесса; для запуска без Redis.
package local

import (
	"context"
	"sync"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
)

var _ ports.Locker = (*Locker)(nil)

type Locker struct {
	mu   sync.Mutex
	held map[string]string // имя → токен владельца
}

func New() *Locker {
	return &Locker{held: make(map[string]string)}
}

func (l *Locker) TryAcquire(_ context.Context, name string) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[name]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[name] = token
	return token, true, nil
}

// Release — снимает блокировку только владельцу токена.
func (l *Locker) Release(_ context.Context, name, token string) error {
	l.mu.Lock()
	if l.held[name] == token {
		delete(l.held, name)
	}
	l.mu.Unlock()
	return nil
}
