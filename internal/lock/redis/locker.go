// Package redis — распределённая неблокирующая блокировка на Redis:
// SET NX PX с уникальным токеном и снятие через сравнение токена.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var _ ports.Locker = (*Locker)(nil)

// releaseScript — удаляет ключ, только если он всё ещё принадлежит нашему токену.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker — TTL защищает от вечной блокировки при падении процесса-владельца.
// Состояния между вызовами не хранит: токен владельца живёт у вызывающего.
type Locker struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func New(client redis.UniversalClient, prefix string, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Locker{client: client, prefix: prefix, ttl: ttl}
}

func (l *Locker) key(name string) string {
	if l.prefix == "" {
		return "lock:" + name
	}
	return l.prefix + ":lock:" + name
}

// TryAcquire — одна попытка без ожидания.
func (l *Locker) TryAcquire(ctx context.Context, name string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(name), token, l.ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release — снимает блокировку, если она наша; чужую или истёкшую не трогает.
func (l *Locker) Release(ctx context.Context, name, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.key(name)}, token).Err(); err != nil {
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}
