package ports

import (
	"context"
	"time"
)

// Cache — key-value кэш с TTL на запись. Используется только как ускоритель чтения,
// источником истины остаётся хранилище.
type Cache interface {
	// Get — (value, true, nil) при попадании, (nil, false, nil) при промахе.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set — безусловная запись.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetIfAbsent — запись, только если ключа нет; true, если значение записано.
	SetIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete — удаление; отсутствие ключа не ошибка.
	Delete(ctx context.Context, key string) error
}
