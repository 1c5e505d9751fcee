// Package memory — локальный LRU-кэш с TTL на запись; реализует ports.Cache
// для запуска одного экземпляра сервиса без Redis.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/pkg/metrics"
)

var _ ports.Cache = (*LRUCacheTTL)(nil)

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// LRUCacheTTL — потокобезопасный кэш с вытеснением давно неиспользуемых записей.
// ttl — значение по умолчанию, если Set вызван с ttl <= 0.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get — значение по ключу; истёкшая запись удаляется и считается промахом.
func (c *LRUCacheTTL) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		return nil, false, nil
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, now) {
		metrics.LocalCacheEvents.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		return nil, false, nil
	}
	c.ll.MoveToFront(elem)

	return clone(ent.value), true, nil
}

// Set — безусловно перезаписывает значение.
func (c *LRUCacheTTL) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.put(key, value, ttl, c.now())
	return nil
}

// SetIfAbsent — записывает значение, только если живой записи с таким ключом нет.
func (c *LRUCacheTTL) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok && !isExpired(elem.Value.(*entry), now) {
		return false, nil
	}
	c.put(key, value, ttl, now)
	return true, nil
}

// Delete — идемпотентное удаление.
func (c *LRUCacheTTL) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.removeElement(elem)
	}
	return nil
}

// Len — число записей (включая ещё не вычищенные истёкшие).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *LRUCacheTTL) put(key string, value []byte, ttl time.Duration, now time.Time) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = clone(value)
		ent.expiresAt = expiryFrom(now, ttl)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		value:     clone(value),
		expiresAt: expiryFrom(now, ttl),
	})
	c.index[key] = elem
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}
