package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/jobboard/config"
	cachemem "github.com/Gunvolt24/jobboard/internal/cache/memory"
	cacheredis "github.com/Gunvolt24/jobboard/internal/cache/redis"
	"github.com/Gunvolt24/jobboard/internal/clients/userdir"
	locallock "github.com/Gunvolt24/jobboard/internal/lock/local"
	lockredis "github.com/Gunvolt24/jobboard/internal/lock/redis"
	"github.com/Gunvolt24/jobboard/internal/ports"
	"github.com/Gunvolt24/jobboard/internal/storage/s3"
)

// cacheBackend — кэш и блокировки поверх одного хранилища.
type cacheBackend struct {
	cache  ports.Cache
	locker ports.Locker
	close  func() error
}

// newCacheBackend — redis: общий кэш и блокировки для всех экземпляров сервиса;
// memory: LRU в процессе и локальные блокировки, годится только для одного экземпляра.
func newCacheBackend(ctx context.Context, cfg *config.Config, log ports.Logger) (*cacheBackend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Cache.Backend)) {
	case "redis", "":
		client, err := cacheredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		log.Infof(ctx, "redis cache addr=%s db=%d prefix=%q", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.KeyPrefix)
		return &cacheBackend{
			cache:  cacheredis.New(client, cfg.Redis.KeyPrefix, cfg.Redis.OpTimeout),
			locker: lockredis.New(client, cfg.Redis.KeyPrefix, cfg.Lock.TTL),
			close:  client.Close,
		}, nil
	case "memory":
		log.Warnf(ctx, "in-memory cache and locks: consistency holds for a single instance only")
		return &cacheBackend{
			cache:  cachemem.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL),
			locker: locallock.New(),
			close:  func() error { return nil },
		}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// newAssetStorage — nil без endpoint: загрузка изображений отключена.
func newAssetStorage(ctx context.Context, cfg config.S3, log ports.Logger) (ports.AssetStorage, error) {
	if cfg.Endpoint == "" {
		log.Infof(ctx, "asset storage disabled")
		return nil, nil
	}
	st, err := s3.New(s3.Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		Bucket:    cfg.Bucket,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		PathStyle: cfg.PathStyle,
	})
	if err != nil {
		return nil, err
	}
	if err := st.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Infof(ctx, "asset storage endpoint=%s bucket=%s", cfg.Endpoint, cfg.Bucket)
	return st, nil
}

// newUserDirectory — HTTP-клиент каталога с кэшем ответов в памяти.
func newUserDirectory(cfg config.UserDirectory) (ports.UserDirectory, func() error, error) {
	client, err := userdir.New(userdir.Config{
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout,
		RetryCount:    cfg.RetryCount,
		RetryWaitTime: cfg.RetryWaitTime,
	})
	if err != nil {
		return nil, nil, err
	}
	if cfg.CacheTTL <= 0 {
		return client, client.Close, nil
	}
	cached := userdir.NewCached(client, userdir.CacheConfig{Capacity: cfg.CacheCapacity, TTL: cfg.CacheTTL})
	return cached, client.Close, nil
}
