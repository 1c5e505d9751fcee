//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	cacheredis "github.com/Gunvolt24/jobboard/internal/cache/redis"
	pgrepo "github.com/Gunvolt24/jobboard/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"
	redisImage    = "redis:7-alpine"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycle — журнал старта и остановки контейнера с его ролью в тесте.
func lifecycle(role string) tc.CustomizeRequestOption {
	short := func(c tc.Container) string {
		id := c.GetContainerID()
		return id[:min(len(id), 12)]
	}
	logf := func(event string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			tcLogger.Printf("%s %s id=%s", role, event, short(c))
			return nil
		}
	}
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				tcLogger.Printf("%s pulling image=%s", role, req.Image)
				return nil
			},
		},
		PostReadies:    []tc.ContainerHook{logf("ready")},
		PreTerminates:  []tc.ContainerHook{logf("terminating")},
		PostTerminates: []tc.ContainerHook{logf("terminated")},
	})
}

// PGContainer — Postgres с пулом, собранным так же, как в приложении.
type PGContainer struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC — пустая база marketplace без миграций.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := postgres.Run(ctx, postgresImage,
		lifecycle("postgres"),
		postgres.WithDatabase("marketplace"),
		postgres.WithUsername("market"),
		postgres.WithPassword("market"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("postgres dsn: %w", err)
	}
	pool, err := pgrepo.NewPool(ctx, dsn, 5)
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, err
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}
	return &PGContainer{Container: pg, Pool: pool, DSN: dsn}, stop, nil
}

// KafkaEnv — Kafka-совместимый брокер (redpanda) для топика уведомлений.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		lifecycle("redpanda"),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}

// RedisEnv — Redis для кэша, сессий и блокировок.
type RedisEnv struct {
	Container *tcredis.RedisContainer
	Client    *goredis.Client
	Addr      string
}

func StartRedisTC(ctx context.Context) (*RedisEnv, func(context.Context) error, error) {
	rc, err := tcredis.Run(ctx, redisImage, lifecycle("redis"))
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	addr, err := rc.Endpoint(ctx, "")
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, fmt.Errorf("redis endpoint: %w", err)
	}
	// клиент приложения: проверяет соединение PING-ом при создании
	client, err := cacheredis.NewClient(ctx, addr, "", 0)
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, err
	}

	stop := func(_ context.Context) error {
		_ = client.Close()
		return tc.TerminateContainer(rc)
	}
	return &RedisEnv{Container: rc, Client: client, Addr: addr}, stop, nil
}
