//go:build integration

// Пакет testutil — контейнеры и фабрики для интеграционных тестов.
// Каждый Start* поднимает контейнер, регистрирует его остановку в t.Cleanup
// и пишет жизненный цикл в лог теста.
package testutil

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
)

// startTimeout — подъём контейнера; pull образа может быть долгим.
const startTimeout = 2 * time.Minute

// PGEnv — база с применёнными миграциями.
type PGEnv struct {
	DSN  string
	Pool *pgxpool.Pool
}

// MigrationsDir — <repo>/migrations относительно этого файла.
func MigrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

// StartPostgres — postgres:16 + goose-миграции репозитория.
func StartPostgres(t testing.TB) *PGEnv {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycle(t)),
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("app"),
		postgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	terminateOnCleanup(t, pg)
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres dsn: %v", err)
	}
	if err := pgrepo.Migrate(dsn, MigrationsDir()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgrepo.NewPool(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return &PGEnv{DSN: dsn, Pool: pool}
}

// StartRedis — redis:7 через generic-контейнер; возвращает host:port.
func StartRedis(t testing.TB) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			WaitingFor:     wait.ForListeningPort("6379/tcp"),
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycle(t)},
		},
		Started: true,
	})
	terminateOnCleanup(t, c)
	if err != nil {
		t.Fatalf("redis: %v", err)
	}

	addr, err := c.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}
	return addr
}

// StartKafka — redpanda (kafka-совместимый брокер); возвращает seed-брокеры.
func StartKafka(t testing.TB) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	rp, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycle(t)),
		redpanda.WithAutoCreateTopics(),
	)
	terminateOnCleanup(t, rp)
	if err != nil {
		t.Fatalf("redpanda: %v", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		t.Fatalf("seed broker: %v", err)
	}
	return []string{seed}
}

// terminateOnCleanup — остановка контейнера по завершении теста; nil допустим.
func terminateOnCleanup(t testing.TB, c tc.Container) {
	t.Cleanup(func() {
		if err := tc.TerminateContainer(c); err != nil {
			t.Logf("terminate: %v", err)
		}
	})
}

func lifecycle(t testing.TB) tc.ContainerLifecycleHooks {
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				t.Logf("[tc] create %s", req.Image)
				return nil
			},
		},
		PostReadies: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				t.Logf("[tc] ready %.12s", c.GetContainerID())
				return nil
			},
		},
	}
}
