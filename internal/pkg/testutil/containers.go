//go:build integration

// Package testutil поднимает инфраструктуру для интеграционных тестов через testcontainers.
// Каждый Start* пропускает тест в -short режиме и останавливает контейнер в t.Cleanup.
//
// Запуск:
//
//	go test -tags integration ./internal/infrastructure/...
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startTimeout = 2 * time.Minute

// Endpoint — адрес поднятого контейнера и учётные данные (если есть).
type Endpoint struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func skipShort(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
}

// endpoint читает хост и проброшенный порт и регистрирует остановку контейнера.
func endpoint(t testing.TB, ctx context.Context, c testcontainers.Container, port string) Endpoint {
	t.Helper()
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("container port %s: %v", port, err)
	}
	return Endpoint{Host: host, Port: mapped.Port()}
}

// StartPostgres поднимает PostgreSQL.
func StartPostgres(t testing.TB) Endpoint {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	const user, password, db = "test", "test", "testdb"
	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(db),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}

	e := endpoint(t, ctx, c, "5432")
	e.User, e.Password, e.Database = user, password, db
	return e
}

// StartRedis поднимает Redis.
func StartRedis(t testing.TB) Endpoint {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	return endpoint(t, ctx, c, "6379")
}

// StartMongo поднимает MongoDB.
func StartMongo(t testing.TB) Endpoint {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	return endpoint(t, ctx, c, "27017")
}

// StartClickHouse поднимает ClickHouse; Port — нативный протокол (9000).
func StartClickHouse(t testing.TB) Endpoint {
	t.Helper()
	skipShort(t)
	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	const user, password, db = "default", "", "default"
	c, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(db),
	)
	if err != nil {
		t.Fatalf("clickhouse container: %v", err)
	}

	e := endpoint(t, ctx, c, "9000")
	e.User, e.Password, e.Database = user, password, db
	return e
}
