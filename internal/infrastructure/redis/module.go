package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config — подключение к Redis. Переменные: CALCULATOR_REDIS_HOST, PORT, PASSWORD, DB, POOL_SIZE, TIMEOUT.
type Config struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
	// PoolSize — соединений на инстанс; 0 — значение go-redis (10 на CPU).
	PoolSize int `envconfig:"POOL_SIZE" default:"0"`
	// Timeout — на dial, чтение и запись. Нажатие ждёт Redis синхронно, поэтому таймаут короткий.
	Timeout time.Duration `envconfig:"TIMEOUT" default:"500ms"`
}

// Addr возвращает адрес "host:port".
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c *Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.Timeout,
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	}
}

// Client — клиент Redis для хранилища сессий.
type Client struct {
	*redis.Client
}

// New подключается к Redis и проверяет пингом.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	cli := redis.NewClient(cfg.options())
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}
	return &Client{Client: cli}, nil
}
