package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const appName = "keypad"

// Config — подключение к MongoDB. Переменные: CALCULATOR_MONGO_URI, DATABASE, COLLECTION, TIMEOUT, MAX_POOL_SIZE.
type Config struct {
	URI        string `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database   string `envconfig:"DATABASE" default:"keypad"`
	Collection string `envconfig:"COLLECTION" default:"keypad_sessions"`
	// Timeout — выбор сервера и пинг при старте.
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"5s"`
	MaxPoolSize uint64        `envconfig:"MAX_POOL_SIZE" default:"50"`
}

// timeout — Timeout или 5s, если не задан.
func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.Timeout
}

func (c *Config) clientOptions() *options.ClientOptions {
	return options.Client().
		ApplyURI(c.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(c.timeout()).
		SetMaxPoolSize(c.MaxPoolSize)
}

// Client — клиент MongoDB, привязанный к коллекции сессий.
type Client struct {
	*mongo.Client
	coll *mongo.Collection
}

// New подключается к MongoDB и проверяет пингом.
func New(ctx context.Context, cfg *Config) (*Client, error) {
	client, err := mongo.Connect(cfg.clientOptions())
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Client{
		Client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Coll возвращает коллекцию сессий.
func (c *Client) Coll() *mongo.Collection {
	return c.coll
}

// Close отключается от сервера.
func (c *Client) Close(ctx context.Context) error {
	return c.Disconnect(ctx)
}
