package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apigrpc "keypadCalc/internal/api/grpc"
	apihttp "keypadCalc/internal/api/http"
	"keypadCalc/internal/api/http/controllers/keypad"
	"keypadCalc/internal/api/http/controllers/system"
	"keypadCalc/internal/engine"
	"keypadCalc/internal/infrastructure/click"
	"keypadCalc/internal/infrastructure/kafka"
	"keypadCalc/internal/infrastructure/memory"
	"keypadCalc/internal/infrastructure/mongo"
	"keypadCalc/internal/infrastructure/pg"
	"keypadCalc/internal/infrastructure/redis"
	"keypadCalc/internal/pkg/logger"
	"keypadCalc/internal/ports"
	keypadUsecase "keypadCalc/internal/usecase/keypad"
)

const (
	shutdownTimeout      = 10 * time.Second
	consumerRestartPause = 5 * time.Second
)

// ErrUnknownStoreDriver — CALCULATOR_STORE_DRIVER не из memory/redis/postgres/mongo.
var ErrUnknownStoreDriver = errors.New("unknown store driver")

// App — приложение, хранит конфиг и то, что надо закрыть при остановке.
type App struct {
	cfg     Config
	log     *slog.Logger
	closers []func()
}

// New создаёт приложение с конфигом (подключения — в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run подключает хранилище сессий, Kafka и ClickHouse (если включены), поднимает gRPC и HTTP-серверы
// и блокируется до отмены ctx или до падения одного из серверов.
func (a *App) Run(ctx context.Context) error {
	a.log = logger.New(a.cfg.Log)
	slog.SetDefault(a.log)
	defer a.close()

	store, err := a.openStore(ctx)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}

	analytics, err := a.openAnalytics(ctx)
	if err != nil {
		return fmt.Errorf("clickhouse: %w", err)
	}

	var producer ports.IProducer
	if a.cfg.Kafka.Enabled {
		p := kafka.NewProducer(&a.cfg.Kafka)
		a.onClose(func() { _ = p.Close() })
		producer = p
	}

	uc := keypadUsecase.New(store, producer, analytics, engine.New(a.cfg.Keypad.MaxDigits), a.log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// консьюмер нужен, только если есть куда писать события
	if a.cfg.Kafka.Enabled && analytics != nil {
		done := make(chan struct{})
		go func() {
			defer close(done)
			a.runConsumer(ctx, func() consumerRunner { return kafka.NewConsumer(&a.cfg.Kafka, uc, a.log) }, consumerRestartPause)
		}()
		// дождаться консьюмера до закрытия ClickHouse
		a.onClose(func() {
			cancel()
			<-done
		})
	}

	grpcSrv := apigrpc.NewServer(a.cfg.Grpc.Addr(), uc, a.log)
	srv := apihttp.NewServer(a.cfg.Server, a.log)
	srv.AddController(
		system.New(a.log, store),
		keypad.New(uc, a.log))

	a.log.Info("application started",
		"http", a.cfg.Server.Addr(),
		"grpc", a.cfg.Grpc.Addr(),
		"store", a.cfg.Store.Driver,
		"kafka", a.cfg.Kafka.Enabled,
		"clickhouse", a.cfg.ClickHouse.Enabled)

	return serve(ctx, srv.Start, grpcSrv)
}

// grpcRunner — часть gRPC-сервера, которой пользуется serve.
type grpcRunner interface {
	Start() error
	Stop(ctx context.Context) error
}

// serve запускает HTTP и gRPC и ждёт, пока остановится любой из них. Падение gRPC останавливает HTTP;
// gRPC останавливается всегда. Возвращает первую ошибку.
func serve(ctx context.Context, httpStart func(context.Context) error, grpcSrv grpcRunner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grpcErr := make(chan error, 1)
	go func() { grpcErr <- grpcSrv.Start() }()

	httpErr := make(chan error, 1)
	go func() { httpErr <- httpStart(ctx) }()

	var err error
	select {
	case err = <-httpErr:
	case gerr := <-grpcErr:
		if gerr != nil {
			err = fmt.Errorf("grpc: %w", gerr)
		}
		cancel()
		if herr := <-httpErr; err == nil {
			err = herr
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if stopErr := grpcSrv.Stop(shutdownCtx); err == nil {
		err = stopErr
	}
	return err
}

// consumerRunner — консьюмер Kafka (подменяется в тестах).
type consumerRunner interface {
	Run(ctx context.Context) error
	Close() error
}

// runConsumer крутит консьюмера до отмены ctx. После ошибки reader пересоздаётся: новый reader группы
// читает с последнего закоммиченного смещения, то есть с упавшего события.
func (a *App) runConsumer(ctx context.Context, newConsumer func() consumerRunner, pause time.Duration) {
	for {
		c := newConsumer()
		err := c.Run(ctx)
		_ = c.Close()
		if ctx.Err() != nil {
			return
		}

		a.log.Error("kafka consumer failed, restarting", "error", err, "pause", pause)
		select {
		case <-ctx.Done():
			return
		case <-time.After(pause):
		}
	}
}

// openStore подключает хранилище сессий по CALCULATOR_STORE_DRIVER.
func (a *App) openStore(ctx context.Context) (ports.ISessionStore, error) {
	ttl := a.cfg.Session.TTL

	switch a.cfg.Store.Driver {
	case StoreMemory, "":
		return memory.NewSessionStore(ttl), nil

	case StoreRedis:
		rdb, err := redis.New(ctx, &a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.onClose(func() { _ = rdb.Close() })
		return redis.NewSessionStore(rdb, ttl, a.log), nil

	case StorePostgres:
		db, err := pg.New(ctx, &a.cfg.DB)
		if err != nil {
			return nil, err
		}
		a.onClose(func() { _ = db.Close() })
		if err := pg.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pg.NewSessionStore(db, ttl, a.log), nil

	case StoreMongo:
		client, err := mongo.New(ctx, &a.cfg.Mongo)
		if err != nil {
			return nil, err
		}
		a.onClose(func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		})
		store := mongo.NewSessionStore(client, ttl, a.log)
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("indexes: %w", err)
		}
		return store, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownStoreDriver, a.cfg.Store.Driver)
}

// openAnalytics подключает ClickHouse и создаёт таблицу событий. Выключен — nil.
func (a *App) openAnalytics(ctx context.Context) (ports.IKeyAnalytics, error) {
	if !a.cfg.ClickHouse.Enabled {
		return nil, nil
	}
	ch, err := click.New(ctx, &a.cfg.ClickHouse)
	if err != nil {
		return nil, err
	}
	a.onClose(func() { _ = ch.Close() })

	w := click.NewKeyEventWriter(ch)
	if err := w.EnsureTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return w, nil
}

func (a *App) onClose(f func()) {
	a.closers = append(a.closers, f)
}

// close закрывает подключения в обратном порядке.
func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
