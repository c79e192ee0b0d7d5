package keypad

import (
	"log/slog"
	"sync"
	"time"

	"keypadCalc/internal/engine"
	"keypadCalc/internal/ports"
)

// UseCase — бизнес-логика калькулятора: сессии и нажатия клавиш.
type UseCase struct {
	store     ports.ISessionStore
	broker    ports.IProducer
	analytics ports.IKeyAnalytics
	engine    engine.Engine
	locks     *sessionLocks
	now       func() time.Time
	log       *slog.Logger
}

// New создаёт юзкейс. broker и analytics могут быть nil — тогда события не публикуются и не пишутся.
func New(store ports.ISessionStore, broker ports.IProducer, analytics ports.IKeyAnalytics, eng engine.Engine, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{
		store:     store,
		broker:    broker,
		analytics: analytics,
		engine:    eng,
		locks:     newSessionLocks(),
		now:       time.Now,
		log:       log,
	}
}

// sessionLocks сериализует нажатия одной сессии внутри процесса: движок однопоточный,
// а HTTP/gRPC-запросы одной вкладки могут прийти параллельно.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// lock захватывает блокировку сессии и возвращает функцию освобождения.
// Запись удаляется из карты, когда её никто не держит.
func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &sessionLock{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
