package memory

import (
	"context"
	"sync"
	"time"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

var _ ports.ISessionStore = (*SessionStore)(nil)

// SessionStore — хранилище сессий в памяти процесса. Подходит для одного инстанса и тестов.
// Сессия истекает, если не обновлялась дольше ttl (0 — не истекает).
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore создаёт пустое хранилище.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Load возвращает копию сессии.
func (s *SessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.expired(sess) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Save сохраняет сессию и попутно вычищает истёкшие.
func (s *SessionStore) Save(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, old := range s.sessions {
		if s.expired(old) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess
	return nil
}

// Delete удаляет сессию. Удаление несуществующей сессии не ошибка.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Ping всегда успешен.
func (s *SessionStore) Ping(context.Context) error {
	return nil
}

// Len — количество сессий (вместе с ещё не вычищенными истёкшими).
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) expired(sess domain.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}
