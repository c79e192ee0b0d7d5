package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

var _ ports.ISessionStore = (*SessionStore)(nil)

const keyPrefix = "keypad:session:"

// sessionValue — JSON-значение ключа сессии.
type sessionValue struct {
	State     domain.State `json:"state"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SessionStore реализует ports.ISessionStore через Redis. Каждая запись живёт ttl с момента
// последнего сохранения (скользящее истечение через SET ... EX).
type SessionStore struct {
	cli *Client
	ttl time.Duration
	log *slog.Logger
}

// NewSessionStore возвращает хранилище сессий. ttl == 0 — ключи без истечения.
func NewSessionStore(cli *Client, ttl time.Duration, log *slog.Logger) *SessionStore {
	return &SessionStore{cli: cli, ttl: ttl, log: log}
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// Load возвращает сессию. Если ключа нет — domain.ErrSessionNotFound.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.cli.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) { // ключа нет или истёк
			return nil, domain.ErrSessionNotFound
		}
		s.log.Debug("session get failed", "session_id", id, "error", err)
		return nil, err
	}
	var v sessionValue
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Debug("session decode failed", "session_id", id, "error", err)
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{ID: id, State: v.State, UpdatedAt: v.UpdatedAt}, nil
}

// Save перезаписывает сессию и продлевает её ttl.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	raw, err := json.Marshal(sessionValue{State: sess.State, UpdatedAt: sess.UpdatedAt})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cli.Set(ctx, sessionKey(sess.ID), raw, s.ttl).Err(); err != nil {
		s.log.Debug("session set failed", "session_id", sess.ID, "error", err)
		return err
	}
	return nil
}

// Delete удаляет ключ сессии.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.cli.Del(ctx, sessionKey(id)).Err()
}

// Ping проверяет соединение (для readiness).
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.cli.Ping(ctx).Err()
}
