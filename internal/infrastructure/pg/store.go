package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

var _ ports.ISessionStore = (*SessionStore)(nil)

// SessionStore реализует ports.ISessionStore для PostgreSQL. Истёкшие строки не читаются
// и удаляются при сохранении.
type SessionStore struct {
	db  *DB
	ttl time.Duration
	log *slog.Logger
}

// NewSessionStore возвращает хранилище сессий. ttl == 0 — сессии не истекают.
func NewSessionStore(db *DB, ttl time.Duration, log *slog.Logger) *SessionStore {
	return &SessionStore{db: db, ttl: ttl, log: log}
}

// Load возвращает сессию, если она есть и не истекла.
func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	var (
		raw       []byte
		updatedAt time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT state, updated_at FROM keypad_sessions WHERE id = $1`, id).
		Scan(&raw, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		s.log.Debug("Load failed", "session_id", id, "error", err)
		return nil, err
	}
	if s.ttl > 0 && time.Since(updatedAt) > s.ttl {
		return nil, domain.ErrSessionNotFound
	}

	var st domain.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{ID: id, State: st, UpdatedAt: updatedAt}, nil
}

// Save вставляет или обновляет сессию и вычищает истёкшие.
func (s *SessionStore) Save(ctx context.Context, sess domain.Session) error {
	raw, err := json.Marshal(sess.State)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO keypad_sessions (id, state, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`,
		sess.ID, string(raw), sess.UpdatedAt)
	if err != nil {
		s.log.Debug("Save failed", "session_id", sess.ID, "error", err)
		return err
	}

	if s.ttl > 0 {
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM keypad_sessions WHERE updated_at < $1`, time.Now().Add(-s.ttl)); err != nil {
			s.log.Warn("expired sessions sweep failed", "error", err)
		}
	}
	return nil
}

// Delete удаляет сессию.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM keypad_sessions WHERE id = $1`, id)
	return err
}

// Ping проверяет доступность БД (readiness).
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
