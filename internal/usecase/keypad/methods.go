package keypad

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"keypadCalc/internal/domain"
)

// Open создаёт сессию с чистым калькулятором и сохраняет её.
func (u *UseCase) Open(ctx context.Context) (*domain.Session, error) {
	s := domain.Session{
		ID:        uuid.NewString(),
		State:     domain.NewState(),
		UpdatedAt: u.now(),
	}
	if err := u.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	sessionsOpenedTotal.Inc()
	u.log.Info("session opened", "session_id", s.ID)
	return &s, nil
}

// Session возвращает текущее состояние сессии.
func (u *UseCase) Session(ctx context.Context, id string) (*domain.Session, error) {
	return u.store.Load(ctx, id)
}

// Press — применяет нажатия по порядку, сохраняет состояние и публикует по событию на каждое нажатие.
// Ошибка публикации только логируется: состояние уже сохранено.
func (u *UseCase) Press(ctx context.Context, id string, keys ...domain.Key) (*domain.Session, error) {
	if len(keys) == 0 {
		return u.Session(ctx, id)
	}

	unlock := u.locks.lock(id)
	defer unlock()

	s, err := u.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, k := range keys {
		s.State = u.engine.Apply(s.State, k)
		keyPressesTotal.WithLabelValues(k.Kind.String()).Inc()
	}
	s.UpdatedAt = u.now()

	if err := u.store.Save(ctx, *s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	u.log.Debug("keys applied", "session_id", id, "keys", len(keys), "display", s.State.Display)

	u.publish(ctx, s, keys)
	return s, nil
}

// Close удаляет сессию. Ждёт незавершённое нажатие этой сессии, чтобы оно не сохранило её обратно.
func (u *UseCase) Close(ctx context.Context, id string) error {
	unlock := u.locks.lock(id)
	defer unlock()

	if err := u.store.Delete(ctx, id); err != nil {
		return err
	}
	u.log.Info("session closed", "session_id", id)
	return nil
}

// HandleKeyEvent вызывается консьюмером при получении сообщения из топика нажатий (часть IKeypadUseCase).
func (u *UseCase) HandleKeyEvent(ctx context.Context, ev domain.KeyEvent) error {
	if u.analytics == nil {
		return nil
	}
	if err := u.analytics.WriteKeyEvent(ctx, ev); err != nil {
		u.log.Warn("analytics write", "error", err)
		return err
	}
	u.log.Debug("key event stored", "session_id", ev.SessionID, "key", ev.Key, "kind", ev.Kind)
	return nil
}

func (u *UseCase) publish(ctx context.Context, s *domain.Session, keys []domain.Key) {
	if u.broker == nil {
		return
	}
	for _, k := range keys {
		value, err := json.Marshal(domain.KeyEvent{
			SessionID: s.ID,
			Key:       k.Label(),
			Kind:      k.Kind.String(),
			Timestamp: s.UpdatedAt,
		})
		if err != nil {
			u.log.Warn("key event marshal", "session_id", s.ID, "error", err)
			continue
		}
		if err := u.broker.Send(ctx, []byte(s.ID), value); err != nil {
			u.log.Warn("broker send", "session_id", s.ID, "error", err)
			return
		}
	}
}
