package ports

//go:generate mockgen -source=store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"

	"keypadCalc/internal/domain"
)

// ISessionStore — хранилище состояний калькулятора на время жизни сессии.
// Load возвращает domain.ErrSessionNotFound, если сессии нет или она истекла.
type ISessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s domain.Session) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
