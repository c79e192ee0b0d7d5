package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"keypadCalc/internal/domain"
)

// IKeypadUseCase — контракт бизнес-логики калькулятора (сессии, нажатия, обработка событий из Kafka).
type IKeypadUseCase interface {
	Open(ctx context.Context) (*domain.Session, error)
	Session(ctx context.Context, id string) (*domain.Session, error)
	Press(ctx context.Context, id string, keys ...domain.Key) (*domain.Session, error)
	Close(ctx context.Context, id string) error
	HandleKeyEvent(ctx context.Context, ev domain.KeyEvent) error
}
