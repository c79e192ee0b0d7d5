package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

// messageReader — часть kafka.Reader, которой пользуется консьюмер (подменяется в тестах).
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Повторы обработчика до остановки консьюмера.
const (
	defaultHandleAttempts = 5
	defaultRetryDelay     = 200 * time.Millisecond
	maxRetryDelay         = 5 * time.Second
)

// Consumer — обёртка над kafka.Reader, декодирует сообщения в domain.KeyEvent и вызывает use case.
type Consumer struct {
	r   messageReader
	uc  ports.IKeypadUseCase
	log *slog.Logger

	attempts   int
	retryDelay time.Duration
}

// NewConsumer создаёт консьюмера по конфигу, use case и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.IKeypadUseCase, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// Run в цикле читает сообщения, декодирует JSON в domain.KeyEvent, вызывает uc.HandleKeyEvent и коммитит при успехе.
// Битое сообщение коммитится и пропускается. Ошибку обработчика повторяем с нарастающей паузой;
// если все попытки не удались, Run возвращает ошибку без коммита: смещения в партиции позиционные,
// и коммит следующего сообщения потерял бы упавшее. После перезапуска группа читает с него же.
// Выход по отмене ctx, при ошибке чтения или при исчерпании попыток.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		var ev domain.KeyEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
			_ = c.r.CommitMessages(ctx, msg)
			continue
		}

		if err := c.handle(ctx, msg, ev); err != nil {
			return err
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle вызывает обработчик с повторами.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message, ev domain.KeyEvent) error {
	attempts := c.attempts
	if attempts <= 0 {
		attempts = defaultHandleAttempts
	}
	delay := c.retryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	var err error
	for i := 1; ; i++ {
		if err = c.uc.HandleKeyEvent(ctx, ev); err == nil {
			return nil
		}
		c.log.Warn("kafka handle error", "error", err, "attempt", i, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}

	c.log.Error("kafka consumer stopped, offset not committed", "error", err, "partition", msg.Partition, "offset", msg.Offset)
	return fmt.Errorf("handle offset %d: %w", msg.Offset, err)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
