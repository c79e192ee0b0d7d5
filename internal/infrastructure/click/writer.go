package click

import (
	"context"
	"fmt"

	"keypadCalc/internal/domain"
	"keypadCalc/internal/ports"
)

var _ ports.IKeyAnalytics = (*KeyEventWriter)(nil)

const keyEventsTable = "default.keypad_key_events"

// KeyEventWriter записывает нажатия в ClickHouse в формате, удобном для аналитики
// (GROUP BY kind, key, по времени и т.д.). Чтение истории наружу не отдаётся.
type KeyEventWriter struct {
	db *Client
}

// NewKeyEventWriter создаёт писатель нажатий.
func NewKeyEventWriter(db *Client) *KeyEventWriter {
	return &KeyEventWriter{db: db}
}

// EnsureTable создаёт таблицу нажатий, если её ещё нет. Вызови один раз при старте приложения.
func (w *KeyEventWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id String,
			key LowCardinality(String),
			kind LowCardinality(String),
			created_at DateTime64(3)
		) ENGINE = MergeTree()
		ORDER BY (created_at, kind)
		PARTITION BY toYYYYMM(created_at)`,
		keyEventsTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteKeyEvent реализует ports.IKeyAnalytics: пишет одно нажатие в ClickHouse.
func (w *KeyEventWriter) WriteKeyEvent(ctx context.Context, ev domain.KeyEvent) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (session_id, key, kind, created_at) VALUES (?, ?, ?, ?)",
		keyEventsTable,
	)
	_, err := w.db.DB().ExecContext(ctx, query, ev.SessionID, ev.Key, ev.Kind, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("insert key event: %w", err)
	}
	return nil
}
