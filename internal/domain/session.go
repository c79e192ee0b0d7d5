package domain

import (
	"errors"
	"time"
)

// ErrSessionNotFound — сессии нет или она истекла.
var ErrSessionNotFound = errors.New("session not found")

// Session — калькулятор одной вкладки браузера.
type Session struct {
	ID        string
	State     State
	UpdatedAt time.Time
}

// KeyEvent — телеметрия одного нажатия. Хранит только подпись клавиши, без значений на дисплее.
type KeyEvent struct {
	SessionID string    `json:"session_id"`
	Key       string    `json:"key"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}
