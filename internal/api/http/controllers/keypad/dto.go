package keypad

import (
	"time"

	"keypadCalc/internal/domain"
)

// SessionResponse — состояние калькулятора для отрисовки: дисплей и подпись клавиши сброса.
type SessionResponse struct {
	ID         string    `json:"id"`
	Display    string    `json:"display"`
	ClearLabel string    `json:"clear_label"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		Display:    s.State.Display,
		ClearLabel: s.State.ClearLabel(),
		UpdatedAt:  s.UpdatedAt,
	}
}

// PressRequest — нажатия клавиш по порядку (для POST /api/v1/sessions/:id/keys).
type PressRequest struct {
	Keys []string `json:"keys" binding:"required,min=1"`
}

// Validate разбирает подписи клавиш.
func (r PressRequest) Validate() ([]domain.Key, error) {
	return domain.ParseKeys(r.Keys)
}

// FormatRequest — каноническое число для форматирования (для POST /api/v1/format).
type FormatRequest struct {
	Raw string `json:"raw"`
}

// FormatResponse — число в виде для дисплея и обратно в каноническом виде.
type FormatResponse struct {
	Display   string `json:"display"`
	Canonical string `json:"canonical"`
}

// ErrorResponse — ответ с ошибкой.
type ErrorResponse struct {
	Message string `json:"message"`
}
