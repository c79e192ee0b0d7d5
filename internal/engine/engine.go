// Package engine — конечный автомат калькулятора: дисплей, отложенная операция, форматирование.
// Все обработчики чистые: принимают domain.State и возвращают новое состояние.
package engine

import (
	"strings"

	"keypadCalc/internal/domain"
)

// Engine применяет нажатия клавиш к состоянию.
type Engine struct {
	// MaxDigits ограничивает количество цифр при наборе числа; 0 — без ограничения.
	MaxDigits int
}

// New создаёт движок с ограничением длины ввода.
func New(maxDigits int) Engine {
	return Engine{MaxDigits: maxDigits}
}

// Apply применяет одно нажатие. Неизвестный тип клавиши оставляет состояние без изменений.
func (e Engine) Apply(s domain.State, k domain.Key) domain.State {
	switch k.Kind {
	case domain.KeyDigit:
		if e.MaxDigits > 0 && !startsFresh(s) && countDigits(s.Display) >= e.MaxDigits {
			return s
		}
		return Digit(s, k.Digit)
	case domain.KeyDecimal:
		return DecimalPoint(s)
	case domain.KeyOperator:
		return Operator(s, k.Op)
	case domain.KeyEquals:
		return Equals(s)
	case domain.KeyClear:
		return Clear(s)
	case domain.KeySignFlip:
		return SignFlip(s)
	case domain.KeyPercent:
		return Percent(s)
	default:
		return s
	}
}

// ApplyAll применяет нажатия по порядку.
func (e Engine) ApplyAll(s domain.State, keys ...domain.Key) domain.State {
	for _, k := range keys {
		s = e.Apply(s, k)
	}
	return s
}

// startsFresh — следующая цифра заменит дисплей, а не допишется к нему.
func startsFresh(s domain.State) bool {
	return s.Display == domain.ZeroDisplay || s.Reset
}

// Digit дописывает цифру к числу на дисплее или начинает новое число.
func Digit(s domain.State, d byte) domain.State {
	if d < '0' || d > '9' {
		return s
	}
	if startsFresh(s) {
		s.Display = FormatNumber(string(d))
		s.Reset = false
		return s
	}
	s.Display = FormatNumber(UnformatNumber(s.Display) + string(d))
	return s
}

// DecimalPoint ставит десятичную запятую, если её ещё нет.
func DecimalPoint(s domain.State) domain.State {
	if s.Reset {
		s.Display = "0" + string(DecimalSeparator)
		s.Reset = false
		return s
	}
	if !strings.ContainsRune(s.Display, DecimalSeparator) {
		s.Display += string(DecimalSeparator)
	}
	return s
}

// Operator запоминает оператор. Если с прошлого оператора был набран операнд, сначала
// вычисляет отложенную операцию и показывает промежуточный итог.
func Operator(s domain.State, op domain.Operator) domain.State {
	current := displayValue(s)
	switch {
	case s.Stored == nil:
		s.Stored = &current
	case !s.Reset:
		result := ApplyPending(*s.Stored, current, s.Op)
		s.Stored = &result
		s.Display = FormatNumber(FormatValue(result))
	}
	s.Op = &op
	s.Reset = true
	return s
}

// ApplyPending вычисляет a op b по правилам IEEE-754 (деление на ноль даёт ±Inf или NaN).
// Без оператора возвращает b.
func ApplyPending(a, b float64, op *domain.Operator) float64 {
	if op == nil {
		return b
	}
	switch *op {
	case domain.OpAdd:
		return a + b
	case domain.OpSub:
		return a - b
	case domain.OpMul:
		return a * b
	case domain.OpDiv:
		return a / b
	default:
		return b
	}
}

// Equals завершает отложенную операцию. Игнорируется без оператора и сразу после оператора.
func Equals(s domain.State) domain.State {
	if s.Op == nil || s.Reset {
		return s
	}
	var stored float64
	if s.Stored != nil {
		stored = *s.Stored
	}
	result := ApplyPending(stored, displayValue(s), s.Op)
	s.Display = FormatNumber(FormatValue(result))
	s.Stored = nil
	s.Op = nil
	s.Reset = true
	return s
}

// Clear: на чистом калькуляторе ничего не делает; при отложенной операции и ненулевом дисплее
// сбрасывает только дисплей; в остальных случаях сбрасывает всё.
func Clear(s domain.State) domain.State {
	switch {
	case s.IsClear():
		return s
	case s.Display != domain.ZeroDisplay && s.Stored != nil:
		s.Display = domain.ZeroDisplay
		s.Reset = false
		return s
	default:
		return domain.NewState()
	}
}

// ClearLabel — подпись клавиши сброса.
func ClearLabel(s domain.State) string {
	return s.ClearLabel()
}

// SignFlip меняет знак числа на дисплее.
func SignFlip(s domain.State) domain.State {
	if s.Display == domain.ZeroDisplay {
		return s
	}
	s.Display = FormatNumber(FormatValue(-displayValue(s)))
	return s
}

// Percent делит число на дисплее на 100. Флаг Reset не трогает.
func Percent(s domain.State) domain.State {
	s.Display = FormatNumber(FormatValue(displayValue(s) / 100))
	return s
}

func displayValue(s domain.State) float64 {
	return ParseNumber(UnformatNumber(s.Display))
}
