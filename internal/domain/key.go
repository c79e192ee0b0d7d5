package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey возвращается, когда подпись клавиши не распознана.
var ErrUnknownKey = errors.New("unknown key")

// KeyKind — тип клавиши.
type KeyKind int

const (
	KeyDigit KeyKind = iota + 1
	KeyDecimal
	KeyOperator
	KeyEquals
	KeyClear
	KeySignFlip
	KeyPercent
)

// String возвращает имя типа клавиши (используется в метриках и событиях).
func (k KeyKind) String() string {
	switch k {
	case KeyDigit:
		return "digit"
	case KeyDecimal:
		return "decimal"
	case KeyOperator:
		return "operator"
	case KeyEquals:
		return "equals"
	case KeyClear:
		return "clear"
	case KeySignFlip:
		return "sign_flip"
	case KeyPercent:
		return "percent"
	default:
		return "unknown"
	}
}

// Key — одно нажатие клавиши.
type Key struct {
	Kind  KeyKind
	Digit byte     // '0'..'9' для KeyDigit
	Op    Operator // для KeyOperator
}

// Конструкторы клавиш для кода и тестов.
func DigitKey(d byte) Key         { return Key{Kind: KeyDigit, Digit: d} }
func OperatorKey(op Operator) Key { return Key{Kind: KeyOperator, Op: op} }

var (
	DecimalKey  = Key{Kind: KeyDecimal}
	EqualsKey   = Key{Kind: KeyEquals}
	ClearKey    = Key{Kind: KeyClear}
	SignFlipKey = Key{Kind: KeySignFlip}
	PercentKey  = Key{Kind: KeyPercent}
)

// ParseKey разбирает подпись клавиши: "0".."9", "." или ",", операторы, "=", "AC"/"C",
// "+/-" или "±", "%".
func ParseKey(s string) (Key, error) {
	label := strings.TrimSpace(s)
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return DigitKey(label[0]), nil
	}
	switch strings.ToUpper(label) {
	case ".", ",":
		return DecimalKey, nil
	case "=", "ENTER":
		return EqualsKey, nil
	case "AC", "C", "CLEAR":
		return ClearKey, nil
	case "+/-", "±", "NEG":
		return SignFlipKey, nil
	case "%":
		return PercentKey, nil
	}
	if op, err := ParseOperator(label); err == nil {
		return OperatorKey(op), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys разбирает последовательность подписей; первая ошибка прерывает разбор.
func ParseKeys(labels []string) ([]Key, error) {
	keys := make([]Key, 0, len(labels))
	for _, l := range labels {
		k, err := ParseKey(l)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Label возвращает каноническую подпись клавиши.
func (k Key) Label() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyDecimal:
		return ","
	case KeyOperator:
		return string(k.Op)
	case KeyEquals:
		return "="
	case KeyClear:
		return "C"
	case KeySignFlip:
		return "+/-"
	case KeyPercent:
		return "%"
	default:
		return ""
	}
}
