package domain

import (
	"encoding/json"
	"errors"
	"strconv"
)

// ErrUnknownOperation возвращается, когда оператор не поддерживается.
var ErrUnknownOperation = errors.New("unknown operation")

// Operator — бинарный оператор калькулятора.
type Operator string

// Константы арифметических операций (подписи клавиш на клавиатуре).
const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// ParseOperator принимает подпись клавиши и ASCII-варианты (*, x, /).
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSub, nil
	case "×", "*", "x", "X":
		return OpMul, nil
	case "÷", "/":
		return OpDiv, nil
	}
	return "", ErrUnknownOperation
}

// Начальное значение дисплея.
const ZeroDisplay = "0"

// State — состояние калькулятора: дисплей, отложенная операция и флаг сброса.
// Stored и Op либо оба nil, либо оба заданы.
type State struct {
	// Display — значение на экране в отформатированном виде ("1.234,5").
	Display string
	// Stored — левый операнд отложенной операции.
	Stored *float64
	// Op — отложенный оператор.
	Op *Operator
	// Reset — следующая цифра начинает новое число.
	Reset bool
}

// NewState возвращает состояние только что включённого калькулятора.
func NewState() State {
	return State{Display: ZeroDisplay}
}

// IsClear — дисплей "0" и нет отложенной операции.
func (s State) IsClear() bool {
	return s.Display == ZeroDisplay && s.Stored == nil && s.Op == nil
}

// ClearLabel — подпись клавиши сброса: "AC" для чистого состояния, иначе "C".
func (s State) ClearLabel() string {
	if s.IsClear() {
		return "AC"
	}
	return "C"
}

// stateJSON — формат хранения State. Stored кодируется строкой, потому что encoding/json
// не умеет ±Inf и NaN, а деление на ноль их даёт.
type stateJSON struct {
	Display string    `json:"display"`
	Stored  *string   `json:"stored,omitempty"`
	Op      *Operator `json:"op,omitempty"`
	Reset   bool      `json:"reset"`
}

// MarshalJSON реализует json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	v := stateJSON{Display: s.Display, Op: s.Op, Reset: s.Reset}
	if s.Stored != nil {
		str := strconv.FormatFloat(*s.Stored, 'g', -1, 64)
		v.Stored = &str
	}
	return json.Marshal(v)
}

// UnmarshalJSON реализует json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var v stateJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	st := State{Display: v.Display, Op: v.Op, Reset: v.Reset}
	if v.Stored != nil {
		f, err := strconv.ParseFloat(*v.Stored, 64)
		if err != nil {
			return err
		}
		st.Stored = &f
	}
	if st.Display == "" {
		st.Display = ZeroDisplay
	}
	*s = st
	return nil
}
