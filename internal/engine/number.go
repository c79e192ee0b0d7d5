package engine

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Токены для неконечных значений (деление на ноль и т.п.).
const (
	InfinityToken = "Infinity"
	NaNToken      = "NaN"
)

// numericPrefix — самый длинный префикс строки, который читается как десятичное число.
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber читает каноническую строку так же снисходительно, как кнопки калькулятора:
// берётся самый длинный числовой префикс ("12." → 12, "Infinity." → +Inf); если префикса нет — NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	sign := 1.0
	rest := s
	switch {
	case strings.HasPrefix(rest, "-"):
		sign, rest = -1, rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, InfinityToken) {
		return math.Inf(int(sign))
	}
	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// переполнение экспоненты: ParseFloat уже вернул ±Inf или 0
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// FormatValue — каноническая строка числа: кратчайшие цифры, восстанавливающие значение;
// экспоненциальная запись вне [1e-6, 1e21); -0 печатается как "0"; неконечные значения —
// "Infinity", "-Infinity", "NaN".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return NaNToken
	case math.IsInf(v, 1):
		return InfinityToken
	case math.IsInf(v, -1):
		return "-" + InfinityToken
	case v == 0:
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	// "d.ddddde±XX" → цифры и десятичный порядок n (значение = 0.digits × 10^n).
	e := strconv.FormatFloat(v, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expStr)
	n := exp + 1
	k := len(digits)

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		expSign := "+"
		if n-1 < 0 {
			expSign = "-"
		}
		absExp := strconv.Itoa(abs(n - 1))
		if k == 1 {
			out = digits + "e" + expSign + absExp
		} else {
			out = digits[:1] + "." + digits[1:] + "e" + expSign + absExp
		}
	}
	return sign + out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
