package engine

import "strings"

// Разделители представления: точка группирует тысячи, запятая отделяет дробную часть.
const (
	GroupSeparator   = '.'
	DecimalSeparator = ','
	canonicalPoint   = '.'
)

// FormatNumber переводит каноническую строку ("-1234.5") в вид для дисплея ("-1.234,5").
// Пустая строка и "0" дают "0". Дробная часть не группируется и сохраняется как есть,
// поэтому набранные нули ("0.50", "12.") не теряются.
func FormatNumber(raw string) string {
	if raw == "" || raw == "0" {
		return "0"
	}
	if strings.IndexByte(raw, canonicalPoint) >= 0 {
		parts := strings.Split(raw, string(canonicalPoint))
		return groupThousands(parts[0]) + string(DecimalSeparator) + parts[1]
	}
	return groupThousands(raw)
}

// UnformatNumber — обратное преобразование: убирает разделители групп и меняет первую запятую на точку.
func UnformatNumber(display string) string {
	s := strings.ReplaceAll(display, string(GroupSeparator), "")
	return strings.Replace(s, string(DecimalSeparator), string(canonicalPoint), 1)
}

// groupThousands вставляет разделитель в позиции, которая не является границей слова и за которой
// идёт группа цифр длиной кратной трём до конца числа. Знак и токены вроде "Infinity" или "1e+21"
// при этом не затрагиваются.
func groupThousands(s string) string {
	if len(s) < 4 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	for i := 0; i < len(s); i++ {
		if i > 0 && isWordChar(s[i-1]) == isWordChar(s[i]) && digitRunMultipleOf3(s[i:]) {
			b.WriteByte(GroupSeparator)
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// digitRunMultipleOf3 — s начинается с ненулевого числа цифр, кратного трём, за которым конец или не-цифра.
func digitRunMultipleOf3(s string) bool {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n > 0 && n%3 == 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordChar(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// countDigits — количество цифр на дисплее (для ограничения длины ввода).
func countDigits(display string) int {
	n := 0
	for i := 0; i < len(display); i++ {
		if isDigit(display[i]) {
			n++
		}
	}
	return n
}
