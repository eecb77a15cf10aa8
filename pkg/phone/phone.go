package phone

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// Normalize приводит номер телефона к каноническому виду для хранения и дедупликации:
// только цифры, без ведущих нулей. Клиенты дедуплицируются по (tenant, Normalize(phone)),
// поэтому "(11) 98765-4321" и "11987654321" считаются одним номером. Номер с
// транковым префиксом ("011 9876...") намеренно склеивается с формой без нуля:
// для ключа дедупликации это один и тот же абонент.
func Normalize(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	return strings.TrimLeft(digits, "0")
}

// IsValid проверяет, что после нормализации номер содержит разумное количество цифр
func IsValid(raw string) bool {
	n := len(Normalize(raw))
	return n >= 8 && n <= 15
}
