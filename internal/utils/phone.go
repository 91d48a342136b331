package utils

import "strings"

// NormalizePhone strips everything but digits. "+265 888 123 456" and
// "0888123456" both canonicalize before any lookup or insert.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone accepts 9-15 digits after normalization (Malawi numbers are
// 9-12, the upper bound leaves room for full international form).
func ValidPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 9 && n <= 15
}
