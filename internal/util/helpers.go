package util

import (
	"time"
	"unicode/utf8"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ISOTime — UTC с миллисекундами, например 2025-03-01T10:04:05.123Z
func ISOTime(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// TruncateRunes — безопасное усечение по рунам
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n])
}
