package util

import "unicode/utf8"

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

// TrimString cuts s down to at most length bytes without splitting a rune.
func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	cut := length
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}
