package utils

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AlternateCapitalizations returns s as given, all lower-case and
// Capitalized, without repeats. Seed lookups try them in this order.
func AlternateCapitalizations(s string) []string {
	out := []string{s}
	add := func(v string) {
		for _, seen := range out {
			if seen == v {
				return
			}
		}
		out = append(out, v)
	}
	lower := strings.ToLower(s)
	add(lower)
	if r, size := utf8.DecodeRuneInString(lower); size > 0 {
		add(string(unicode.ToUpper(r)) + lower[size:])
	}
	return out
}

// FormatWithCommas formats an integer with comma separators.
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}
	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return sign + b.String()
}
