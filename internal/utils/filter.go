package utils

import (
	"unicode"
)

// IsWordPunct reports whether r may appear inside a seed word, as in
// "o'clock" or "follow-up".
func IsWordPunct(r rune) bool {
	return r == '\'' || r == '-'
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks if a string contains anything but letters
// and in-word punctuation.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !IsWordPunct(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks for one character repeated three or more times ("aaa").
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

// IsValidSeed checks if input can be used as a seed word: non-empty, at most
// maxLen bytes, made of letters and in-word punctuation, and not repetitive.
func IsValidSeed(s string, maxLen int) bool {
	if len(s) == 0 || (maxLen > 0 && len(s) > maxLen) {
		return false
	}
	if IsOnlyNumbers(s) || ContainsSpecialChars(s) {
		return false
	}
	return !IsRepetitive(s)
}
