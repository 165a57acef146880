package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsSeparator checks if a rune may appear inside a multi-word answer
func IsSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '\''
}

// EqualFold performs case-insensitive rune equality check
func EqualFold(a, b rune) bool {
	if a == b {
		return true
	}

	// ASCII folding first, it covers nearly every word in practice
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		return a == b
	}

	return unicode.ToLower(a) == unicode.ToLower(b)
}

// NormalizeWord lowercases and trims a word. Inner whitespace runs are
// collapsed to a single space so "ice  cream" and "ice cream" compare equal.
func NormalizeWord(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
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

// ContainsSpecialChars checks if a string contains anything other than
// letters, digits and the separators allowed in answers
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsValidWord reports whether a normalized token can live in the lexicon.
// Rejects empty strings, pure numbers and tokens carrying markup or
// punctuation, which usually means a stray wordlist line.
func IsValidWord(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	return !ContainsSpecialChars(s)
}

// RuneLen returns the number of runes in s
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
