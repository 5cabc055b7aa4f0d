package utils

import (
	"strings"
	"unicode"
)

// IsSeparator checks if a rune may appear between the words of a title
func IsSeparator(r rune) bool {
	return r == ' ' || r == '-' || r == '&' || r == '.' || r == '/' || r == ','
}

// titlePunct are the non-separator characters seen inside titles,
// as in "Director's Assistant", "C++ Developer" or "Manager (Acting)".
const titlePunct = "'’()+#:"

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars reports characters that never occur in a title
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || IsSeparator(r) || strings.ContainsRune(titlePunct, r) {
			continue
		}
		if unicode.IsControl(r) || unicode.IsSymbol(r) || unicode.IsPunct(r) {
			return true
		}
	}
	return false
}

// IsRepetitive checks for one byte repeated three or more times ("aaa")
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// IsValidPrefix checks if a lookup prefix is worth a trie walk
func IsValidPrefix(s string) bool {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return false
	case IsOnlyNumbers(s):
		return false
	case ContainsSpecialChars(s):
		return false
	case IsRepetitive(s):
		return false
	}
	return true
}
