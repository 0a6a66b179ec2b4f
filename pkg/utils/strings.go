package utils

import "strings"

// PadLeft left-pads s with pad until it is at least width runes long
func PadLeft(s string, width int, pad rune) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}

// StringOrEmpty dereferences a possibly nil string pointer
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}
