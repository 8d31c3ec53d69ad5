// Package textutil holds small text helpers for help rendering.
package textutil

import "strings"

// Wrap greedily wraps text into lines of at most width characters, breaking
// on whitespace. Words longer than width occupy a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines   []string
		current []string
		length  int
	)
	for _, word := range words {
		if length > 0 && length+1+len(word) > width {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			length = 0
		}
		current = append(current, word)
		if length == 0 {
			length = len(word)
		} else {
			length += 1 + len(word)
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}
