// Package chatlines splits multi-line replies for chats that only carry
// single-line messages.
package chatlines

import "strings"

// Split returns the non-blank lines of text. A line whose field rendered
// empty ("Date : ") is still sent.
func Split(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
