package indexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// SplitLines normalizes text to NFC and splits it into lines. "\r\n" and lone "\r"
// count as line breaks. A trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
