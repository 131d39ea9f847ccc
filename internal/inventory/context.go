package inventory

import "strings"

// ContextSnippet returns the five-line window centered on the given zero-based
// row: two lines before, the line itself and two after, clipped to file bounds.
func ContextSnippet(content string, row int) string {
	lines := strings.Split(content, "\n")

	start := row - 2
	if start < 0 {
		start = 0
	}
	end := row + 3
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}
