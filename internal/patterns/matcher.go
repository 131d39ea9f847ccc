package patterns

import (
	"unicode/utf8"

	"github.com/haasonsaas/aiscan/internal/inventory"
)

// Matcher applies the lexical pattern table to raw text. It is purely
// functional over the process-wide compiled patterns and needs no locking.
type Matcher struct{}

// NewMatcher creates a lexical matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// FindMatches runs every pattern against the content independently and
// returns one Call per match. Patterns are not mutually exclusive; a single
// line may yield multiple Calls.
func (m *Matcher) FindMatches(path, content string) []inventory.Call {
	var matches []inventory.Call

	for _, cp := range compiledPatterns {
		for _, loc := range cp.re.FindAllStringSubmatchIndex(content, -1) {
			matches = append(matches, m.newCall(path, content, loc, cp))
		}
	}

	return matches
}

func (m *Matcher) newCall(path, content string, loc []int, cp compiledPattern) inventory.Call {
	matchStart := loc[0]
	matchText := content[loc[0]:loc[1]]

	line, column := offsetToLineCol(content, matchStart)

	model := ""
	if cp.ExtractModel && len(loc) >= 4 && loc[2] >= 0 {
		model = content[loc[2]:loc[3]]
	}

	return inventory.Call{
		File:    path,
		Line:    line + 1,
		Column:  column + 1,
		Wrapper: cp.WrapperType,
		Model:   model,
		Params: map[string]interface{}{
			"pattern": cp.Name,
			"match":   matchText,
		},
		Context: inventory.ContextSnippet(content, line),
	}
}

// offsetToLineCol converts a byte offset into zero-based line and column
// numbers by walking the content rune by rune. Columns count Unicode scalar
// values, not bytes, so the conversion is exact for multi-byte content.
func offsetToLineCol(content string, byteOffset int) (int, int) {
	line, col, off := 0, 0, 0

	for _, r := range content {
		if off >= byteOffset {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		off += utf8.RuneLen(r)
	}

	return line, col
}
