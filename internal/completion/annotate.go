package completion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// MaxMetaWidth bounds the display width of a candidate's meta text
const MaxMetaWidth = 50

// annotate turns a raw suggestion into a candidate replacing the current word
func annotate(s Suggestion, current string) Candidate {
	return Candidate{
		Value:       s.Value,
		ReplaceFrom: -utf8.RuneCountInString(current),
		Meta:        cleanMeta(s.Description),
	}
}

// cleanMeta keeps the first line, drops control characters and truncates
// to MaxMetaWidth columns
func cleanMeta(meta string) string {
	if i := strings.IndexAny(meta, "\r\n"); i >= 0 {
		meta = meta[:i]
	}
	meta = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, meta)
	return runewidth.Truncate(strings.TrimSpace(meta), MaxMetaWidth, "")
}
