package completion

import (
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"mvdan.cc/sh/v3/syntax"
)

// Tokenize splits text into words using shell quoting rules and reports
// whether it ends in unescaped whitespace.
//
// Quotes and escapes are removed, everything else is kept literally:
// "~/logs" and "$HOME" are not expanded, "#" does not start a comment and
// operators such as "|" or ";" are ordinary characters. Unbalanced quotes
// return a MalformedInputError and no words.
func Tokenize(text string) ([]string, bool, error) {
	var words []string

	src := escapeOperators(text)
	parser := syntax.NewParser()
	err := parser.Words(strings.NewReader(src), func(w *syntax.Word) bool {
		words = append(words, literal(src, w))
		return true
	})
	if err != nil {
		return nil, false, derrors.NewMalformedInputError(text, "cannot split input into words", err)
	}

	return words, endsWithSpace(text), nil
}

// operatorChars lose their shell meaning outside quotes
const operatorChars = "#|&;()<>$`!"

// escapeOperators backslash-escapes the characters that would make the
// shell parser read comments, operators, expansions or substitutions, so
// only quoting and escapes shape the words
func escapeOperators(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + 8)

	var quote rune
	escaped := false
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote == '\'':
			if r == '\'' {
				quote = 0
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '$', '`':
				sb.WriteByte('\\')
			}
		case r == '\'' || r == '"':
			quote = r
		case strings.ContainsRune(operatorChars, r):
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// literal rebuilds the unquoted text of a parsed word
func literal(src string, w *syntax.Word) string {
	var sb strings.Builder
	for _, part := range w.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(unescape(p.Value, false))
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				if lit, ok := inner.(*syntax.Lit); ok {
					sb.WriteString(unescape(lit.Value, true))
					continue
				}
				sb.WriteString(source(src, inner))
			}
		default:
			sb.WriteString(source(src, part))
		}
	}
	return sb.String()
}

// source returns the raw text a node was parsed from
func source(src string, n syntax.Node) string {
	start, end := int(n.Pos().Offset()), int(n.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}

// unescape drops backslash escapes. Inside double quotes only the
// characters the shell treats specially there are escapable.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		next := s[i+1]
		if next == '\n' {
			i++
			continue
		}
		if quoted && !strings.ContainsRune("$`\"\\", rune(next)) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte(next)
		i++
	}
	return sb.String()
}

// endsWithSpace reports whether text ends in whitespace that is not escaped
// by a backslash
func endsWithSpace(text string) bool {
	if text == "" {
		return false
	}
	runes := []rune(text)
	last := len(runes) - 1
	if !unicode.IsSpace(runes[last]) {
		return false
	}

	backslashes := 0
	for i := last - 1; i >= 0 && runes[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 0
}
