package completion

import (
	"errors"
	"testing"

	"github.com/NikitaCOEUR/devlog/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		words    []string
		trailing bool
	}{
		{name: "empty", text: "", words: nil},
		{name: "spaces only", text: "   ", words: nil, trailing: true},
		{name: "single word", text: "fi", words: []string{"fi"}},
		{name: "trailing space", text: "remove ", words: []string{"remove"}, trailing: true},
		{name: "trailing tab", text: "remove\t", words: []string{"remove"}, trailing: true},
		{name: "flags", text: "filter --event lo", words: []string{"filter", "--event", "lo"}},
		{name: "double quotes", text: `add "my logs/app.log"`, words: []string{"add", "my logs/app.log"}},
		{name: "single quotes", text: `add 'a b' c`, words: []string{"add", "a b", "c"}},
		{name: "escaped space", text: `add my\ logs`, words: []string{"add", "my logs"}},
		{name: "escaped trailing space", text: `add my\ `, words: []string{"add", "my "}},
		{name: "escaped quote in double quotes", text: `find "a\"b"`, words: []string{"find", `a"b`}},
		{name: "tilde kept", text: "add ~/logs/", words: []string{"add", "~/logs/"}},
		{name: "parameter kept", text: "add $HOME/x", words: []string{"add", "$HOME/x"}},
		{name: "hash is not a comment", text: "find #", words: []string{"find", "#"}},
		{name: "hash word", text: "find #1234 ", words: []string{"find", "#1234"}, trailing: true},
		{name: "hash after flag", text: "filter --event #tag", words: []string{"filter", "--event", "#tag"}},
		{name: "pipe", text: "find a|b", words: []string{"find", "a|b"}},
		{name: "separated operators", text: "find a | b ; c && d", words: []string{"find", "a", "|", "b", ";", "c", "&&", "d"}},
		{name: "parentheses", text: "find (x)", words: []string{"find", "(x)"}},
		{name: "redirections", text: "find <a >b", words: []string{"find", "<a", ">b"}},
		{name: "substitution kept", text: "find $(date) `id`", words: []string{"find", "$(date)", "`id`"}},
		{name: "parameter in double quotes", text: `find "$USER x"`, words: []string{"find", "$USER x"}},
		{name: "operators in quotes", text: `find "a|b" 'c;d'`, words: []string{"find", "a|b", "c;d"}},
		{name: "escaped hash", text: `find \#x`, words: []string{"find", "#x"}},
		{name: "assignment word", text: "config --set max_display=5", words: []string{"config", "--set", "max_display=5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, trailing, err := Tokenize(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.words, words)
			assert.Equal(t, tt.trailing, trailing)
		})
	}
}

func TestTokenize_Malformed(t *testing.T) {
	for _, text := range []string{`add "unterminated`, `add 'open`} {
		words, trailing, err := Tokenize(text)
		require.Error(t, err, text)
		assert.Nil(t, words)
		assert.False(t, trailing)

		var malformed *derrors.MalformedInputError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, text, malformed.Input)
		assert.Equal(t, "MALFORMED_INPUT", malformed.Code())
	}
}

func TestEscapeOperators(t *testing.T) {
	assert.Equal(t, `find \#`, escapeOperators("find #"))
	assert.Equal(t, `a\|b`, escapeOperators("a|b"))
	assert.Equal(t, `'a|b'`, escapeOperators("'a|b'"))
	assert.Equal(t, `"\$x|y"`, escapeOperators(`"$x|y"`))
	assert.Equal(t, `\#`, escapeOperators(`\#`))
	assert.Equal(t, "plain words", escapeOperators("plain words"))
}

func TestEndsWithSpace(t *testing.T) {
	assert.False(t, endsWithSpace(""))
	assert.False(t, endsWithSpace("add"))
	assert.True(t, endsWithSpace("add "))
	assert.False(t, endsWithSpace(`add\ `))
	assert.True(t, endsWithSpace(`add\\ `))
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "plain", unescape("plain", false))
	assert.Equal(t, "a b", unescape(`a\ b`, false))
	assert.Equal(t, `a\n`, unescape(`a\\n`, false))
	assert.Equal(t, `a\ b`, unescape(`a\ b`, true))
	assert.Equal(t, `$x`, unescape(`\$x`, true))
}
