package splitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		delimiters []string
		expected   []string
	}{
		{
			name:       "empty source",
			source:     "",
			delimiters: []string{",", ";"},
			expected:   []string{},
		},
		{
			name:       "no delimiters",
			source:     "abc",
			delimiters: nil,
			expected:   []string{"abc"},
		},
		{
			name:       "mixed delimiters with runs",
			source:     "a,b;;c",
			delimiters: []string{",", ";"},
			expected:   []string{"a", "b", "c"},
		},
		{
			name:       "leading and trailing delimiters",
			source:     ";;a,b,,",
			delimiters: []string{",", ";"},
			expected:   []string{"a", "b"},
		},
		{
			name:       "multi character delimiter is a set of runes",
			source:     "one-two+three+-four",
			delimiters: []string{"+-"},
			expected:   []string{"one", "two", "three", "four"},
		},
		{
			name:       "source made only of delimiters",
			source:     " , ; ",
			delimiters: []string{" ", ",", ";"},
			expected:   []string{},
		},
		{
			name:       "whitespace delimiter keeps punctuation",
			source:     "Hello, world. How are you?",
			delimiters: []string{" "},
			expected:   []string{"Hello,", "world.", "How", "are", "you?"},
		},
		{
			name:       "unicode delimiters",
			source:     "α•β••γ",
			delimiters: []string{"•"},
			expected:   []string{"α", "β", "γ"},
		},
		{
			name:       "overlapping delimiter strings",
			source:     "a..b..c",
			delimiters: []string{".", ".."},
			expected:   []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.source, tt.delimiters)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplit_TokensAreDelimiterFreeAndOrdered(t *testing.T) {
	sources := []string{
		"a,b;;c",
		",,x, y ;z,,",
		"no delimiters here",
		"::a:b::c:",
	}
	delimiters := []string{",", ";", ":"}
	set := NewDelimiterSet(delimiters...)

	for _, source := range sources {
		t.Run(source, func(t *testing.T) {
			offset := 0
			for _, token := range Split(source, delimiters) {
				assert.NotEmpty(t, token)
				assert.False(t, strings.ContainsFunc(token, set.Contains), "token %q contains a delimiter", token)

				idx := strings.Index(source[offset:], token)
				require.GreaterOrEqual(t, idx, 0, "token %q not found after offset %d", token, offset)
				start := offset + idx
				end := start + len(token)

				// a token is a maximal run, so it is bounded by delimiters or the string edges
				if start > 0 {
					assert.True(t, set.Contains(rune(source[start-1])))
				}
				if end < len(source) {
					assert.True(t, set.Contains(rune(source[end])))
				}
				offset = end
			}
		})
	}
}

func TestSplitString(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitString("a,b;;c", ",;"))
	assert.Equal(t, []string{"abc"}, SplitString("abc", ""))
	assert.Empty(t, SplitString("", ",;"))
}

func TestDelimiterSet(t *testing.T) {
	set := NewDelimiterSet(",;", ";", " ")

	assert.Len(t, set, 3)
	assert.True(t, set.Contains(','))
	assert.True(t, set.Contains(' '))
	assert.False(t, set.Contains('a'))
	assert.Equal(t, " ,;", set.String())

	// a set is reusable across sources
	assert.Equal(t, []string{"x", "y"}, set.Split("x, y"))
	assert.Equal(t, []string{"p", "q"}, set.Split(";p;q;"))
}
