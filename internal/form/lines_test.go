package form

import (
	"testing"

	"github.com/dangerclosesec/jobdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
		list []string
		back string
	}{
		{
			name: "keeps non-empty lines in order",
			text: "first\nsecond\nthird",
			list: []string{"first", "second", "third"},
			back: "first\nsecond\nthird",
		},
		{
			name: "drops blank lines",
			text: "first\n\n  \nsecond\n",
			list: []string{"first", "second"},
			back: "first\nsecond",
		},
		{
			name: "windows line endings",
			text: "a\r\nb",
			list: []string{"a", "b"},
			back: "a\nb",
		},
		{
			name: "bare carriage returns",
			text: "a\rb\r\nc",
			list: []string{"a", "b", "c"},
			back: "a\nb\nc",
		},
		{
			name: "all empty block",
			text: "\n\n",
			list: []string{},
			back: "",
		},
		{
			name: "empty text",
			text: "",
			list: []string{},
			back: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := ParseLines(tt.text).List()
			assert.Equal(t, tt.list, list)

			back := LinesFromList(list)
			assert.Equal(t, tt.back, back.Text())
			assert.NotEmpty(t, back, "editable lines never collapse to zero entries")
		})
	}
}

func TestParsedLinesAreSettable(t *testing.T) {
	l := ParseLines("one\rtwo\r\nthree")
	require.Len(t, l, 3)
	for i, line := range l {
		assert.NoError(t, l.Set(i, line))
	}
}

func TestLinesEditing(t *testing.T) {
	l := NewLines()
	require.Equal(t, Lines{""}, l)

	l.Add()
	require.NoError(t, l.Set(0, "one"))
	require.NoError(t, l.Set(1, "two"))
	assert.Equal(t, Lines{"one", "two"}, l)

	require.NoError(t, l.Remove(0))
	assert.Equal(t, Lines{"two"}, l)

	require.NoError(t, l.Remove(0))
	assert.Equal(t, Lines{""}, l, "removing the last line leaves a single empty line")
}

func TestLinesIndexErrors(t *testing.T) {
	l := Lines{"a", "b"}

	assert.ErrorIs(t, l.Remove(2), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Remove(-1), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Set(5, "x"), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Set(0, "multi\nline"), domain.ErrInvalidInput)
	assert.Equal(t, Lines{"a", "b"}, l)
}
