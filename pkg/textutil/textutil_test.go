package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("short text stays on one line", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"hello world"}, Wrap("hello world", 80))
	})
	t.Run("breaks on whitespace", func(t *testing.T) {
		t.Parallel()
		got := Wrap("one two three four", 9)
		assert.Equal(t, []string{"one two", "three", "four"}, got)
	})
	t.Run("long word gets its own line", func(t *testing.T) {
		t.Parallel()
		got := Wrap("a verylongunbreakableword b", 5)
		assert.Equal(t, []string{"a", "verylongunbreakableword", "b"}, got)
	})
	t.Run("collapses internal whitespace", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"a b"}, Wrap("a \t b", 80))
	})
	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Wrap("", 80))
	})
}
