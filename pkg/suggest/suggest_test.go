package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSimilar(t *testing.T) {
	t.Parallel()

	commands := []string{"version", "verify", "view", "add", "remove"}

	t.Run("close typo", func(t *testing.T) {
		t.Parallel()
		got := FindSimilar("verzion", commands, 3)
		assert.Contains(t, got, "version")
	})
	t.Run("prefix ranks high", func(t *testing.T) {
		t.Parallel()
		got := FindSimilar("ver", commands, 3)
		assert.Contains(t, got, "version")
		assert.Contains(t, got, "verify")
	})
	t.Run("nothing similar", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FindSimilar("xyzzy", commands, 3))
	})
	t.Run("result cap", func(t *testing.T) {
		t.Parallel()
		got := FindSimilar("ver", commands, 1)
		assert.Len(t, got, 1)
	})
	t.Run("empty target and zero budget", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, FindSimilar("", commands, 3))
		assert.Empty(t, FindSimilar("ver", commands, 0))
	})
	t.Run("ties break alphabetically", func(t *testing.T) {
		t.Parallel()
		got := FindSimilar("ver", []string{"verb", "vera"}, 2)
		assert.Equal(t, []string{"vera", "verb"}, got)
	})
	t.Run("hyphen and underscore compare equal", func(t *testing.T) {
		t.Parallel()
		got := FindSimilar("dry-run", []string{"dry_run"}, 1)
		assert.Equal(t, []string{"dry_run"}, got)
	})
}

func TestEditDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, editDistance(tc.a, tc.b), "%q vs %q", tc.a, tc.b)
	}
}
