package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		d := Parse("")
		assert.Empty(t, d.Summary)
		assert.Empty(t, d.Detail)
		assert.Empty(t, d.Params)
	})
	t.Run("summary only", func(t *testing.T) {
		t.Parallel()
		d := Parse("Add two numbers.")
		assert.Equal(t, "Add two numbers.", d.Summary)
		assert.Empty(t, d.Detail)
	})
	t.Run("multi-line summary joins", func(t *testing.T) {
		t.Parallel()
		d := Parse("Add two\nnumbers.")
		assert.Equal(t, "Add two numbers.", d.Summary)
	})
	t.Run("summary, detail, and parameters", func(t *testing.T) {
		t.Parallel()
		d := Parse(`Add two numbers.

The result is printed in decimal. Overflow wraps
like native integer addition.

a: first addend
b: second addend`)
		assert.Equal(t, "Add two numbers.", d.Summary)
		assert.Equal(t, "The result is printed in decimal. Overflow wraps\nlike native integer addition.", d.Detail)
		assert.Equal(t, map[string]string{
			"a": "first addend",
			"b": "second addend",
		}, d.Params)
	})
	t.Run("indented continuation lines extend a description", func(t *testing.T) {
		t.Parallel()
		d := Parse(`Do a thing.

mode: the operating mode,
  one of fast or slow`)
		assert.Equal(t, "the operating mode, one of fast or slow", d.Params["mode"])
	})
	t.Run("paragraphs that are not parameter blocks are detail", func(t *testing.T) {
		t.Parallel()
		d := Parse(`Summary.

Note: this line looks like a parameter but the next does not.
So the whole paragraph is detail.`)
		assert.Empty(t, d.Params)
		assert.Contains(t, d.Detail, "So the whole paragraph is detail.")
	})
	t.Run("multiple parameter blocks merge", func(t *testing.T) {
		t.Parallel()
		d := Parse(`Summary.

a: first

b: second`)
		assert.Equal(t, map[string]string{"a": "first", "b": "second"}, d.Params)
	})
}
