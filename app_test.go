package funcli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalcApp(t *testing.T) *CommandApp {
	t.Helper()
	app, err := NewCommandApp("calc",
		&Command{
			Name:   "add",
			Func:   func(a, b int) int { return a + b },
			Doc:    "Add two numbers.\n\na: left operand\nb: right operand",
			Params: []*Param{{Name: "a"}, {Name: "b"}},
		},
		&Command{
			Name:    "sub",
			Aliases: []string{"minus"},
			Func:    func(a, b int) int { return a - b },
			Doc:     "Subtract two numbers.",
			Params:  []*Param{{Name: "a"}, {Name: "b"}},
		},
	)
	require.NoError(t, err)
	app.Brief = "A tiny calculator."
	return app
}

func TestCommandApp(t *testing.T) {
	t.Parallel()

	t.Run("dispatches on the first token", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdout := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"add", "1", "2"}, &RunOptions{Stdout: stdout})
		require.NoError(t, err)
		assert.Equal(t, "3\n", stdout.String())
	})
	t.Run("command aliases resolve", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdout := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"minus", "5", "2"}, &RunOptions{Stdout: stdout})
		require.NoError(t, err)
		assert.Equal(t, "3\n", stdout.String())
	})
	t.Run("unknown command suggests close names", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stderr := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"ad", "1", "2"}, &RunOptions{Stderr: stderr})
		require.Error(t, err)
		assert.Equal(t, 2, ExitCode(err))
		var unknownErr *UnknownCommandError
		require.ErrorAs(t, err, &unknownErr)
		assert.Contains(t, unknownErr.Suggestions, "add")
		assert.Contains(t, stderr.String(), "Did you mean")
		assert.Contains(t, stderr.String(), "Usage: calc")
	})
	t.Run("no arguments prints app help", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdout := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), nil, &RunOptions{Stdout: stdout})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage: calc [MAGIC] <COMMAND> ...")
		assert.Contains(t, stdout.String(), "add")
		assert.Contains(t, stdout.String(), "sub")
	})
	t.Run("help before any command shows app help", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdout := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"--help"}, &RunOptions{Stdout: stdout})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage: calc [MAGIC] <COMMAND> ...")
	})
	t.Run("help after a command shows that command's help", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdout := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"add", "--help"}, &RunOptions{Stdout: stdout})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage: add [MAGIC] [POSITIONAL] [KEYWORD]")
		assert.Contains(t, stdout.String(), "left operand")
	})
	t.Run("flag before command is an error", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stderr := bytes.NewBuffer(nil)
		err := app.Run(context.Background(), []string{"--verbose", "add"}, &RunOptions{Stderr: stderr})
		require.Error(t, err)
		assert.Equal(t, 2, ExitCode(err))
		assert.Contains(t, stderr.String(), "expected a command")
	})
	t.Run("command names fold hyphens", func(t *testing.T) {
		t.Parallel()
		var called bool
		app, err := NewCommandApp("tool", &Command{
			Name: "dry_run",
			Func: func() { called = true },
		})
		require.NoError(t, err)
		err = app.Run(context.Background(), []string{"dry-run"}, &RunOptions{Stdout: bytes.NewBuffer(nil)})
		require.NoError(t, err)
		assert.True(t, called)
	})
	t.Run("duplicate command names rejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommandApp("tool",
			&Command{Name: "run", Func: func() {}},
			&Command{Name: "run", Func: func() {}},
		)
		require.Error(t, err)
		assert.ErrorContains(t, err, `command name "run" already used`)
	})
	t.Run("alias collides with existing name", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommandApp("tool",
			&Command{Name: "run", Func: func() {}},
			&Command{Name: "exec", Aliases: []string{"run"}, Func: func() {}},
		)
		require.Error(t, err)
		assert.ErrorContains(t, err, "already used")
	})
}

func TestCommandAppCycle(t *testing.T) {
	t.Parallel()

	t.Run("round trips commands across lines", func(t *testing.T) {
		t.Parallel()
		app := newCalcApp(t)
		stdin := strings.NewReader("add 1 2\nsub 9 4\nnope\n")
		stdout := bytes.NewBuffer(nil)
		stderr := bytes.NewBuffer(nil)
		err := app.Cycle(context.Background(), &RunOptions{
			Stdin: stdin, Stdout: stdout, Stderr: stderr,
		})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage: calc", "app help prints once up front")
		assert.Contains(t, stdout.String(), "3\n")
		assert.Contains(t, stdout.String(), "5\n")
		assert.Contains(t, stderr.String(), `unknown command "nope"`)
	})
	t.Run("registry persists across iterations", func(t *testing.T) {
		t.Parallel()
		var count int
		app, err := NewCommandApp("tool", &Command{
			Name: "tick",
			Func: func() { count++ },
		})
		require.NoError(t, err)
		stdin := strings.NewReader("tick\ntick\ntick\n")
		err = app.Cycle(context.Background(), &RunOptions{
			Stdin: stdin, Stdout: bytes.NewBuffer(nil), Stderr: bytes.NewBuffer(nil),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}
