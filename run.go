package funcli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/google/shlex"
)

// RunOptions specifies the I/O streams and cycle-mode prompt for an app.
// Any nil stream defaults to the corresponding os stream.
type RunOptions struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Prompt is written before each cycle-mode read. Defaults to "> ".
	Prompt string
}

func fillRunOptions(opts *RunOptions) *RunOptions {
	if opts == nil {
		opts = &RunOptions{}
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Prompt == "" {
		opts.Prompt = "> "
	}
	return opts
}

// runCommand is the single-command dispatch path shared by [App] and
// [CommandApp]: help short-circuit, tokenize, match, coerce, invoke. The
// bound function is only called once every argument has been parsed and
// coerced.
func runCommand(ctx context.Context, c *Command, args []string, opts *RunOptions) error {
	if hasHelpToken(args) {
		fmt.Fprint(opts.Stdout, commandUsageText(c))
		return nil
	}

	callArgs, err := parseCallArgs(c, args)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "Error: %v\n\n%s", err, commandUsageText(c))
		return &ExitError{Code: 2, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return dispatch(c, callArgs, opts)
}

func parseCallArgs(c *Command, args []string) ([]reflect.Value, error) {
	positionals, runs, err := separateArgs(args)
	if err != nil {
		return nil, err
	}
	m, err := matchArgs(c, positionals, runs)
	if err != nil {
		return nil, err
	}
	return buildCallArgs(c, m)
}

// dispatch invokes the bound function and handles its returns: a trailing
// error propagates, any other non-empty value prints to Stdout.
func dispatch(c *Command, callArgs []reflect.Value, opts *RunOptions) error {
	out := c.fn.Call(callArgs)
	switch len(out) {
	case 0:
		return nil
	case 1:
		if c.fn.Type().Out(0).Implements(errorType) {
			return asError(out[0])
		}
		printResult(opts.Stdout, out[0])
		return nil
	default:
		if err := asError(out[1]); err != nil {
			return err
		}
		printResult(opts.Stdout, out[0])
		return nil
	}
}

func asError(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface().(error)
}

// printResult writes a command's return value to w, skipping the "no
// output" cases: nil pointers/interfaces/slices/maps and empty strings.
func printResult(w io.Writer, v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		if v.IsNil() {
			return
		}
	case reflect.String:
		if v.Len() == 0 {
			return
		}
	}
	fmt.Fprintln(w, v.Interface())
}

// cycle is the shared read-parse-dispatch loop: print help once, then one
// line per iteration until end of input. Each iteration is independent;
// errors are rendered and the loop continues.
func cycle(ctx context.Context, opts *RunOptions, help string, exec func(argv []string) error) error {
	fmt.Fprint(opts.Stdout, help)

	scanner := bufio.NewScanner(opts.Stdin)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(opts.Stdout, opts.Prompt)
		if !scanner.Scan() {
			// a clean EOF ends the loop with a zero status; a read failure
			// is the only fatal error in cycle mode
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		argv, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
			continue
		}
		if len(argv) == 0 {
			continue
		}
		if err := exec(argv); err != nil {
			// ExitErrors were already rendered by the dispatch path
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
			}
		}
	}
}
