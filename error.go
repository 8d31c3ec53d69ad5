package funcli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ParseError is returned when the raw token stream cannot be interpreted
// against a command's parameter list: a malformed long flag, too many
// positional values, a conflicting positional/flag pair, or a wrong number
// of values in a flag's run.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// UnknownArgumentError is returned when a flag token names a parameter that
// is not declared on the target command.
type UnknownArgumentError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownArgumentError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown argument %q. Did you mean one of these?\n\t%s",
			"--"+e.Name, strings.Join(e.Suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown argument %q", "--"+e.Name)
}

// MissingArgumentError is returned when one or more required parameters are
// left unfilled after both the positional run and every flag run have been
// assigned.
type MissingArgumentError struct {
	Names []string
}

func (e *MissingArgumentError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("missing required argument %q", e.Names[0])
	}
	return fmt.Sprintf("missing required arguments %q", strings.Join(e.Names, ", "))
}

// CoercionError is returned when a raw string value cannot be converted to a
// parameter's declared type.
type CoercionError struct {
	Param string
	Value string
	Type  reflect.Type
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("argument %q: invalid %s value %q", e.Param, e.Type, e.Value)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// UnknownCommandError is returned by a [CommandApp] when the first positional
// token does not name a registered command.
type UnknownCommandError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown command %q. Did you mean one of these?\n\t%s",
			e.Name, strings.Join(e.Suggestions, "\n\t"))
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}

// ExitError wraps an error with the process exit code it should map to.
// [App.Run] returns an ExitError for every parse, coercion, and dispatch
// failure; callers typically pass its Code to os.Exit.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode reports the process exit code for err: 0 for nil, the wrapped
// code for an [ExitError], and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
