package funcli

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/funcli/funcli/pkg/docparse"
)

// ParamKind classifies how a parameter may be filled from the token stream.
type ParamKind int

const (
	// PositionalOrKeyword parameters accept a value from the positional run
	// or from a matching flag. This is the zero value and the default for
	// every parameter.
	PositionalOrKeyword ParamKind = iota

	// Positional parameters accept a value from the positional run only;
	// supplying them by flag is a conflict.
	Positional

	// VarPositional parameters absorb the remainder of the positional run.
	// They must correspond to the bound function's variadic parameter.
	VarPositional

	// KeywordOnly parameters accept a value from a matching flag only.
	KeywordOnly

	// VarKeyword parameters collect every flag that matches no declared
	// parameter. They must correspond to a final map[string]T parameter.
	VarKeyword
)

func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "Positional"
	case PositionalOrKeyword:
		return "Positional or keyword"
	case VarPositional:
		return "Variadic positional"
	case KeywordOnly:
		return "Keyword-only"
	case VarKeyword:
		return "Variadic keyword"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// Param describes one parameter of a bound function. Name is required and
// must be unique within the command; everything else is optional. The
// parameter's type is taken from the function signature when the command is
// bound, never from the descriptor.
type Param struct {
	// Name identifies the parameter. It doubles as the long flag name, with
	// hyphens and underscores treated as equivalent ("--dry-run" matches a
	// parameter named "dry_run").
	Name string

	// Aliases are additional flag names. Single-letter aliases are short
	// flags and may be clustered ("-ab" is "-a -b").
	Aliases []string

	// Kind classifies the parameter. The zero value is PositionalOrKeyword.
	Kind ParamKind

	// Default is the value used when the parameter is not supplied. It must
	// be assignable to the parameter's declared type. A nil Default marks
	// the parameter required.
	Default any

	// Help is the one-line description shown in help text. When empty, the
	// per-parameter description from the command's docstring is used.
	Help string

	typ reflect.Type
}

func (p *Param) required() bool { return p.Default == nil }

// names returns the primary name followed by aliases, for help rendering.
func (p *Param) names() []string {
	return append([]string{p.Name}, p.Aliases...)
}

// Command binds a single Go function to a name, a docstring, and an ordered
// parameter descriptor list. Construct it as a struct literal and register
// it with an [App] or [CommandApp]; registration binds and validates it, and
// a bound command is never mutated afterwards.
type Command struct {
	// Name is a single word identifying the command.
	Name string

	// Aliases are additional names the command answers to within a
	// [CommandApp].
	Aliases []string

	// Func is the function to invoke. Its signature must line up with
	// Params: one function parameter per descriptor, in order. It may
	// return nothing, a single value, an error, or (value, error).
	Func any

	// Doc is the command's docstring: a summary line, an optional detail
	// section, and per-parameter descriptions. See [docparse.Parse] for the
	// accepted shape.
	Doc string

	// ShortHelp overrides the docstring summary when non-empty.
	ShortHelp string

	// Detail overrides the docstring long description when non-empty.
	Detail string

	// Params describes the function's parameters in declaration order.
	Params []*Param

	fn      reflect.Value
	doc     docparse.Docstring
	nameIdx map[string]*Param // folded flag name -> param
	bound   bool
}

// bind inspects the function signature, merges docstring descriptions, and
// validates the descriptor list. It is called once at registration.
func (c *Command) bind() error {
	if c.bound {
		return nil
	}
	if c.Name == "" {
		return fmt.Errorf("command has no name")
	}
	if strings.Contains(c.Name, " ") {
		return fmt.Errorf("command name %q contains spaces", c.Name)
	}
	if c.Func == nil {
		return fmt.Errorf("command %q has no function", c.Name)
	}
	fn := reflect.ValueOf(c.Func)
	if fn.Kind() != reflect.Func {
		return fmt.Errorf("command %q: Func is %T, not a function", c.Name, c.Func)
	}
	ft := fn.Type()
	if ft.NumIn() != len(c.Params) {
		return fmt.Errorf("command %q: function takes %d parameters, %d described",
			c.Name, ft.NumIn(), len(c.Params))
	}
	if err := validateReturns(c.Name, ft); err != nil {
		return err
	}

	c.doc = docparse.Parse(c.Doc)
	c.nameIdx = make(map[string]*Param)

	sawVarPos := false
	sawVarKw := false
	for i, p := range c.Params {
		if p.Name == "" {
			return fmt.Errorf("command %q: parameter %d has no name", c.Name, i)
		}
		p.typ = ft.In(i)

		switch p.Kind {
		case Positional, PositionalOrKeyword, KeywordOnly:
		case VarPositional:
			if sawVarPos {
				return fmt.Errorf("command %q: only one variadic positional parameter is allowed", c.Name)
			}
			if !ft.IsVariadic() || i != ft.NumIn()-1 {
				return fmt.Errorf("command %q: parameter %q is variadic positional but the function is not variadic there", c.Name, p.Name)
			}
			sawVarPos = true
		case VarKeyword:
			if sawVarKw {
				return fmt.Errorf("command %q: only one variadic keyword parameter is allowed", c.Name)
			}
			if i != ft.NumIn()-1 {
				return fmt.Errorf("command %q: variadic keyword parameter %q must be last", c.Name, p.Name)
			}
			if p.typ.Kind() != reflect.Map || p.typ.Key().Kind() != reflect.String {
				return fmt.Errorf("command %q: variadic keyword parameter %q must be a map[string]T, got %s", c.Name, p.Name, p.typ)
			}
			sawVarKw = true
		default:
			return fmt.Errorf("command %q: parameter %q has invalid kind %d", c.Name, p.Name, int(p.Kind))
		}

		elem := coerceTarget(p)
		if err := checkCoercible(elem); err != nil {
			return fmt.Errorf("command %q: parameter %q: %w", c.Name, p.Name, err)
		}

		if p.Default != nil {
			dv := reflect.ValueOf(p.Default)
			if !dv.Type().AssignableTo(p.typ) {
				return fmt.Errorf("command %q: parameter %q: default %v (%s) is not assignable to %s",
					c.Name, p.Name, p.Default, dv.Type(), p.typ)
			}
		}

		if p.Help == "" {
			p.Help = c.doc.Params[p.Name]
		}

		for _, name := range p.names() {
			folded := foldName(name)
			if folded == "" || !isIdentifier(folded) {
				return fmt.Errorf("command %q: parameter name %q is not a valid identifier", c.Name, name)
			}
			if isMagicName(folded) {
				return fmt.Errorf("command %q: parameter name %q is reserved", c.Name, name)
			}
			if other, ok := c.nameIdx[folded]; ok {
				return fmt.Errorf("command %q: parameter name %q already used by %q", c.Name, name, other.Name)
			}
			c.nameIdx[folded] = p
		}
	}

	c.fn = fn
	c.bound = true
	return nil
}

// brief is the one-line summary: explicit ShortHelp wins over the docstring.
func (c *Command) brief() string {
	if c.ShortHelp != "" {
		return c.ShortHelp
	}
	return c.doc.Summary
}

func (c *Command) detail() string {
	if c.Detail != "" {
		return c.Detail
	}
	return c.doc.Detail
}

// lookup resolves a folded flag name to its parameter.
func (c *Command) lookup(folded string) (*Param, bool) {
	p, ok := c.nameIdx[folded]
	return p, ok
}

// varKeyword returns the command's variadic keyword parameter, if any.
func (c *Command) varKeyword() *Param {
	if n := len(c.Params); n > 0 && c.Params[n-1].Kind == VarKeyword {
		return c.Params[n-1]
	}
	return nil
}

func validateReturns(name string, ft reflect.Type) error {
	switch ft.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return fmt.Errorf("command %q: second return value must be an error, got %s", name, ft.Out(1))
		}
		return nil
	default:
		return fmt.Errorf("command %q: function returns %d values, at most 2 supported", name, ft.NumOut())
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// foldName maps hyphens to underscores so "--dry-run" and "dry_run" agree.
func foldName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// isLetters reports whether s is usable as a short-flag cluster.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

func isMagicName(folded string) bool {
	return folded == "help" || folded == "h"
}
