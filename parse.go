package funcli

import (
	"strings"

	"github.com/funcli/funcli/pkg/suggest"
)

// tokenClass classifies one raw argv token.
type tokenClass int

const (
	nonFlag tokenClass = iota
	longFlag
	shortFlag // may be a cluster: "-abc" is "-a -b -c"
)

// classify decides whether a token is a flag. A token is a long flag only if
// the text after "--" is identifier-like once hyphens are folded to
// underscores; a short flag only if the text after "-" is letters or
// underscores. Numeric-looking tokens such as "-1" or "-2.5" are therefore
// always values, while a malformed long flag such as "--1" or a bare "--"
// is an error.
func classify(tok string) (tokenClass, string, error) {
	if strings.HasPrefix(tok, "--") {
		name := foldName(tok[2:])
		if isIdentifier(name) {
			return longFlag, name, nil
		}
		return nonFlag, "", parseErrorf("invalid flag %q", tok)
	}
	if strings.HasPrefix(tok, "-") {
		name := foldName(tok[1:])
		if isLetters(name) {
			return shortFlag, name, nil
		}
	}
	return nonFlag, tok, nil
}

// namedRun is one flag together with the value tokens that follow it, up to
// the next flag or end of input.
type namedRun struct {
	name   string // folded
	values []string
	count  int // times the flag appeared, after merging
}

// separateArgs splits a token stream into the leading positional run and the
// ordered list of named runs. Runs for a repeated flag are merged in place:
// their values concatenate in order of appearance.
func separateArgs(args []string) ([]string, []*namedRun, error) {
	var positionals []string
	var runs []*namedRun
	index := make(map[string]*namedRun)

	current := func(name string) *namedRun {
		if run, ok := index[name]; ok {
			run.count++
			return run
		}
		run := &namedRun{name: name}
		run.count = 1
		runs = append(runs, run)
		index[name] = run
		return run
	}

	var open *namedRun
	for _, tok := range args {
		class, name, err := classify(tok)
		if err != nil {
			return nil, nil, err
		}
		switch class {
		case nonFlag:
			if open == nil {
				positionals = append(positionals, tok)
			} else {
				open.values = append(open.values, tok)
			}
		case longFlag:
			open = current(name)
		case shortFlag:
			// every letter but the last is a bare flag; the value run
			// attaches to the last one
			for _, r := range name[:len(name)-1] {
				current(string(r))
			}
			open = current(name[len(name)-1:])
		}
	}
	return positionals, runs, nil
}

// hasHelpToken reports whether any token requests help. It runs over the raw
// stream before parsing so that help still wins when other tokens are
// malformed.
func hasHelpToken(args []string) bool {
	for _, arg := range args {
		if isHelpToken(arg) {
			return true
		}
	}
	return false
}

// valueSource records how a parameter was filled.
type valueSource int

const (
	fromDefault valueSource = iota
	fromPositional
	fromFlag
)

// assignment pairs a parameter with its raw values for one invocation.
type assignment struct {
	param  *Param
	values []string
	source valueSource
}

// matchResult maps every parameter of a command to raw string values, plus
// the leftover runs collected by a variadic keyword parameter.
type matchResult struct {
	assigned []assignment // one per Command.Params, in order
	extra    []*namedRun  // runs owned by the variadic keyword parameter
}

// matchArgs assigns the positional run and the named runs to a command's
// parameters. It fails without invoking anything when a flag is unknown, a
// required parameter is unfilled, a parameter is supplied both positionally
// and by flag, or there are more positional values than positional slots.
func matchArgs(c *Command, positionals []string, runs []*namedRun) (*matchResult, error) {
	byParam := make(map[*Param]*namedRun)
	var extra []*namedRun

	varKw := c.varKeyword()
	for _, run := range runs {
		p, ok := c.lookup(run.name)
		if !ok {
			if varKw != nil {
				extra = append(extra, run)
				continue
			}
			return nil, &UnknownArgumentError{
				Name:        run.name,
				Suggestions: suggest.FindSimilar(run.name, flagCandidates(c), 3),
			}
		}
		if prev, ok := byParam[p]; ok {
			prev.values = append(prev.values, run.values...)
			prev.count += run.count
			continue
		}
		byParam[p] = run
	}

	res := &matchResult{extra: extra}
	var missing []string
	next := 0 // cursor into the positional run

	for _, p := range c.Params {
		run := byParam[p]
		switch p.Kind {
		case Positional:
			if run != nil {
				return nil, parseErrorf("argument %q is positional and cannot be supplied by flag", p.Name)
			}
			if next < len(positionals) {
				res.assigned = append(res.assigned, assignment{p, positionals[next : next+1], fromPositional})
				next++
			} else if p.required() {
				missing = append(missing, p.Name)
			} else {
				res.assigned = append(res.assigned, assignment{p, nil, fromDefault})
			}
		case PositionalOrKeyword:
			if next < len(positionals) {
				if run != nil {
					return nil, parseErrorf("argument %q supplied both positionally and by flag", p.Name)
				}
				res.assigned = append(res.assigned, assignment{p, positionals[next : next+1], fromPositional})
				next++
			} else if run != nil {
				res.assigned = append(res.assigned, assignment{p, run.values, fromFlag})
			} else if p.required() {
				missing = append(missing, p.Name)
			} else {
				res.assigned = append(res.assigned, assignment{p, nil, fromDefault})
			}
		case VarPositional:
			if run != nil {
				return nil, parseErrorf("argument %q is positional and cannot be supplied by flag", p.Name)
			}
			res.assigned = append(res.assigned, assignment{p, positionals[next:], fromPositional})
			next = len(positionals)
		case KeywordOnly:
			if run != nil {
				res.assigned = append(res.assigned, assignment{p, run.values, fromFlag})
			} else if p.required() {
				missing = append(missing, p.Name)
			} else {
				res.assigned = append(res.assigned, assignment{p, nil, fromDefault})
			}
		case VarKeyword:
			res.assigned = append(res.assigned, assignment{p, nil, fromFlag})
		}
	}

	if next < len(positionals) {
		return nil, parseErrorf("too many positional arguments: expected at most %d, got %d",
			next, len(positionals))
	}
	if len(missing) > 0 {
		return nil, &MissingArgumentError{Names: missing}
	}
	return res, nil
}

// flagCandidates lists every declared flag name usable in suggestions.
func flagCandidates(c *Command) []string {
	var names []string
	for _, p := range c.Params {
		if p.Kind == Positional || p.Kind == VarPositional {
			continue
		}
		names = append(names, p.names()...)
	}
	return names
}
