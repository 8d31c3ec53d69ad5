package funcli

import (
	"context"
	"fmt"

	"github.com/funcli/funcli/pkg/suggest"
)

// App owns a single bound command and drives its execution. Use [New] to
// construct one; binding happens once at construction and the command is
// read-only afterwards.
type App struct {
	cmd *Command
}

// New binds cmd and returns an App around it.
func New(cmd *Command) (*App, error) {
	if cmd == nil {
		return nil, fmt.Errorf("command is nil")
	}
	if err := cmd.bind(); err != nil {
		return nil, err
	}
	return &App{cmd: cmd}, nil
}

// Must is a helper for wiring apps in package main: it panics on error.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Command returns the app's bound command.
func (a *App) Command() *Command { return a.cmd }

// Run parses args (typically os.Args[1:]) once and dispatches to the bound
// command. A --help/-h token anywhere in args prints help to stdout and
// returns nil. Parse and coercion failures print the error and the
// command's help to stderr and return an [ExitError] with code 2; an error
// returned by the bound function is returned as-is.
func (a *App) Run(ctx context.Context, args []string, opts *RunOptions) error {
	return runCommand(ctx, a.cmd, args, fillRunOptions(opts))
}

// Cycle prints the command's help once, then reads lines from Stdin,
// parsing and dispatching each as if it were argv. Errors print to stderr
// without ending the loop; the loop ends at end of input or when ctx is
// done.
func (a *App) Cycle(ctx context.Context, opts *RunOptions) error {
	opts = fillRunOptions(opts)
	return cycle(ctx, opts, commandUsageText(a.cmd), func(argv []string) error {
		return runCommand(ctx, a.cmd, argv, opts)
	})
}

// CommandApp owns a set of named commands and dispatches on the first
// positional token. Command names are unique after hyphen folding;
// insertion order is preserved in help output.
type CommandApp struct {
	// Name is the program name shown in the usage line.
	Name string

	// Brief and Detail are the app-level summary and long description.
	Brief  string
	Detail string

	commands []*Command
	byName   map[string]*Command
}

// NewCommandApp builds an app from the given commands, binding each in
// turn.
func NewCommandApp(name string, cmds ...*Command) (*CommandApp, error) {
	if name == "" {
		return nil, fmt.Errorf("app has no name")
	}
	a := &CommandApp{Name: name, byName: make(map[string]*Command)}
	for _, c := range cmds {
		if err := a.Add(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add binds cmd and registers it under its name and aliases.
func (a *CommandApp) Add(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command is nil")
	}
	if err := cmd.bind(); err != nil {
		return err
	}
	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		folded := foldName(name)
		if other, ok := a.byName[folded]; ok {
			return fmt.Errorf("command name %q already used by %q", name, other.Name)
		}
		a.byName[folded] = cmd
	}
	a.commands = append(a.commands, cmd)
	return nil
}

// Commands returns the registered commands in insertion order.
func (a *CommandApp) Commands() []*Command { return a.commands }

// Lookup resolves a command name or alias, with hyphen folding.
func (a *CommandApp) Lookup(name string) (*Command, bool) {
	c, ok := a.byName[foldName(name)]
	return c, ok
}

// Run resolves the subcommand named by the first token and dispatches the
// remaining tokens to it. With no arguments, or a --help/-h before any
// command name, the app-level help prints to stdout and Run returns nil.
func (a *CommandApp) Run(ctx context.Context, args []string, opts *RunOptions) error {
	opts = fillRunOptions(opts)

	if len(args) == 0 {
		fmt.Fprint(opts.Stdout, appUsageText(a))
		return nil
	}

	appHelp := func() error {
		fmt.Fprint(opts.Stdout, appUsageText(a))
		return nil
	}
	fail := func(err error) error {
		fmt.Fprintf(opts.Stderr, "Error: %v\n\n%s", err, appUsageText(a))
		return &ExitError{Code: 2, Err: err}
	}

	first := args[0]
	if class, _, err := classify(first); err != nil || class != nonFlag {
		// no command resolved yet, so a help token anywhere shows the
		// app-level help, even when other tokens are malformed
		if hasHelpToken(args) {
			return appHelp()
		}
		return fail(parseErrorf("expected a command, got flag %q", first))
	}

	cmd, ok := a.Lookup(first)
	if !ok {
		if hasHelpToken(args) {
			return appHelp()
		}
		return fail(&UnknownCommandError{
			Name:        first,
			Suggestions: suggest.FindSimilar(first, a.commandNames(), 3),
		})
	}
	return runCommand(ctx, cmd, args[1:], opts)
}

// Cycle prints the app-level help once, then reads lines from Stdin,
// dispatching each as in [CommandApp.Run] without ending the loop on
// errors.
func (a *CommandApp) Cycle(ctx context.Context, opts *RunOptions) error {
	opts = fillRunOptions(opts)
	return cycle(ctx, opts, appUsageText(a), func(argv []string) error {
		return a.Run(ctx, argv, opts)
	})
}

func (a *CommandApp) commandNames() []string {
	var names []string
	for _, c := range a.commands {
		names = append(names, c.Name)
		names = append(names, c.Aliases...)
	}
	return names
}

func isHelpToken(arg string) bool {
	return arg == "-h" || arg == "--h" || arg == "-help" || arg == "--help"
}
