// Package funcli binds plain Go functions to a command-line interface. A
// caller registers a function together with an ordered parameter descriptor
// list and a docstring; the package synthesizes an argv parser, help text,
// and a dispatcher that invokes the function with coerced arguments.
//
// Parsing follows a single stateless rule: the leading run of unflagged
// tokens is positional, and every token after a flag belongs to that flag
// until the next flag. The same token sequence always parses the same way
// regardless of which flags a user chooses to supply.
package funcli
