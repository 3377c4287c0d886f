// Package argspec defines the normalized argument records that completion
// generation consumes. Adapters produce these records up front; the
// generator itself never inspects a parser or flag set directly.
package argspec

import (
	"encoding/json"
	"strconv"
)

// Nargs describes how many values an argument consumes. Non-negative
// values request exactly that many; the negative sentinels cover
// variable arity.
type Nargs int

const (
	// NargsOptional consumes zero or one value ("?").
	NargsOptional Nargs = -1
	// NargsZeroOrMore consumes any number of values ("*").
	NargsZeroOrMore Nargs = -2
	// NargsOneOrMore consumes at least one value ("+").
	NargsOneOrMore Nargs = -3
)

// Consumes reports whether the argument takes at least one value.
func (n Nargs) Consumes() bool {
	return n != 0
}

// String renders the arity in definition-file notation.
func (n Nargs) String() string {
	switch n {
	case NargsOptional:
		return "?"
	case NargsZeroOrMore:
		return "*"
	case NargsOneOrMore:
		return "+"
	default:
		return strconv.Itoa(int(n))
	}
}

// MarshalJSON renders the arity in definition-file notation rather
// than exposing the sentinel integers.
func (n Nargs) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// SuppressHelp hides an argument's help fragment without removing the
// argument itself.
const SuppressHelp = "==SUPPRESS=="

// Spec is one normalized argument definition.
type Spec struct {
	// Options holds the option strings naming a flag, in declaration
	// order. Empty for positional arguments.
	Options []string `json:"options,omitempty"`
	// Name is the argument's internal name and the fallback placeholder
	// for positionals.
	Name string `json:"name,omitempty"`
	Help string `json:"help,omitempty"`
	// Metavar overrides the derived placeholder. A single element is a
	// plain override; multiple elements form a tuple override, which is
	// space-joined and requires matching template support.
	Metavar []string `json:"metavar,omitempty"`
	// Choices restricts the argument to these literal values, in order.
	Choices []string `json:"choices,omitempty"`
	// Value names the kind of value the argument takes ("file", "dir",
	// "url", "command", or a plain type name like "str" or "int").
	// Consulted only when Choices is empty and no Metavar is set.
	Value string `json:"value,omitempty"`
	Nargs Nargs  `json:"nargs"`
	// Terminal marks help- and version-like actions that end parsing.
	Terminal bool `json:"terminal,omitempty"`
	// Dispatcher marks a subcommand dispatcher, which completion
	// generation does not support.
	Dispatcher bool `json:"dispatcher,omitempty"`
}

// Positional reports whether the spec describes a positional argument.
func (s Spec) Positional() bool {
	return len(s.Options) == 0
}
