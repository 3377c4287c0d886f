// Package definition loads declarative command-line descriptions from
// TOML files and normalizes them into argument specs.
package definition

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rwxsh/zcompgen/internal/argspec"
)

// Definition describes one program's command line: the names the script
// completes for and the normalized argument specs, in declaration order.
type Definition struct {
	Programs []string
	Specs    []argspec.Spec
}

type rawDefinition struct {
	Programs []string `koanf:"programs"`
	Args     []rawArg `koanf:"args"`
}

type rawArg struct {
	Options    []string `koanf:"options"`
	Name       string   `koanf:"name"`
	Help       string   `koanf:"help"`
	Terminal   bool     `koanf:"terminal"`
	Dispatcher bool     `koanf:"dispatcher"`
	// Nargs is kept stringly typed; unmarshaling is weakly typed, so
	// bare TOML integers coerce into it as well.
	Nargs   string   `koanf:"nargs"`
	Metavar []string `koanf:"metavar"`
	Choices []string `koanf:"choices"`
	Value   string   `koanf:"value"`
}

// Load reads a definition file and normalizes its arguments. When the
// file names no programs, the file stem stands in, with underscores
// swapped for dashes.
func Load(path string) (*Definition, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, err
	}

	var raw rawDefinition
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, err
	}

	def := Definition{Programs: raw.Programs}
	if len(def.Programs) == 0 {
		def.Programs = []string{programFromPath(path)}
	}

	for i, arg := range raw.Args {
		spec, err := arg.normalize()
		if err != nil {
			return nil, DefinitionError{Field: fmt.Sprintf("args[%d]", i), Message: err.Error()}
		}
		def.Specs = append(def.Specs, spec)
	}

	return &def, nil
}

// ScriptName is the conventional zsh completion filename for the
// definition's first program.
func (d *Definition) ScriptName() string {
	return "_" + d.Programs[0]
}

func (r rawArg) normalize() (argspec.Spec, error) {
	takesValue := len(r.Metavar) > 0 || len(r.Choices) > 0 || r.Value != ""
	nargs, err := parseNargs(r.Nargs, len(r.Options) == 0, takesValue)
	if err != nil {
		return argspec.Spec{}, err
	}

	name := r.Name
	if name == "" {
		name = deriveName(r.Options)
	}

	return argspec.Spec{
		Options:    r.Options,
		Name:       name,
		Help:       r.Help,
		Metavar:    r.Metavar,
		Choices:    r.Choices,
		Value:      r.Value,
		Nargs:      nargs,
		Terminal:   r.Terminal,
		Dispatcher: r.Dispatcher,
	}, nil
}

func parseNargs(raw string, positional bool, takesValue bool) (argspec.Nargs, error) {
	switch raw {
	case "":
		if positional || takesValue {
			return 1, nil
		}
		return 0, nil
	case "?":
		return argspec.NargsOptional, nil
	case "*":
		return argspec.NargsZeroOrMore, nil
	case "+":
		return argspec.NargsOneOrMore, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, fmt.Errorf("invalid nargs %q, expected ?, *, + or a count", raw)
	}

	return argspec.Nargs(count), nil
}

// deriveName mirrors the usual destination naming for flags: the first
// long option wins, otherwise the first option, dashes swapped for
// underscores.
func deriveName(options []string) string {
	name := ""
	for _, opt := range options {
		if strings.HasPrefix(opt, "--") {
			name = strings.TrimLeft(opt, "-")
			break
		}
		if name == "" {
			name = strings.TrimLeft(opt, "-")
		}
	}

	return strings.ReplaceAll(name, "-", "_")
}

func programFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.ReplaceAll(stem, "_", "-")
}
