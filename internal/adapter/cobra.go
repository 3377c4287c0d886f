// Package adapter normalizes live cobra commands into definitions, so
// the tool can generate its own completion without a handwritten
// definition file.
package adapter

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rwxsh/zcompgen/internal/argspec"
	"github.com/rwxsh/zcompgen/internal/definition"
)

// FromCommand builds the definition for cmd's flags and immediate
// subcommands. Flags are visited in lexicographical order; hidden and
// deprecated ones are skipped.
func FromCommand(cmd *cobra.Command) *definition.Definition {
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()

	specs := []argspec.Spec{}
	seen := map[string]bool{}

	collect := func(flag *pflag.Flag) {
		if seen[flag.Name] || flag.Hidden || flag.Deprecated != "" {
			return
		}
		seen[flag.Name] = true
		specs = append(specs, specFromFlag(flag))
	}

	cmd.Flags().VisitAll(collect)
	cmd.PersistentFlags().VisitAll(collect)

	// Subcommand names become choices on the first positional slot.
	// A flat directive list cannot dispatch per-subcommand grammars.
	subcommands := []string{}
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() || sub.IsAdditionalHelpTopicCommand() {
			continue
		}
		subcommands = append(subcommands, sub.Name())
	}
	if len(subcommands) > 0 {
		specs = append(specs,
			argspec.Spec{Name: "command", Nargs: argspec.NargsOptional, Choices: subcommands},
			argspec.Spec{Name: "file", Nargs: argspec.NargsOptional},
		)
	}

	return &definition.Definition{
		Programs: []string{cmd.Name()},
		Specs:    specs,
	}
}

func specFromFlag(flag *pflag.Flag) argspec.Spec {
	options := []string{}
	if flag.Shorthand != "" {
		options = append(options, "-"+flag.Shorthand)
	}
	options = append(options, "--"+flag.Name)

	nargs := argspec.Nargs(1)
	if flag.NoOptDefVal != "" {
		// Bools and counters take no value on the command line.
		nargs = 0
	}

	placeholder, help := pflag.UnquoteUsage(flag)
	var metavar []string
	if strings.Contains(flag.Usage, "`") {
		metavar = []string{placeholder}
	}

	return argspec.Spec{
		Options:  options,
		Name:     strings.ReplaceAll(flag.Name, "-", "_"),
		Help:     help,
		Metavar:  metavar,
		Value:    valueKind(flag.Value.Type()),
		Nargs:    nargs,
		Terminal: flag.Name == "help" || flag.Name == "version",
	}
}

func valueKind(flagType string) string {
	switch flagType {
	case "string", "stringSlice", "stringArray", "stringToString":
		return "str"
	case "float32", "float64":
		return "float"
	default:
		return flagType
	}
}
