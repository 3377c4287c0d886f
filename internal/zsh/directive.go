// Package zsh renders argument specifications into zsh _arguments
// directives and assembles them into a complete completion script.
package zsh

import (
	"strconv"
	"strings"

	"github.com/rwxsh/zcompgen/internal/argspec"
)

// DirectiveAt renders the _arguments directive for a single spec. pos is
// the next free positional slot; the returned position accounts for every
// slot the spec consumed, so callers thread it through a whole definition
// in declaration order.
//
// A directive is built from up to five regions:
//
//	'(- *)'{-h,--help}'[show this help message and exit]'
//	|<-1->||<---2--->||<---------------3--------------->|
//
//	--color'[when to use color]:when:(auto always never)'
//	|<-2->||<--------3-------->|<-4->|<--------5-------->|
//
// 1 excludes all other matches after a terminal flag, 2 names the option
// or positional slot, 3 is the description, 4 the value placeholder, and
// 5 the completion action. Only region 2 is mandatory. Brace groups stay
// outside the quotes so zsh expands them; everything between the single
// quotes is one directive argument.
//
// See https://github.com/zsh-users/zsh/blob/master/Etc/completion-style-guide
// for the underlying syntax.
func DirectiveAt(spec argspec.Spec, pos int) (string, int, error) {
	prefix := ""
	if spec.Terminal {
		prefix = "'(- *)'"
	} else if spec.Dispatcher {
		// TODO: complete subcommands by recursing into their specs.
		return "", pos, &UnsupportedFeatureError{Feature: "subcommand dispatchers"}
	}

	var optionstr string
	switch {
	case len(spec.Options) > 1:
		optionstr = "{" + strings.Join(spec.Options, ",") + "}'"
	case len(spec.Options) == 1:
		optionstr = spec.Options[0] + "'"
	default:
		switch {
		case spec.Nargs == argspec.NargsZeroOrMore || spec.Nargs == argspec.NargsOneOrMore:
			// * must sit inside the quotes, unlike brace groups.
			optionstr = "'*"
		case spec.Nargs > 1:
			labels := make([]string, spec.Nargs)
			for i := range labels {
				labels[i] = strconv.Itoa(pos + i)
			}
			optionstr = "{" + strings.Join(labels, ",") + "}'"
			pos += int(spec.Nargs)
		default:
			optionstr = strconv.Itoa(pos) + "'"
			pos += 1
		}
	}

	helpstr := ""
	if spec.Help != "" && spec.Help != argspec.SuppressHelp && len(spec.Options) > 0 {
		helpstr = strings.ReplaceAll(spec.Help, "]", `\]`)
		helpstr = strings.ReplaceAll(helpstr, "'", `'\''`)
		helpstr = "[" + helpstr + "]"
	}

	var metavar string
	switch {
	case len(spec.Metavar) == 1:
		metavar = spec.Metavar[0]
	case len(spec.Metavar) > 1:
		// Tuple placeholders are passed through space-joined; rendering
		// them per-slot needs template support.
		metavar = strings.Join(spec.Metavar, " ")
	case spec.Nargs == 0:
		metavar = ""
	case spec.Positional():
		metavar = spec.Name
	default:
		metavar = spec.Value
	}
	if metavar != "" {
		// Lowercase placeholders, conventionally.
		metavar = strings.ReplaceAll(strings.ToLower(metavar), ":", `\:`)
	}

	completion := ""
	if len(spec.Choices) > 0 {
		completion = "(" + strings.Join(spec.Choices, " ") + ")"
	} else {
		// Matched against the resolved placeholder, so an explicit
		// metavar of FILE selects file completion too.
		switch metavar {
		case "file":
			completion = "_files"
			metavar = " "
		case "dir":
			completion = "_dirs"
			metavar = " "
		case "url":
			completion = "_urls"
			metavar = " "
		case "command":
			completion = "_command_names -e"
			metavar = " "
		}
	}

	if metavar != "" {
		metavar = ":" + metavar
	}
	if completion != "" {
		completion = ":" + completion
	}

	directive := prefix + optionstr + helpstr + metavar + completion + "'"
	return directive, pos, nil
}
