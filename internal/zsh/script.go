package zsh

import (
	"strings"

	"github.com/rwxsh/zcompgen/internal/argspec"
)

const (
	// ProgramsToken is replaced with the space-joined program names.
	ProgramsToken = "{{programs}}"
	// FlagsToken is replaced with the joined directives.
	FlagsToken = "{{flags}}"

	// directiveSeparator continues the _arguments call across lines, one
	// directive per line.
	directiveSeparator = " \\\n  "
)

// Directives renders every spec in declaration order, threading the
// positional counter from slot 1. Any error discards the whole batch.
func Directives(specs []argspec.Spec) ([]string, error) {
	directives := make([]string, 0, len(specs))

	pos := 1
	for _, spec := range specs {
		directive, next, err := DirectiveAt(spec, pos)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
		pos = next
	}

	return directives, nil
}

// Script renders the completion script for programs from specs,
// substituted into template. A rendering error leaves no output.
func Script(programs []string, specs []argspec.Spec, template string) (string, error) {
	directives, err := Directives(specs)
	if err != nil {
		return "", err
	}

	return Render(template, programs, directives), nil
}

// Render substitutes the program names and directives into template.
// Substitution is best-effort; templates without the tokens pass through
// unchanged.
func Render(template string, programs []string, directives []string) string {
	rendered := strings.ReplaceAll(template, ProgramsToken, strings.Join(programs, " "))
	rendered = strings.ReplaceAll(rendered, FlagsToken, strings.Join(directives, directiveSeparator))
	return rendered
}
