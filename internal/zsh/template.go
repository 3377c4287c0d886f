package zsh

// DefaultTemplate is the built-in completion script skeleton. The flag
// region must sit on its own continuation line, since directives are
// joined with backslash-newline separators.
const DefaultTemplate = `#compdef {{programs}}

# Completion definition for {{programs}}.
# Generated by zcompgen; regenerate instead of editing by hand.

_arguments -s -S \
  {{flags}}
`
