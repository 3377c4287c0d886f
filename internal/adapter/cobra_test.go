package adapter_test

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rwxsh/zcompgen/internal/adapter"
	"github.com/rwxsh/zcompgen/internal/argspec"
	"github.com/rwxsh/zcompgen/internal/definition"
)

func findSpec(t *testing.T, def *definition.Definition, name string) argspec.Spec {
	t.Helper()
	for _, spec := range def.Specs {
		if spec.Name == name {
			return spec
		}
	}
	t.Fatalf("no spec named %q in %+v", name, def.Specs)
	return argspec.Spec{}
}

func TestFromCommand(t *testing.T) {
	cmd := &cobra.Command{
		Use:     "demo",
		Version: "1.0.0",
		Run:     func(cmd *cobra.Command, args []string) {},
	}
	cmd.Flags().BoolP("verbose", "v", false, "increase verbosity")
	cmd.Flags().StringP("output", "o", "", "write to `file`")
	cmd.Flags().String("mode", "fast", "selection mode")
	cmd.Flags().Bool("secret", false, "internal toggle")
	_ = cmd.Flags().MarkHidden("secret")

	def := adapter.FromCommand(cmd)

	if !slices.Equal(def.Programs, []string{"demo"}) {
		t.Errorf("Programs = %v, expected [demo]", def.Programs)
	}

	verbose := findSpec(t, def, "verbose")
	if !slices.Equal(verbose.Options, []string{"-v", "--verbose"}) {
		t.Errorf("verbose options = %v, expected shorthand first", verbose.Options)
	}
	if verbose.Nargs != 0 {
		t.Errorf("verbose nargs = %d, expected 0 for bool", verbose.Nargs)
	}
	if verbose.Terminal {
		t.Error("verbose is marked terminal")
	}

	output := findSpec(t, def, "output")
	if !slices.Equal(output.Metavar, []string{"file"}) {
		t.Errorf("output metavar = %v, expected [file] from backticked usage", output.Metavar)
	}
	if output.Help != "write to file" {
		t.Errorf("output help = %q, expected backticks stripped", output.Help)
	}
	if output.Nargs != 1 {
		t.Errorf("output nargs = %d, expected 1", output.Nargs)
	}

	mode := findSpec(t, def, "mode")
	if mode.Value != "str" {
		t.Errorf("mode value = %q, expected \"str\"", mode.Value)
	}
	if len(mode.Metavar) != 0 {
		t.Errorf("mode metavar = %v, expected none without backticks", mode.Metavar)
	}

	help := findSpec(t, def, "help")
	if !help.Terminal {
		t.Error("help flag is not terminal")
	}
	version := findSpec(t, def, "version")
	if !version.Terminal {
		t.Error("version flag is not terminal")
	}

	for _, spec := range def.Specs {
		if spec.Name == "secret" {
			t.Error("hidden flag leaked into the definition")
		}
	}
}

func TestFromCommandSubcommands(t *testing.T) {
	cmd := &cobra.Command{Use: "demo"}
	cmd.AddCommand(
		&cobra.Command{Use: "alpha", Run: func(cmd *cobra.Command, args []string) {}},
		&cobra.Command{Use: "beta", Run: func(cmd *cobra.Command, args []string) {}},
		&cobra.Command{Use: "ghost", Hidden: true, Run: func(cmd *cobra.Command, args []string) {}},
	)

	def := adapter.FromCommand(cmd)

	command := findSpec(t, def, "command")
	if !slices.Equal(command.Choices, []string{"alpha", "beta"}) {
		t.Errorf("command choices = %v, expected [alpha beta]", command.Choices)
	}
	if command.Nargs != argspec.NargsOptional {
		t.Errorf("command nargs = %d, expected NargsOptional", command.Nargs)
	}
	if command.Dispatcher {
		t.Error("subcommand slot must not be marked as a dispatcher")
	}

	file := findSpec(t, def, "file")
	if file.Nargs != argspec.NargsOptional {
		t.Errorf("file nargs = %d, expected NargsOptional", file.Nargs)
	}
}

func TestFromCommandWithoutSubcommands(t *testing.T) {
	cmd := &cobra.Command{Use: "plain", Run: func(cmd *cobra.Command, args []string) {}}

	def := adapter.FromCommand(cmd)

	for _, spec := range def.Specs {
		if spec.Positional() {
			t.Errorf("unexpected positional spec %+v for a command without subcommands", spec)
		}
	}
}
