package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rwxsh/zcompgen/internal/adapter"
	"github.com/rwxsh/zcompgen/internal/zsh"
)

func CompletionCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:                   "completion {bash|zsh|fish}",
		Short:                 "Generate completion scripts",
		Long:                  "Generate completion scripts for use in shells.",
		Hidden:                true,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				// The zsh script is generated by introspecting our own
				// command tree, the same path definitions go through.
				def := adapter.FromCommand(cmd.Root())
				script, err := zsh.Script(def.Programs, def.Specs, zsh.DefaultTemplate)
				if err != nil {
					return err
				}
				_, err = os.Stdout.WriteString(script)
				return err
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			}

			return nil
		},
	}

	return &cmd
}
