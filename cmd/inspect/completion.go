package inspect

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/rwxsh/zcompgen/internal/adapter"
	"github.com/rwxsh/zcompgen/internal/argspec"
	cmdTypes "github.com/rwxsh/zcompgen/internal/cmd/types"
	"github.com/rwxsh/zcompgen/internal/definition"
	"github.com/rwxsh/zcompgen/internal/settings"
)

// InspectCompletionFunc completes a definition name first, then the
// entry names of whichever definition was picked.
func InspectCompletionFunc() cmdTypes.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return definition.CompleteNames(0)(cmd, args, toComplete)
		}

		if len(args) > 1 {
			return []string{}, cobra.ShellCompDirectiveNoFileComp
		}

		cfg := settings.FromContext(cmd.Context())

		def, _, err := adapter.ResolveOrSelf(cmd.Root(), args[0], definition.SearchDirs(cfg.DefinitionDirs))
		if err != nil {
			return []string{}, cobra.ShellCompDirectiveNoFileComp
		}

		completions := []string{}
		for _, spec := range def.Specs {
			if spec.Name == "" {
				continue
			}

			name := spec.Name
			if spec.Help != "" && spec.Help != argspec.SuppressHelp {
				name += "\t" + spec.Help
			}
			completions = append(completions, name)
		}

		sort.Strings(completions)

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}
