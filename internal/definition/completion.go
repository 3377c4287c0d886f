package definition

import (
	"sort"

	"github.com/spf13/cobra"

	cmdTypes "github.com/rwxsh/zcompgen/internal/cmd/types"
	"github.com/rwxsh/zcompgen/internal/settings"
)

// CompleteNames offers the definitions reachable through the configured
// search path, plus the running program's own name. The directive keeps
// shell file completion available so definitions can also be given as
// paths. limit caps how many positional arguments complete this way;
// later positions fall through to file completion.
func CompleteNames(limit int) cmdTypes.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if limit != 0 && len(args) >= limit {
			return []string{}, cobra.ShellCompDirectiveDefault
		}

		cfg := settings.FromContext(cmd.Context())

		names := Names(SearchDirs(cfg.DefinitionDirs))
		names = append(names, cmd.Root().Name())
		sort.Strings(names)

		return names, cobra.ShellCompDirectiveDefault
	}
}
