package adapter

import (
	"github.com/spf13/cobra"

	"github.com/rwxsh/zcompgen/internal/definition"
)

// ResolveOrSelf loads the named definition from dirs, or introspects
// the running command tree when name is the program's own. The
// returned path is empty for the introspected case.
func ResolveOrSelf(root *cobra.Command, name string, dirs []string) (*definition.Definition, string, error) {
	if name == root.Name() {
		return FromCommand(root), "", nil
	}

	path, err := definition.Resolve(name, dirs)
	if err != nil {
		return nil, "", err
	}

	def, err := definition.Load(path)
	if err != nil {
		return nil, "", err
	}

	return def, path, nil
}
