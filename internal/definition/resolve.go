package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwxsh/zcompgen/internal/constants"
)

// SearchDirs returns the definition search path: the configured
// directories first, then the user-level default.
func SearchDirs(configured []string) []string {
	dirs := append([]string{}, configured...)

	configDir, err := os.UserConfigDir()
	if err == nil {
		dirs = append(dirs, filepath.Join(configDir, constants.ConfigDirName, constants.DefinitionsDirName))
	}

	return dirs
}

// Names lists the definition names available in dirs, deduplicated in
// first-seen order. Unreadable directories are skipped.
func Names(dirs []string) []string {
	seen := map[string]bool{}
	names := []string{}

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
				continue
			}

			name := strings.TrimSuffix(entry.Name(), ".toml")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}

// Resolve turns a definition argument into a loadable path. An existing
// path is used as-is; otherwise <name>.toml is searched for in dirs, in
// order.
func Resolve(nameOrPath string, dirs []string) (string, error) {
	if _, err := os.Stat(nameOrPath); err == nil {
		return nameOrPath, nil
	}

	for _, dir := range dirs {
		candidate := filepath.Join(dir, nameOrPath+".toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("definition %q not found", nameOrPath)
}
