package definition_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rwxsh/zcompgen/internal/argspec"
	"github.com/rwxsh/zcompgen/internal/definition"
)

func writeDefinition(t *testing.T, name string, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing definition fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDefinition(t, "pdd.toml", `
programs = ["pdd"]

[[args]]
options = ["-h", "--help"]
help = "show this help message and exit"
terminal = true

[[args]]
options = ["--color"]
help = "when to use color"
metavar = "when"
choices = ["auto", "always", "never"]

[[args]]
options = ["--config"]
help = "config file"
value = "file"

[[args]]
name = "date"
nargs = 2

[[args]]
name = "rest"
nargs = "*"
`)

	def, err := definition.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !slices.Equal(def.Programs, []string{"pdd"}) {
		t.Errorf("Programs = %v, expected [pdd]", def.Programs)
	}
	if len(def.Specs) != 5 {
		t.Fatalf("Load returned %d specs, expected 5", len(def.Specs))
	}

	help := def.Specs[0]
	if !slices.Equal(help.Options, []string{"-h", "--help"}) {
		t.Errorf("help options = %v, expected [-h --help]", help.Options)
	}
	if !help.Terminal {
		t.Error("help spec is not terminal")
	}
	if help.Nargs != 0 {
		t.Errorf("help nargs = %d, expected 0", help.Nargs)
	}
	if help.Name != "help" {
		t.Errorf("help name = %q, expected derived \"help\"", help.Name)
	}

	color := def.Specs[1]
	if !slices.Equal(color.Metavar, []string{"when"}) {
		t.Errorf("color metavar = %v, expected [when]", color.Metavar)
	}
	if !slices.Equal(color.Choices, []string{"auto", "always", "never"}) {
		t.Errorf("color choices = %v, expected [auto always never]", color.Choices)
	}
	if color.Nargs != 1 {
		t.Errorf("color nargs = %d, expected 1 from choices", color.Nargs)
	}

	config := def.Specs[2]
	if config.Value != "file" {
		t.Errorf("config value = %q, expected \"file\"", config.Value)
	}
	if config.Nargs != 1 {
		t.Errorf("config nargs = %d, expected 1 from value", config.Nargs)
	}

	date := def.Specs[3]
	if !date.Positional() {
		t.Error("date spec is not positional")
	}
	if date.Nargs != 2 {
		t.Errorf("date nargs = %d, expected 2 from bare integer", date.Nargs)
	}

	rest := def.Specs[4]
	if rest.Nargs != argspec.NargsZeroOrMore {
		t.Errorf("rest nargs = %d, expected NargsZeroOrMore", rest.Nargs)
	}
}

func TestLoadProgramFallback(t *testing.T) {
	path := writeDefinition(t, "my_tool.toml", `
[[args]]
options = ["-q"]
`)

	def, err := definition.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !slices.Equal(def.Programs, []string{"my-tool"}) {
		t.Errorf("Programs = %v, expected fallback [my-tool]", def.Programs)
	}
	if def.ScriptName() != "_my-tool" {
		t.Errorf("ScriptName = %q, expected \"_my-tool\"", def.ScriptName())
	}
}

func TestLoadNargsForms(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		expected argspec.Nargs
	}{
		{"optional", `name = "a"` + "\n" + `nargs = "?"`, argspec.NargsOptional},
		{"zero or more", `name = "a"` + "\n" + `nargs = "*"`, argspec.NargsZeroOrMore},
		{"one or more", `name = "a"` + "\n" + `nargs = "+"`, argspec.NargsOneOrMore},
		{"quoted count", `name = "a"` + "\n" + `nargs = "3"`, 3},
		{"bare count", `name = "a"` + "\n" + `nargs = 3`, 3},
		{"positional default", `name = "a"`, 1},
		{"flag default", `options = ["-a"]`, 0},
		{"flag with metavar default", `options = ["-a"]` + "\n" + `metavar = "x"`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDefinition(t, "prog.toml", "[[args]]\n"+tt.entry+"\n")

			def, err := definition.Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}

			if def.Specs[0].Nargs != tt.expected {
				t.Errorf("nargs = %d, expected %d", def.Specs[0].Nargs, tt.expected)
			}
		})
	}
}

func TestLoadInvalidNargs(t *testing.T) {
	path := writeDefinition(t, "prog.toml", `
[[args]]
name = "a"
nargs = "banana"
`)

	_, err := definition.Load(path)
	if err == nil {
		t.Fatal("Load accepted invalid nargs, expected error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := definition.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Load of missing file succeeded, expected error")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pdd.toml")
	if err := os.WriteFile(path, []byte("programs = [\"pdd\"]\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	t.Run("existing path used as-is", func(t *testing.T) {
		actual, err := definition.Resolve(path, nil)
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if actual != path {
			t.Errorf("Resolve = %q, expected %q", actual, path)
		}
	})

	t.Run("name searched in dirs", func(t *testing.T) {
		actual, err := definition.Resolve("pdd", []string{t.TempDir(), dir})
		if err != nil {
			t.Fatalf("Resolve returned error: %v", err)
		}
		if actual != path {
			t.Errorf("Resolve = %q, expected %q", actual, path)
		}
	})

	t.Run("unknown name errors", func(t *testing.T) {
		_, err := definition.Resolve("missing", []string{dir})
		if err == nil {
			t.Fatal("Resolve of unknown name succeeded, expected error")
		}
	})
}

func TestSearchDirs(t *testing.T) {
	configured := []string{"/etc/zcompgen", "./defs"}

	dirs := definition.SearchDirs(configured)

	if len(dirs) < len(configured) || !slices.Equal(dirs[:2], configured) {
		t.Errorf("SearchDirs = %v, expected configured dirs first", dirs)
	}
}

func TestNames(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	fixtures := []struct {
		dir  string
		file string
	}{
		{first, "pdd.toml"},
		{first, "dd.toml"},
		{second, "pdd.toml"},
		{second, "tar.toml"},
		{second, "notes.txt"},
	}
	for _, f := range fixtures {
		if err := os.WriteFile(filepath.Join(f.dir, f.file), []byte{}, 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
	}

	expected := []string{"dd", "pdd", "tar"}
	actual := definition.Names([]string{first, filepath.Join(first, "missing"), second})

	if !slices.Equal(actual, expected) {
		t.Errorf("Names = %v, expected %v", actual, expected)
	}
}
