package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	zcompgenCmd "github.com/rwxsh/zcompgen/cmd"
	buildVars "github.com/rwxsh/zcompgen/internal/build"
	"github.com/rwxsh/zcompgen/internal/definition"
	"github.com/rwxsh/zcompgen/internal/settings"
	"github.com/rwxsh/zcompgen/internal/zsh"
)

const exampleDefinition = `programs = ["mycli"]

[[args]]
options = ["-h", "--help"]
help = "show this help message and exit"
terminal = true

[[args]]
options = ["--color"]
help = "when to use color"
choices = ["auto", "always", "never"]

[[args]]
options = ["-o", "--output"]
help = "write the result to a file"
value = "file"

[[args]]
name = "input"
nargs = "*"
help = "input files to process"
value = "file"
`

func main() {
	// Attempt to find the root of the Git repository. This is where
	// documentation generation will start from
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	rootDir, err := cmd.Output()
	if err != nil {
		fmt.Printf("error: couldn't find repository root directory: %v\n", err)
		os.Exit(1)
	}

	docsPath := filepath.Join(strings.TrimSpace(string(rootDir)), "doc")
	err = os.Chdir(docsPath)
	if err != nil {
		fmt.Printf("error: couldn't change working directory to %v: %v\n", docsPath, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use: "build",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
			HiddenDefaultCmd:  true,
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "site",
		Short: "Generate Markdown documentation for settings and definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("generating settings documentation")

			generatedSettingsPath := filepath.Join("src", "generated-settings.md")
			if err := generateSettingsDoc(generatedSettingsPath, *settings.NewSettings()); err != nil {
				return err
			}

			fmt.Println("generating definition example documentation")

			generatedExamplePath := filepath.Join("src", "generated-example.md")
			if err := generateExampleDoc(generatedExamplePath); err != nil {
				return err
			}

			fmt.Println("generated settings and example for mdbook site")

			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "man",
		Short: "Generate man pages from the command tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			manDir := filepath.Join("src", "man")
			if err := os.MkdirAll(manDir, 0o755); err != nil {
				return err
			}

			header := &doc.GenManHeader{
				Title:   "ZCOMPGEN",
				Section: "1",
				Source:  "zcompgen " + buildVars.Version,
			}

			return doc.GenManTree(zcompgenCmd.MainCommand(), header, manDir)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateSettingsDoc(filename string, defaults settings.Settings) error {
	var sb strings.Builder

	writeSettingsDoc(reflect.TypeOf(defaults), reflect.ValueOf(defaults), "", &sb, 2)

	return os.WriteFile(filename, []byte(sb.String()), 0o644)
}

// generateExampleDoc round-trips a sample definition through the real
// loader and generator, so the documented output cannot drift from the
// implementation.
func generateExampleDoc(filename string) error {
	tmp, err := os.CreateTemp("", "zcompgen-example-*.toml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(exampleDefinition); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	def, err := definition.Load(tmp.Name())
	if err != nil {
		return err
	}

	script, err := zsh.Script(def.Programs, def.Specs, zsh.DefaultTemplate)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# Definition Example\n\n")
	sb.WriteString("A definition for a small tool:\n\n")
	sb.WriteString("```toml\n")
	sb.WriteString(exampleDefinition)
	sb.WriteString("```\n\n")
	fmt.Fprintf(&sb, "Running `zcompgen mycli.toml` writes `%s`:\n\n", def.ScriptName())
	sb.WriteString("```zsh\n")
	sb.WriteString(script)
	sb.WriteString("\n```\n")

	return os.WriteFile(filename, []byte(sb.String()), 0o644)
}

func writeSettingsDoc(t reflect.Type, v reflect.Value, path string, sb *strings.Builder, depth int) {
	type nestedField struct {
		field    reflect.StructField
		fieldVal reflect.Value
		fullKey  string
	}

	var generalItems []string
	var nestedFields []nestedField

	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag

		koanfKey := tag.Get("koanf")
		if koanfKey == "" {
			continue
		}

		fullKey := path + koanfKey
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			nestedFields = append(nestedFields, nestedField{field, fieldVal, fullKey})
		} else {
			defaultVal := formatValue(fieldVal)
			descriptions := settings.SettingsDocs[fullKey]
			desc := descriptions.Long
			if desc == "" {
				desc = descriptions.Short
			}

			generalItems = append(generalItems, fmt.Sprintf("- **`%s`**\n\n  %s\n\n  **Default**: %s\n", fullKey, desc, defaultVal))
		}
	}

	if len(generalItems) > 0 {
		if path == "" {
			sb.WriteString("## General\n\n")
		}
		sort.Strings(generalItems)
		for _, line := range generalItems {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	// Then print subsections
	for _, entry := range nestedFields {
		descriptions := settings.SettingsDocs[entry.fullKey]
		desc := descriptions.Long
		if desc == "" {
			desc = descriptions.Short
		}

		fmt.Fprintf(sb, "%s `%s`\n\n%s\n\n", strings.Repeat("#", depth), entry.fullKey, desc)
		writeSettingsDoc(entry.field.Type, entry.fieldVal, entry.fullKey+".", sb, depth+1)
	}
}

// formatValue formats a default value for documentation output.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "n/a"
	}
	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return `""`
		}
		return fmt.Sprintf("`%s`", v.String())
	case reflect.Bool:
		return fmt.Sprintf("`%t`", v.Bool())
	case reflect.Int, reflect.Int64:
		return fmt.Sprintf("`%d`", v.Int())
	case reflect.Map, reflect.Slice:
		if v.Len() == 0 {
			return "`[]`"
		}
		return "`(multiple entries)`"
	default:
		return fmt.Sprintf("`%v`", v.Interface())
	}
}
