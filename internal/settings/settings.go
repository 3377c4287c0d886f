package settings

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Settings struct {
	UseColor       bool            `koanf:"color"`
	DefinitionDirs []string        `koanf:"definition_dirs" noset:"true"`
	Inspect        InspectSettings `koanf:"inspect"`
	KeepNewer      bool            `koanf:"keep_newer"`
	Template       string          `koanf:"template"`
}

type InspectSettings struct {
	MinScore int64 `koanf:"min_score"`
}

type DescriptionEntry struct {
	Short string
	Long  string
}

const definitionDirsExample = "```\n" + `definition_dirs = [
  "/usr/share/zcompgen/definitions",
  "~/.config/zcompgen/definitions",
]
` + "```\n"

var SettingsDocs = map[string]DescriptionEntry{
	"color": {
		Short: "Enable colored output",
		Long:  "Turns on ANSI color sequences for decorated output in supported terminals.",
	},
	"definition_dirs": {
		Short: "Directories to search for named definitions",
		Long: "Extra directories to search for `<name>.toml` definition files when a definition\n" +
			"is given by name instead of by path. Searched in order, before the built-in\n" +
			"location.\nExample:\n" + definitionDirsExample,
	},
	"inspect": {
		Short: "Settings for `inspect` command",
	},
	"inspect.min_score": {
		Short: "Minimum fuzzy match score to consider an entry a match",
		Long:  "Sets the cutoff score for showing results in fuzzy-matched entry lookups.",
	},
	"keep_newer": {
		Short: "Skip generation when the output is newer than the definition",
		Long:  "Treats generation as up-to-date whenever the output script is newer than its definition file, like a build system would.",
	},
	"template": {
		Short: "Template file to substitute generated completions into",
		Long:  "Path to a script skeleton used instead of the built-in one. The file's {{programs}} and {{flags}} tokens are replaced on generation.",
	},
}

func NewSettings() *Settings {
	return &Settings{
		UseColor: true,
		Inspect: InspectSettings{
			MinScore: 1,
		},
	}
}

func ParseSettings(location string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(location), toml.Parser()); err != nil {
		return nil, err
	}

	cfg := NewSettings()

	err := k.Unmarshal("", cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate the configuration and remove any erroneous values.
// A list of detected errors is returned, if any exist.
func (cfg *Settings) Validate() SettingsErrors {
	errs := []SettingsError{}

	kept := cfg.DefinitionDirs[:0]
	for _, dir := range cfg.DefinitionDirs {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, SettingsError{Field: "definition_dirs", Message: "directory entry cannot be empty"})
			continue
		}
		kept = append(kept, dir)
	}
	cfg.DefinitionDirs = kept

	if cfg.Inspect.MinScore < 0 {
		errs = append(errs, SettingsError{Field: "inspect.min_score", Message: "score cannot be negative, resetting to 1"})
		cfg.Inspect.MinScore = 1
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (cfg *Settings) SetValue(key string, value string) error {
	fields := strings.Split(key, ".")
	current := reflect.ValueOf(cfg).Elem()

	for i, field := range fields {
		// Find the struct field with the matching koanf tag
		found := false
		for j := 0; j < current.Type().NumField(); j++ {
			fieldInfo := current.Type().Field(j)
			if fieldInfo.Tag.Get("koanf") == field {
				current = current.Field(j)
				found = true
				break
			}
		}

		if !found {
			return SettingsError{Field: field, Message: "setting not found"}
		}

		if current.Kind() == reflect.Ptr {
			if current.IsNil() {
				current.Set(reflect.New(current.Type().Elem()))
			}
			current = current.Elem()
		}

		if i == len(fields)-1 {
			if !current.CanSet() {
				return SettingsError{Field: field, Message: "cannot change value of this setting dynamically"}
			}

			switch current.Kind() {
			case reflect.String:
				current.SetString(value)
			case reflect.Bool:
				boolVal, err := strconv.ParseBool(value)
				if err != nil {
					return SettingsError{Field: field, Message: fmt.Sprintf("invalid boolean value '%s' for field", value)}
				}
				current.SetBool(boolVal)
			case reflect.Int, reflect.Int64:
				intVal, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return SettingsError{Field: field, Message: fmt.Sprintf("invalid integer value '%s' for field", value)}
				}
				current.SetInt(intVal)
			case reflect.Float64:
				floatVal, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return SettingsError{Field: field, Message: fmt.Sprintf("invalid float value '%s' for field", value)}
				}
				current.SetFloat(floatVal)
			default:
				return SettingsError{Field: field, Message: "unsupported field type"}
			}

			return nil
		}
	}

	return nil
}

func isSettable(value *reflect.Value) bool {
	switch value.Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64:
		return true
	}

	return false
}
