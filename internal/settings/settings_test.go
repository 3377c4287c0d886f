package settings_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/rwxsh/zcompgen/internal/settings"
)

func TestParseSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
color = false
keep_newer = true
template = "/etc/zcompgen/template.zsh"
definition_dirs = ["/usr/share/zcompgen/definitions"]

[inspect]
min_score = 3
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := settings.ParseSettings(path)
	if err != nil {
		t.Fatalf("ParseSettings returned error: %v", err)
	}

	if cfg.UseColor {
		t.Error("color = true, expected override to false")
	}
	if !cfg.KeepNewer {
		t.Error("keep_newer = false, expected override to true")
	}
	if cfg.Template != "/etc/zcompgen/template.zsh" {
		t.Errorf("template = %q, expected configured path", cfg.Template)
	}
	if !slices.Equal(cfg.DefinitionDirs, []string{"/usr/share/zcompgen/definitions"}) {
		t.Errorf("definition_dirs = %v, expected configured list", cfg.DefinitionDirs)
	}
	if cfg.Inspect.MinScore != 3 {
		t.Errorf("inspect.min_score = %d, expected 3", cfg.Inspect.MinScore)
	}
}

func TestParseSettingsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}

	cfg, err := settings.ParseSettings(path)
	if err != nil {
		t.Fatalf("ParseSettings returned error: %v", err)
	}

	defaults := settings.NewSettings()
	if cfg.UseColor != defaults.UseColor {
		t.Error("empty config did not keep color default")
	}
	if cfg.Inspect.MinScore != defaults.Inspect.MinScore {
		t.Error("empty config did not keep inspect.min_score default")
	}
}

func TestValidateConfig(t *testing.T) {
	t.Run("incorrect config fails", func(t *testing.T) {
		cfg := &settings.Settings{
			DefinitionDirs: []string{"", "/valid/dir", "  "},
			Inspect: settings.InspectSettings{
				MinScore: -2,
			},
		}

		errs := cfg.Validate()
		if len(errs) != 3 {
			t.Errorf("expected 3 errors, got %d", len(errs))
		}

		if !slices.Equal(cfg.DefinitionDirs, []string{"/valid/dir"}) {
			t.Errorf("expected DefinitionDirs to keep one valid entry, got %v", cfg.DefinitionDirs)
		}
		if cfg.Inspect.MinScore != 1 {
			t.Errorf("expected Inspect.MinScore to be reset to 1, got %d", cfg.Inspect.MinScore)
		}
	})

	t.Run("valid config passes", func(t *testing.T) {
		cfg := &settings.Settings{
			DefinitionDirs: []string{"/valid/dir"},
			Inspect: settings.InspectSettings{
				MinScore: 2,
			},
		}

		errs := cfg.Validate()
		if errs != nil {
			t.Errorf("expected error slice to be nil, got %d errors", len(errs))
		}
	})
}

func TestSetConfigValue(t *testing.T) {
	t.Run("Set int field successfully", func(t *testing.T) {
		cfg := &settings.Settings{
			Inspect: settings.InspectSettings{
				MinScore: 1,
			},
		}

		err := cfg.SetValue("inspect.min_score", "4")
		if err != nil {
			t.Fatalf("expected inspect.min_score to be set, err = %v", err)
		}

		expected := int64(4)
		actual := cfg.Inspect.MinScore

		if expected != actual {
			t.Fatalf("expected inspect.min_score = %v, actual = %v", expected, actual)
		}
	})

	t.Run("Set string field successfully", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("template", "/home/user/template.zsh")
		if err != nil {
			t.Fatalf("expected template to be set, err = %v", err)
		}

		expected := "/home/user/template.zsh"
		actual := cfg.Template

		if expected != actual {
			t.Fatalf("expected template = %v, actual = %v", expected, actual)
		}
	})

	t.Run("Set boolean field successfully", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("keep_newer", "true")
		if err != nil {
			t.Fatalf("expected keep_newer to be set, err = %v", err)
		}

		if !cfg.KeepNewer {
			t.Fatal("expected keep_newer = true")
		}
	})

	t.Run("Invalid key", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("invalid_key", "")
		if err == nil {
			t.Fatalf("expected invalid_key to error out, no errors detected")
		}
	})

	t.Run("Invalid nested key", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("inspect.invalid.nested", "")
		if err == nil {
			t.Fatalf("expected inspect.invalid.nested to error out, no errors detected")
		}
	})

	t.Run("Invalid boolean value", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("keep_newer", "invalid")
		if err == nil {
			t.Fatalf("expected keep_newer to error out, no errors detected")
		}
	})

	t.Run("Slice field cannot be set", func(t *testing.T) {
		cfg := &settings.Settings{}

		err := cfg.SetValue("definition_dirs", "/somewhere")
		if err == nil {
			t.Fatalf("expected definition_dirs to error out, no errors detected")
		}
	})
}
