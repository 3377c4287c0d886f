package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rwxsh/zcompgen/internal/adapter"
	buildVars "github.com/rwxsh/zcompgen/internal/build"
	cmdTypes "github.com/rwxsh/zcompgen/internal/cmd/types"
	cmdUtils "github.com/rwxsh/zcompgen/internal/cmd/utils"
	"github.com/rwxsh/zcompgen/internal/constants"
	"github.com/rwxsh/zcompgen/internal/definition"
	"github.com/rwxsh/zcompgen/internal/logger"
	"github.com/rwxsh/zcompgen/internal/settings"
	"github.com/rwxsh/zcompgen/internal/zsh"

	completionCmd "github.com/rwxsh/zcompgen/cmd/completion"
	datesCmd "github.com/rwxsh/zcompgen/cmd/dates"
	inspectCmd "github.com/rwxsh/zcompgen/cmd/inspect"
)

const helpTemplate = `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`

// MainCommand builds the full command tree. It is exported for the
// documentation generator, which walks the tree for man pages.
func MainCommand() *cobra.Command {
	opts := cmdTypes.MainOpts{}

	cmd := cobra.Command{
		Use:                        "zcompgen [DEFINITION] [OUTPUT] [flags]",
		Short:                      "zcompgen",
		Long:                       "A generator for zsh completion scripts from command-line definitions",
		Version:                    fmt.Sprintf("%s (git rev: %s)", buildVars.Version, buildVars.GitRevision),
		SilenceUsage:               true,
		SuggestionsMinimumDistance: 4,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Args: cobra.MaximumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logger.NewLogger()
			cfg := loadSettings(log)

			for key, value := range opts.ConfigValues {
				if err := cfg.SetValue(key, value); err != nil {
					log.Warnf("failed to set configuration value %v: %v", key, err)
				}
			}

			if errs := cfg.Validate(); errs != nil {
				for _, err := range errs {
					log.Warnf("config: %v", err)
				}
			}

			if opts.ColorAlways {
				color.NoColor = false
			} else if !cfg.UseColor || !term.IsTerminal(int(os.Stderr.Fd())) {
				color.NoColor = true
			}
			log.RefreshColorPrefixes()
			cmd.Root().SetErrPrefix(color.RedString("error:"))

			ctx := settings.WithConfig(cmd.Context(), cfg)
			ctx = logger.WithLogger(ctx, log)
			cmd.SetContext(ctx)
		},
		ValidArgsFunction: definition.CompleteNames(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdUtils.CommandErrorHandler(generateMain(cmd, &opts, args))
		},
	}

	cmd.SetErrPrefix("error:")

	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetUsageTemplate(helpTemplate)

	cmd.Flags().BoolP("help", "h", false, "Show this help menu")
	cmd.Flags().BoolP("version", "v", false, "Display version information")

	cmd.PersistentFlags().BoolVarP(&opts.ColorAlways, "color-always", "C", false, "Always color output when possible")
	cmd.PersistentFlags().StringToStringVarP(&opts.ConfigValues, "config", "c", map[string]string{}, "Set a configuration `key=value`")

	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "Substitute completions into template `file`")
	cmd.Flags().BoolVar(&opts.KeepNewer, "keep-newer", false, "Skip generation when OUTPUT is newer than DEFINITION")

	_ = cmd.RegisterFlagCompletionFunc("config", settings.CompleteConfigFlag)

	cmd.AddCommand(completionCmd.CompletionCommand())
	cmd.AddCommand(datesCmd.DatesCommand())
	cmd.AddCommand(inspectCmd.InspectCommand())

	extendedHelp := cmd.HelpTemplate() + `
Arguments:
  [DEFINITION]  Definition name or path to generate from (default: ` + constants.AppName + `)
  [OUTPUT]      Path to write the script to, or - for stdout (default: _<program>)
`
	cmd.SetHelpTemplate(extendedHelp)

	return &cmd
}

func loadSettings(log *logger.Logger) *settings.Settings {
	location := os.Getenv(constants.ConfigEnvVariable)
	explicit := location != ""

	if !explicit {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return settings.NewSettings()
		}
		location = filepath.Join(configDir, constants.ConfigDirName, constants.ConfigFileName)
	}

	if _, err := os.Stat(location); err != nil {
		if explicit {
			log.Warnf("cannot read configuration at %v: %v", location, err)
		}
		return settings.NewSettings()
	}

	cfg, err := settings.ParseSettings(location)
	if err != nil {
		log.Warnf("failed to parse configuration at %v: %v", location, err)
		return settings.NewSettings()
	}

	return cfg
}

func generateMain(cmd *cobra.Command, opts *cmdTypes.MainOpts, args []string) error {
	log := logger.FromContext(cmd.Context())
	cfg := settings.FromContext(cmd.Context())

	name := constants.AppName
	if len(args) > 0 {
		name = args[0]
	}

	def, definitionPath, err := adapter.ResolveOrSelf(cmd.Root(), name, definition.SearchDirs(cfg.DefinitionDirs))
	if err != nil {
		log.Errorf("failed to load definition: %v", err)
		return err
	}

	output := def.ScriptName()
	if len(args) > 1 {
		output = args[1]
	}

	if (opts.KeepNewer || cfg.KeepNewer) && output != "-" && definitionPath != "" {
		if outputNewer(output, definitionPath) {
			log.Infof("%v is newer than %v, skipping generation", output, definitionPath)
			return nil
		}
	}

	template := zsh.DefaultTemplate
	templatePath := opts.Template
	if templatePath == "" {
		templatePath = cfg.Template
	}
	if templatePath != "" {
		contents, err := os.ReadFile(templatePath)
		if err != nil {
			log.Errorf("failed to read template: %v", err)
			return err
		}
		template = string(contents)
	}

	script, err := zsh.Script(def.Programs, def.Specs, template)
	if err != nil {
		log.Errorf("failed to generate completions: %v", err)
		return err
	}

	if output == "-" {
		fmt.Print(script)
		return nil
	}

	if err := os.WriteFile(output, []byte(script), 0o644); err != nil {
		log.Errorf("failed to write %v: %v", output, err)
		return err
	}

	log.Infof("wrote %v", output)
	return nil
}

// outputNewer reports whether the generated script is already newer
// than its definition. Errors count as stale, so generation proceeds.
func outputNewer(output string, definitionPath string) bool {
	outputTimes, err := times.Stat(output)
	if err != nil {
		return false
	}
	definitionTimes, err := times.Stat(definitionPath)
	if err != nil {
		return false
	}

	return outputTimes.ModTime().After(definitionTimes.ModTime())
}

func Execute() {
	if err := MainCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
