package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/olekukonko/tablewriter"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/rwxsh/zcompgen/internal/adapter"
	"github.com/rwxsh/zcompgen/internal/argspec"
	cmdTypes "github.com/rwxsh/zcompgen/internal/cmd/types"
	cmdUtils "github.com/rwxsh/zcompgen/internal/cmd/utils"
	"github.com/rwxsh/zcompgen/internal/constants"
	"github.com/rwxsh/zcompgen/internal/definition"
	"github.com/rwxsh/zcompgen/internal/logger"
	"github.com/rwxsh/zcompgen/internal/settings"
	"github.com/rwxsh/zcompgen/internal/zsh"
)

func InspectCommand() *cobra.Command {
	opts := cmdTypes.InspectOpts{}

	cmd := cobra.Command{
		Use:               "inspect [DEFINITION] [NAME]",
		Short:             "Show how a definition translates to directives",
		Long:              "Show a definition's entries and the completion directives they translate to.",
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: InspectCompletionFunc(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdUtils.CommandErrorHandler(inspectMain(cmd, &opts, args))
		},
	}

	cmd.Flags().BoolVarP(&opts.DisplayJson, "json", "j", false, "Output information in JSON format")
	cmd.Flags().Int64VarP(&opts.MinScore, "min-score", "s", 0, "Minimum score for fuzzy match suggestions")

	cmdUtils.SetHelpFlagText(&cmd)
	cmd.SetHelpTemplate(cmd.HelpTemplate() + `
Arguments:
  [DEFINITION]  Definition name or path to inspect (default: ` + constants.AppName + `)
  [NAME]        Entry name or option string to look up
`)

	return &cmd
}

// entry pairs a spec with its rendered directive. Unsupported entries
// carry the error instead.
type entry struct {
	spec      argspec.Spec
	directive string
	err       error
}

type entrySource []entry

func (s entrySource) String(i int) string { return entryLabel(s[i].spec) }
func (s entrySource) Len() int            { return len(s) }

func inspectMain(cmd *cobra.Command, opts *cmdTypes.InspectOpts, args []string) error {
	log := logger.FromContext(cmd.Context())
	cfg := settings.FromContext(cmd.Context())

	minScore := cfg.Inspect.MinScore
	if cmd.Flags().Changed("min-score") {
		minScore = opts.MinScore
	}

	name := cmd.Root().Name()
	if len(args) > 0 {
		name = args[0]
	}

	def, path, err := adapter.ResolveOrSelf(cmd.Root(), name, definition.SearchDirs(cfg.DefinitionDirs))
	if err != nil {
		log.Errorf("failed to load definition: %v", err)
		return err
	}

	entries := renderEntries(def.Specs)

	if len(args) > 1 {
		return lookupEntry(log, entries, args[1], minScore, opts.DisplayJson)
	}

	if opts.DisplayJson {
		displayDefinitionJson(def, path, entries)
		return nil
	}

	displayDefinition(def, path, entries)
	return nil
}

// renderEntries folds the positional counter over the specs the same
// way script generation does, so the displayed directives match the
// generated ones exactly.
func renderEntries(specs []argspec.Spec) []entry {
	entries := make([]entry, len(specs))

	pos := 1
	for i, spec := range specs {
		directive, next, err := zsh.DirectiveAt(spec, pos)
		pos = next
		entries[i] = entry{spec: spec, directive: directive, err: err}
	}

	return entries
}

func entryLabel(spec argspec.Spec) string {
	if spec.Positional() {
		return spec.Name
	}
	return strings.Join(spec.Options, ", ")
}

func lookupEntry(log *logger.Logger, entries []entry, query string, minScore int64, displayJson bool) error {
	exactMatchIdx := slices.IndexFunc(entries, func(e entry) bool {
		return e.spec.Name == query || slices.Contains(e.spec.Options, query)
	})
	if exactMatchIdx != -1 {
		e := entries[exactMatchIdx]

		if displayJson {
			displayEntryJson(e)
		} else {
			displayEntry(e)
		}

		return nil
	}

	msg := fmt.Sprintf("no exact match for query '%s' found", query)
	err := fmt.Errorf("%v", msg)

	fuzzySearchResults := fuzzy.FindFrom(query, entrySource(entries))
	if len(fuzzySearchResults) > 10 {
		fuzzySearchResults = fuzzySearchResults[:10]
	}

	fuzzySearchResults = filterMinimumScoreMatches(fuzzySearchResults, int(minScore))

	if displayJson {
		displayErrorJson(msg, fuzzySearchResults)
		return err
	}

	log.Error(msg)
	if len(fuzzySearchResults) > 0 {
		log.Print("\nSome similar entries were found:\n")
		for _, v := range fuzzySearchResults {
			log.Printf(" - %s\n", v.Str)
		}
	} else {
		log.Print("\nTry refining your search query.\n")
	}

	return err
}

func displayDefinition(def *definition.Definition, path string, entries []entry) {
	fmt.Printf("Programs: %v\n", strings.Join(def.Programs, ", "))
	fmt.Printf("Script:   %v\n", def.ScriptName())
	if path != "" {
		fmt.Printf("Source:   %v\n", path)

		created, modified := fileTimes(path)
		if created != "" {
			fmt.Printf("Created:  %v\n", created)
		}
		fmt.Printf("Modified: %v\n", modified)
	} else {
		fmt.Printf("Source:   built-in command tree\n")
	}
	fmt.Println()

	data := make([][]string, len(entries))
	for i, e := range entries {
		directive := e.directive
		if e.err != nil {
			directive = e.err.Error()
		}

		data[i] = []string{entryLabel(e.spec), e.spec.Nargs.String(), directive}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Entry", "Nargs", "Directive"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(data)
	table.Render()
}

func displayEntry(e entry) {
	spec := e.spec

	fmt.Printf("Name:      %v\n", spec.Name)
	if len(spec.Options) > 0 {
		fmt.Printf("Options:   %v\n", strings.Join(spec.Options, ", "))
	}
	if spec.Help != "" {
		fmt.Printf("Help:      %v\n", spec.Help)
	}
	if len(spec.Metavar) > 0 {
		fmt.Printf("Metavar:   %v\n", strings.Join(spec.Metavar, " "))
	}
	if len(spec.Choices) > 0 {
		fmt.Printf("Choices:   %v\n", strings.Join(spec.Choices, ", "))
	}
	if spec.Value != "" {
		fmt.Printf("Value:     %v\n", spec.Value)
	}
	fmt.Printf("Nargs:     %v\n", spec.Nargs)
	if spec.Terminal {
		fmt.Printf("Terminal:  true\n")
	}
	if e.err != nil {
		fmt.Printf("Error:     %v\n", e.err)
	} else {
		fmt.Printf("Directive: %v\n", e.directive)
	}
}

type entryJson struct {
	argspec.Spec
	Directive string `json:"directive,omitempty"`
	Error     string `json:"error,omitempty"`
}

func toEntryJson(e entry) entryJson {
	j := entryJson{Spec: e.spec, Directive: e.directive}
	if e.err != nil {
		j.Directive = ""
		j.Error = e.err.Error()
	}
	return j
}

func displayEntryJson(e entry) {
	bytes, _ := json.MarshalIndent(toEntryJson(e), "", "  ")
	fmt.Printf("%v\n", string(bytes))
}

func displayDefinitionJson(def *definition.Definition, path string, entries []entry) {
	type definitionJson struct {
		Programs []string    `json:"programs"`
		Source   string      `json:"source,omitempty"`
		Script   string      `json:"script"`
		Entries  []entryJson `json:"entries"`
	}

	entryList := make([]entryJson, len(entries))
	for i, e := range entries {
		entryList[i] = toEntryJson(e)
	}

	bytes, _ := json.MarshalIndent(definitionJson{
		Programs: def.Programs,
		Source:   path,
		Script:   def.ScriptName(),
		Entries:  entryList,
	}, "", "  ")
	fmt.Printf("%v\n", string(bytes))
}

func displayErrorJson(msg string, matches fuzzy.Matches) {
	type errorJson struct {
		Message        string   `json:"message"`
		SimilarEntries []string `json:"similar_entries"`
	}

	matchedStrings := make([]string, len(matches))
	for i, match := range matches {
		matchedStrings[i] = match.Str
	}

	bytes, _ := json.MarshalIndent(errorJson{
		Message:        msg,
		SimilarEntries: matchedStrings,
	}, "", "  ")
	fmt.Printf("%v\n", string(bytes))
}

func fileTimes(path string) (created string, modified string) {
	ts, err := times.Stat(path)
	if err != nil {
		return "", "unknown"
	}

	if ts.HasBirthTime() {
		created = ts.BirthTime().Format(time.ANSIC)
	}

	return created, ts.ModTime().Format(time.ANSIC)
}

// Filter a sorted (descending) match list until a minimum score is reached.
// Return a slice of the original matches.
func filterMinimumScoreMatches(matches []fuzzy.Match, minScore int) []fuzzy.Match {
	for i, v := range matches {
		if v.Score < minScore {
			return matches[:i]
		}
	}

	return matches
}
