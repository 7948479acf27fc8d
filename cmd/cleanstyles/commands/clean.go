package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khawkins98/ckeditor-clean-styles/internal/output"
	"github.com/khawkins98/ckeditor-clean-styles/pkg/cleaner/cleanstyles"
)

// report wraps one file's cleaning outcome for structured output.
type report struct {
	Source   string                `json:"source" yaml:"source"`
	Changed  bool                  `json:"changed" yaml:"changed"`
	Stats    *cleanstyles.Stats    `json:"stats" yaml:"stats"`
	Warnings []cleanstyles.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

var cleanCmd = &cobra.Command{
	Use:   "clean [files...]",
	Short: "Clean HTML fragments from files or stdin",
	Long: `Clean reads HTML fragments, strips authoring artifacts according to the
rule table, and writes the cleaned HTML.

With no file arguments, input comes from stdin and output goes to stdout.
With --write, each file is rewritten in place. Reports go to stderr as
text, or to stdout with --stats-only and a structured --format.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("output", "o", "", "write cleaned HTML to file (single input only)")
	flags.BoolP("write", "w", false, "rewrite input files in place")
	flags.String("rules", "", "rule table file (YAML or JSON), merged over the defaults")
	flags.Bool("legacy", false, "use the narrow legacy rule table")
	flags.Bool("stats-only", false, "emit only the cleaning report, not the content")
	flags.String("format", "text", "report format: text, json, jsonl, yaml")

	_ = viper.BindPFlag("rules", flags.Lookup("rules"))
}

func runClean(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outFile, _ := flags.GetString("output")
	inPlace, _ := flags.GetBool("write")
	legacy, _ := flags.GetBool("legacy")
	statsOnly, _ := flags.GetBool("stats-only")
	format, _ := flags.GetString("format")

	if outFile != "" && len(args) > 1 {
		return fmt.Errorf("-o only works with a single input")
	}

	rules, err := buildRules(legacy)
	if err != nil {
		return err
	}
	rules.Debug = viper.GetBool("debug")

	cl, err := cleanstyles.New(rules)
	if err != nil {
		return fmt.Errorf("building cleaner: %w", err)
	}

	var writer output.Writer
	if format != "text" {
		writer, err = output.NewWriter(os.Stdout, output.Format(format))
		if err != nil {
			return err
		}
	}

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	for _, src := range sources {
		html, err := readSource(src)
		if err != nil {
			return err
		}

		result := cl.CleanWithStats(html)
		rep := report{
			Source:   displayName(src),
			Changed:  result.Changed,
			Stats:    result.Stats,
			Warnings: result.Warnings,
		}

		if writer != nil {
			if err := writer.Write(rep); err != nil {
				return err
			}
		} else if !viper.GetBool("quiet") {
			printTextReport(rep)
		}

		if statsOnly {
			continue
		}
		if err := writeContent(src, outFile, inPlace, result); err != nil {
			return err
		}
	}

	if writer != nil {
		return writer.Flush()
	}
	return nil
}

// buildRules assembles the effective rule table: default or legacy base,
// with a rules file merged on top when configured.
func buildRules(legacy bool) (*cleanstyles.RuleSet, error) {
	base := cleanstyles.DefaultRuleSet()
	if legacy {
		base = cleanstyles.LegacyRuleSet()
	}

	rulesPath := viper.GetString("rules")
	if rulesPath == "" {
		return base, nil
	}

	fileRules, err := cleanstyles.RuleSetFromFile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("loading rules %s: %w", rulesPath, err)
	}
	return base.Merge(fileRules), nil
}

func readSource(src string) (string, error) {
	if src == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", src, err)
	}
	return string(data), nil
}

func writeContent(src, outFile string, inPlace bool, result *cleanstyles.Result) error {
	switch {
	case outFile != "":
		if err := os.WriteFile(outFile, []byte(result.Content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outFile, err)
		}
	case inPlace && src != "-":
		// Untouched files stay untouched, mtime included.
		if !result.Changed {
			return nil
		}
		if err := os.WriteFile(src, []byte(result.Content), 0644); err != nil {
			return fmt.Errorf("rewriting %s: %w", src, err)
		}
	default:
		fmt.Println(result.Content)
	}
	return nil
}

func displayName(src string) string {
	if src == "-" {
		return "stdin"
	}
	return src
}

func printTextReport(rep report) {
	fmt.Fprintf(os.Stderr, "%s: %s -> %s",
		rep.Source,
		humanize.Bytes(uint64(rep.Stats.InputBytes)),
		humanize.Bytes(uint64(rep.Stats.OutputBytes)))
	if !rep.Changed {
		fmt.Fprintf(os.Stderr, " (unchanged)")
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, rep.Stats.String())
	for _, w := range rep.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}
}
