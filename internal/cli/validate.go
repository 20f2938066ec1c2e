package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/output"
	"github.com/shahbajlive/lexforge/internal/render"
	"github.com/shahbajlive/lexforge/internal/validate"
)

func newValidateCmd() *cobra.Command {
	var (
		file  string
		level string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score an enriched word list for quality",
		Long: `Parse an enriched output file and score every entry with the quality
heuristics. By default only failing entries are listed; --all shows
every entry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if file == "" {
				file = c.Output
			}
			lv := validate.Level(level)
			if level == "" {
				lv = validate.Level(c.Validation.Level)
			}
			if !lv.IsValid() {
				return fmt.Errorf("unknown validation level %q", lv)
			}
			return runValidate(file, lv, all)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Enriched file to validate")
	cmd.Flags().StringVarP(&level, "level", "l", "", "basic, intermediate, or comprehensive")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show passing entries too")

	return cmd
}

// ValidateEntry is the per-word slice of the validate command output.
type ValidateEntry struct {
	Word   string          `json:"word"`
	Passed bool            `json:"passed"`
	Report validate.Report `json:"report"`
}

// ValidateResponse is the JSON output for the validate command.
type ValidateResponse struct {
	output.TimestampedResponse
	File    string          `json:"file"`
	Level   string          `json:"level"`
	Total   int             `json:"total"`
	Passed  int             `json:"passed"`
	Failed  int             `json:"failed"`
	Entries []ValidateEntry `json:"entries"`
}

func runValidate(file string, level validate.Level, all bool) error {
	c := cfg()

	entries, err := render.ParseRecordsFile(file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries found in %s", file)
	}

	engine := validate.New(level, c.Validation.Weights)

	var results []ValidateEntry
	passed := 0
	for _, e := range entries {
		report := engine.Validate(e.Word, "", e.Meaning,
			e.Synonyms, e.Antonyms, e.Sentences, e.Origin)
		ok := report.Passed()
		if ok {
			passed++
		}
		if all || !ok {
			results = append(results, ValidateEntry{Word: e.Word, Passed: ok, Report: report})
		}
	}

	if IsJSONOutput() {
		return output.PrintJSON(ValidateResponse{
			TimestampedResponse: output.NewTimestamped(),
			File:                file,
			Level:               level.String(),
			Total:               len(entries),
			Passed:              passed,
			Failed:              len(entries) - passed,
			Entries:             results,
		})
	}

	fmt.Println()
	fmt.Printf("  %s %s, level %s\n\n", output.TitleStyle.Render("Validation"), file, level)
	for _, r := range results {
		mark := output.ErrorStyle.Render("✗")
		if r.Passed {
			mark = output.OKStyle.Render("✓")
		}
		fmt.Printf("  %s %-18s %s\n", mark, output.Truncate(r.Word, 18),
			output.MutedStyle.Render(fmt.Sprintf("overall %.2f", r.Report.OverallScore)))
		for _, field := range []struct {
			name string
			fr   validate.FieldResult
		}{
			{"synonyms", r.Report.Synonyms},
			{"antonyms", r.Report.Antonyms},
			{"sentences", r.Report.Sentences},
			{"etymology", r.Report.Etymology},
		} {
			if field.fr.Valid {
				continue
			}
			for _, issue := range field.fr.Issues {
				fmt.Printf("      %s %s\n", output.WarnStyle.Render(field.name+":"), issue)
			}
		}
	}
	fmt.Println()
	fmt.Printf("  %d/%d passed\n\n", passed, len(entries))
	return nil
}
