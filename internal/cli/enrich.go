package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/backend"
	"github.com/shahbajlive/lexforge/internal/cache"
	"github.com/shahbajlive/lexforge/internal/enrich"
	"github.com/shahbajlive/lexforge/internal/output"
	"github.com/shahbajlive/lexforge/internal/render"
	"github.com/shahbajlive/lexforge/internal/wordlist"
)

// progressSaveInterval is how many finished words between checkpoint writes.
const progressSaveInterval = 10

func newEnrichCmd() *cobra.Command {
	var (
		input    string
		outFile  string
		strategy string
		maxWords int
		workers  int
		resume   bool
		noCache  bool
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich a word list using multi-model consensus",
		Long: `Enrich a word list file ("word pos. definition" lines) by querying the
discovered backends, merging answers by the configured strategy, and
appending finished records to the output file.

Progress checkpoints every few words; an interrupted run continues with
--resume. The previous output file is backed up before the run starts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if input != "" {
				c.Input = input
			}
			if outFile != "" {
				c.Output = outFile
			}
			if strategy != "" {
				c.Enrich.Strategy = strategy
			}
			if maxWords > 0 {
				c.MaxWords = maxWords
			}
			if workers > 0 {
				c.Enrich.Workers = workers
			}
			if noCache {
				c.Cache = ""
			}
			if strict {
				c.Enrich.Strict = true
			}
			if err := c.Validate(); err != nil {
				return err
			}
			return runEnrich(cmd.Context(), resume)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Word list file")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Enriched output file")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "consensus, expert-panel, or cross-check")
	cmd.Flags().IntVarP(&maxWords, "max-words", "n", 0, "Process at most this many words")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool width (0 = auto)")
	cmd.Flags().BoolVar(&resume, "resume", false, "Continue from the last checkpoint")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the response cache")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject incomplete backend responses")

	return cmd
}

// EnrichResponse is the JSON output for enrich runs.
type EnrichResponse struct {
	output.TimestampedResponse
	Processed  int            `json:"processed"`
	Skipped    int            `json:"skipped,omitempty"`
	Summary    enrich.Summary `json:"summary"`
	OutputFile string         `json:"output_file"`
	ReportFile string         `json:"report_file"`
	Degraded   bool           `json:"degraded_registry,omitempty"`
}

func runEnrich(ctx context.Context, resume bool) error {
	c := cfg()

	tasks, err := wordlist.ReadFile(c.Input, c.MaxWords)
	if err != nil {
		return fmt.Errorf("reading word list: %w", err)
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no parseable entries in %s", c.Input)
	}

	skipped := 0
	if resume {
		progress, ok, err := enrich.LoadProgress(c.Progress)
		if err != nil {
			return err
		}
		if ok && progress.ProcessedCount < len(tasks) {
			skipped = progress.ProcessedCount
			tasks = tasks[skipped:]
		} else if ok {
			return fmt.Errorf("nothing to resume: %d/%d already processed", progress.ProcessedCount, progress.TotalCount)
		}
	} else {
		if err := enrich.BackupOutput(c.Output, c.Backup); err != nil {
			return err
		}
		if err := enrich.ClearProgress(c.Progress); err != nil {
			return err
		}
		if err := os.Remove(c.Output); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reset output: %w", err)
		}
	}
	total := skipped + len(tasks)

	classifier, err := c.LoadClassifier()
	if err != nil {
		return err
	}

	runner := backend.ExecRunner{}
	registry := backend.Discover(ctx, runner, classifier)

	var store *cache.Store
	if c.Cache != "" {
		store, err = cache.Open(c.Cache)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ec := c.EnrichConfig()
	orch := enrich.New(ec, registry, backend.NewInvoker(runner), c.Engine(), store, nil)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !IsJSONOutput() {
		fmt.Println()
		fmt.Printf("  %s %d backends, strategy %s, %d words\n",
			output.TitleStyle.Render("lexforge enrich"),
			registry.Len(), ec.Strategy, len(tasks))
		if registry.Degraded {
			fmt.Printf("  %s backend discovery failed, using fallback backend only\n",
				output.WarnStyle.Render("!"))
		}
		fmt.Println()
	}

	finished := skipped
	records := orch.Run(ctx, tasks, func(i int, rec enrich.Record) {
		if rec.Word == "" {
			return
		}
		if err := render.AppendRecord(c.Output, rec); err != nil {
			fmt.Fprintf(os.Stderr, "write failed for %s: %v\n", rec.Word, err)
			return
		}
		finished++
		if finished%progressSaveInterval == 0 {
			saveCheckpoint(c.Progress, c.Input, c.Output, finished, total, rec.Word)
		}
		if !IsJSONOutput() {
			printRecordLine(rec, finished, total)
		}
	})

	processed := 0
	for _, rec := range records {
		if rec.Word != "" {
			processed++
		}
	}

	last := ""
	if processed > 0 {
		last = records[processed-1].Word
	}
	saveCheckpoint(c.Progress, c.Input, c.Output, skipped+processed, total, last)

	report := enrich.BuildReport(orch.Stats(), ec.Strategy, records[:processed])
	if err := enrich.WriteReport(c.Report, report); err != nil {
		return err
	}

	if IsJSONOutput() {
		return output.PrintJSON(EnrichResponse{
			TimestampedResponse: output.NewTimestamped(),
			Processed:           processed,
			Skipped:             skipped,
			Summary:             report.Summary,
			OutputFile:          c.Output,
			ReportFile:          c.Report,
			Degraded:            registry.Degraded,
		})
	}

	printSummary(report.Summary, processed)
	if ctx.Err() != nil {
		fmt.Printf("  %s interrupted, resume with --resume\n", output.WarnStyle.Render("!"))
	}
	return nil
}

func saveCheckpoint(path, input, outFile string, processed, total int, lastWord string) {
	err := enrich.SaveProgress(path, enrich.Progress{
		ProcessedCount: processed,
		TotalCount:     total,
		LastWord:       lastWord,
		InputFile:      input,
		OutputFile:     outFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "checkpoint failed: %v\n", err)
	}
}

func printRecordLine(rec enrich.Record, finished, total int) {
	mark := output.OKStyle.Render("✓")
	note := fmt.Sprintf("confidence %.2f", rec.ConfidenceScore)
	if rec.FallbackUsed {
		mark = output.WarnStyle.Render("~")
		note = "fallback"
	}
	fmt.Printf("  %s %-18s %s %s\n",
		mark,
		output.Truncate(rec.Word, 18),
		output.MutedStyle.Render(fmt.Sprintf("[%d/%d]", finished, total)),
		output.MutedStyle.Render(note+" "+rec.Elapsed.Round(time.Millisecond).String()))
}

func printSummary(s enrich.Summary, processed int) {
	fmt.Println()
	fmt.Printf("  %s\n", output.TitleStyle.Render("Run summary"))
	fmt.Printf("    Processed:        %d\n", processed)
	fmt.Printf("    Consensus rate:   %.1f%%\n", s.ConsensusRate)
	fmt.Printf("    Fallback rate:    %.1f%%\n", s.FallbackRate)
	fmt.Printf("    Avg confidence:   %.2f\n", s.AverageConfidence)
	fmt.Printf("    Avg agreement:    %.2f\n", s.AverageAgreement)
	fmt.Printf("    Models per word:  %.1f\n", s.AverageModelsPerWord)
	fmt.Println()
}
