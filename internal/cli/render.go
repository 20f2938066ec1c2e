package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/output"
	"github.com/shahbajlive/lexforge/internal/render"
)

func newRenderCmd() *cobra.Command {
	var (
		file    string
		outFile string
		quiz    bool
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an enriched word list as a study or quiz page",
		Long: `Parse an enriched output file and render it as a standalone HTML page.
The default is a study sheet; --quiz builds a multiple-choice quiz
instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = cfg().Output
			}
			return runRender(file, outFile, quiz, seed)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Enriched file to render")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "HTML file to write (default stdout)")
	cmd.Flags().BoolVar(&quiz, "quiz", false, "Render a quiz instead of a study sheet")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Quiz shuffle seed (0 = time-based)")

	return cmd
}

// RenderResponse is the JSON output for the render command.
type RenderResponse struct {
	output.SuccessResponse
	Entries    int    `json:"entries"`
	Questions  int    `json:"questions,omitempty"`
	OutputFile string `json:"output_file,omitempty"`
}

func runRender(file, outFile string, quiz bool, seed int64) error {
	entries, err := render.ParseRecordsFile(file)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries found in %s", file)
	}

	dst := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	questions := 0
	if quiz {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		qs := render.BuildQuiz(entries, rand.New(rand.NewSource(seed)))
		if qs == nil {
			return fmt.Errorf("need at least 4 entries for a quiz, have %d", len(entries))
		}
		questions = len(qs)
		if err := render.QuizHTML(dst, qs); err != nil {
			return err
		}
	} else {
		if err := render.StudyHTML(dst, entries); err != nil {
			return err
		}
	}

	if outFile == "" {
		return nil
	}
	if IsJSONOutput() {
		return output.PrintJSON(RenderResponse{
			SuccessResponse: output.NewSuccess("rendered"),
			Entries:         len(entries),
			Questions:       questions,
			OutputFile:      outFile,
		})
	}
	fmt.Printf("%s wrote %s (%d entries)\n", output.OKStyle.Render("✓"), outFile, len(entries))
	return nil
}
