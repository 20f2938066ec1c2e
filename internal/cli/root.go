// Package cli wires the cobra command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/config"
	"github.com/shahbajlive/lexforge/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	configPath string
	loadedCfg  *config.Config
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lexforge",
		Short: "Multi-model vocabulary enrichment",
		Long: `lexforge enriches vocabulary word lists by querying multiple local
language model backends, merging their answers by weighted consensus,
scoring the result with heuristic validation, and rendering study text
and HTML pages.

Examples:
  lexforge backends                 # Show discovered backends and roles
  lexforge enrich --max-words 50    # Enrich the first 50 words
  lexforge enrich --resume          # Continue an interrupted run
  lexforge render -o study.html
  lexforge serve                    # Dashboard on localhost`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			output.DisableColorIfRedirected()

			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, err := config.LoadOrDefault(path)
			if err != nil {
				return err
			}
			loadedCfg = cfg
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output machine-readable JSON")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/lexforge/config.toml)")

	root.AddCommand(
		newEnrichCmd(),
		newBackendsCmd(),
		newValidateCmd(),
		newRenderCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if jsonOutput {
			output.PrintJSON(output.NewError(err.Error()))
		} else {
			fmt.Fprintf(os.Stderr, "%s %v\n", output.ErrorStyle.Render("error:"), err)
		}
		return 1
	}
	return 0
}

// cfg returns the loaded configuration.
func cfg() *config.Config {
	if loadedCfg == nil {
		loadedCfg = config.Default()
	}
	return loadedCfg
}
