package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/output"
	"github.com/shahbajlive/lexforge/internal/serve"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the study page, quiz, and live report over HTTP",
		Long: `Start a local HTTP server exposing the enriched word list as study and
quiz pages, the JSON report and progress files, and a websocket that
pushes the report whenever an enrichment run updates it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if addr == "" {
				addr = c.Serve.Addr
			}
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	c := cfg()

	srv := serve.NewServer(serve.Options{
		Addr:         addr,
		ReportPath:   c.Report,
		ProgressPath: c.Progress,
		OutputPath:   c.Output,
	}, slog.Default())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !IsJSONOutput() {
		fmt.Printf("%s listening on http://%s\n", output.OKStyle.Render("✓"), addr)
	}
	return srv.Start(ctx)
}
