package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shahbajlive/lexforge/internal/backend"
	"github.com/shahbajlive/lexforge/internal/output"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List discovered backends and their roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackends(cmd)
		},
	}
}

// BackendInfo describes one discovered backend.
type BackendInfo struct {
	ID       string   `json:"id"`
	Size     string   `json:"size"`
	Speed    string   `json:"speed"`
	Quality  string   `json:"quality"`
	Priority int      `json:"priority"`
	Roles    []string `json:"roles,omitempty"`
}

// BackendsResponse is the JSON output for the backends command.
type BackendsResponse struct {
	output.TimestampedResponse
	Backends []BackendInfo `json:"backends"`
	Degraded bool          `json:"degraded_registry,omitempty"`
}

func runBackends(cmd *cobra.Command) error {
	c := cfg()

	classifier, err := c.LoadClassifier()
	if err != nil {
		return err
	}

	registry := backend.Discover(cmd.Context(), backend.ExecRunner{}, classifier)
	roles := backend.AssignRoles(registry)

	infos := make([]BackendInfo, 0, registry.Len())
	for _, p := range registry.List() {
		infos = append(infos, BackendInfo{
			ID:       p.ID,
			Size:     p.Size,
			Speed:    p.Speed.String(),
			Quality:  p.Quality.String(),
			Priority: p.Priority(),
			Roles:    roles.For(p.ID),
		})
	}

	if IsJSONOutput() {
		return output.PrintJSON(BackendsResponse{
			TimestampedResponse: output.NewTimestamped(),
			Backends:            infos,
			Degraded:            registry.Degraded,
		})
	}

	fmt.Println()
	fmt.Printf("  %s\n\n", output.TitleStyle.Render("Discovered backends"))
	if registry.Degraded {
		fmt.Printf("  %s discovery failed, showing the fallback backend only\n\n",
			output.WarnStyle.Render("!"))
	}
	for _, info := range infos {
		fmt.Printf("  %s %-22s %s\n",
			output.OKStyle.Render("●"),
			info.ID,
			output.MutedStyle.Render(fmt.Sprintf("%s/%s/%s priority %d",
				info.Size, info.Speed, info.Quality, info.Priority)))
		for _, role := range info.Roles {
			fmt.Printf("      %s\n", output.MutedStyle.Render(role))
		}
	}
	fmt.Println()
	return nil
}
