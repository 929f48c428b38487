package cli

import (
	"fmt"

	"github.com/soyeahso/sasagent/internal/config"
	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/soyeahso/sasagent/internal/version"
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := newBanner(cmd)
			client := newClient()
			if !client.Ping(cmd.Context()) {
				banner.Show(ui.KindError, "Backend unreachable at "+client.BaseURL())
				return fmt.Errorf("backend unreachable")
			}
			banner.Show(ui.KindSuccess, "Backend reachable at "+client.BaseURL())
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sasagent status and configuration summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sasagent %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Fprintf(out, "Config:  %s\n", paths.Config)
			fmt.Fprintf(out, "Data:    %s\n", paths.Data)
			fmt.Fprintf(out, "Logs:    %s\n", paths.Logs)
			fmt.Fprintln(out)

			client := newClient()
			reach := "unreachable"
			if client.Ping(cmd.Context()) {
				reach = "reachable"
			}
			fmt.Fprintf(out, "Server:  %s (%s)\n", client.BaseURL(), reach)

			timeout := "none"
			if cfg.Server.TimeoutSeconds > 0 {
				timeout = fmt.Sprintf("%ds", cfg.Server.TimeoutSeconds)
			}
			fmt.Fprintf(out, "Timeout: %s\n", timeout)
			fmt.Fprintf(out, "Agents:  demoFallback=%v default=%d\n",
				cfg.Agents.DemoFallbackEnabled(), cfg.Agents.Default)
			fmt.Fprintf(out, "Upload:  extensions=%v concurrency=%d\n",
				cfg.Upload.Extensions, cfg.Upload.Concurrency)

			p, closePrefs, err := openPrefs()
			if err != nil {
				fmt.Fprintf(out, "Prefs:   error: %v\n", err)
			} else {
				fmt.Fprintf(out, "Prefs:   store=%s theme=%s\n", cfg.Preferences.Store, p.Theme())
				closePrefs()
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Fprintf(out, "\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Fprintf(out, "  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}
}
