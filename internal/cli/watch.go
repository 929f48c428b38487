package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/soyeahso/sasagent/internal/config"
	"github.com/soyeahso/sasagent/internal/hooks"
	"github.com/soyeahso/sasagent/internal/intake"
	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tillberg/autorestart"
)

func newWatchCmd() *cobra.Command {
	var (
		agentID int64
		restart bool
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Upload every document dropped into a directory",
		Long: "Watch a drop directory and upload each supported file written into it. " +
			"The directory defaults to upload.watchDir, then ~/.sasagent/drop.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if restart {
				go autorestart.RestartOnChange()
			}

			ctx := cmd.Context()

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			id, err := resolveAgent(agentID, p)
			if err != nil {
				return err
			}

			dir := cfg.Upload.WatchDir
			if len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				dir = paths.Drop
			}
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("creating drop directory: %w", err)
			}

			banner := newBanner(cmd)
			hookMgr := newHooks()
			u := &uploader{
				client:      newClient(),
				hooks:       hookMgr,
				banner:      banner,
				overlay:     ui.NewLoadingOverlay(cmd.ErrOrStderr()),
				agentID:     id,
				concurrency: cfg.Upload.Concurrency,
			}
			hookMgr.On(hooks.EventFilesChanged, "watch:upload", func(ctx context.Context, payload hooks.Payload) error {
				return u.uploadAll(ctx, intake.FilesFromPayload(payload))
			})

			input := intake.NewFileInput("drop", hookMgr)
			zone := intake.NewDropZone(input, cfg.Upload.Extensions, log)
			w := intake.NewWatcher(dir, zone, log)

			banner.Show(ui.KindInfo, fmt.Sprintf("Watching %s for agent %d", dir, id))
			return w.Run(ctx)
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent ID")
	cmd.Flags().BoolVar(&restart, "autorestart", false, "re-exec when the sasagent binary changes")
	return cmd
}
