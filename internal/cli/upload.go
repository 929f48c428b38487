package cli

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/soyeahso/sasagent/internal/api"
	"github.com/soyeahso/sasagent/internal/format"
	"github.com/soyeahso/sasagent/internal/hooks"
	"github.com/soyeahso/sasagent/internal/intake"
	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
)

// uploader sends a selection of files to one agent.
type uploader struct {
	client      *api.Client
	hooks       *hooks.Manager
	banner      *ui.StatusBanner
	overlay     *ui.LoadingOverlay
	agentID     int64
	concurrency int
}

// uploadAll uploads files with at most u.concurrency in flight and returns
// the joined errors of the failed ones.
func (u *uploader) uploadAll(ctx context.Context, files []intake.File) error {
	if len(files) == 0 {
		return nil
	}

	u.overlay.Show(fmt.Sprintf("Uploading %d file(s)...", len(files)))
	defer u.overlay.Hide()

	p := pool.New().WithMaxGoroutines(max(u.concurrency, 1)).WithErrors().WithContext(ctx)
	for _, f := range files {
		p.Go(func(ctx context.Context) error {
			return u.uploadOne(ctx, f)
		})
	}
	return p.Wait()
}

func (u *uploader) uploadOne(ctx context.Context, f intake.File) error {
	r, err := f.Open()
	if err != nil {
		u.banner.Show(ui.KindError, fmt.Sprintf("%s: %v", f.Name, err))
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	defer r.Close()

	resp, err := u.client.UploadDocument(ctx, u.agentID, f.Name, r)
	if err != nil {
		reportError(u.banner, f.Name, err)
		return fmt.Errorf("%s: %w", f.Name, err)
	}

	u.hooks.Emit(ctx, hooks.EventDocumentUploaded, map[string]any{
		"agent_id": u.agentID,
		"filename": f.Name,
		"size":     f.Size,
		"response": resp,
	})
	u.banner.Show(ui.KindSuccess, fmt.Sprintf("Uploaded %s (%s)", f.Name, format.FileSize(uint64(max(f.Size, 0)))))
	return nil
}

func newUploadCmd() *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload documents to an agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			banner := newBanner(cmd)

			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			id, err := resolveAgent(agentID, p)
			if err != nil {
				return err
			}

			var files []intake.File
			for _, path := range args {
				f, err := intake.FileFromPath(path)
				if err != nil {
					banner.Show(ui.KindError, err.Error())
					return err
				}
				files = append(files, f)
			}

			accepted := intake.Filter(files, cfg.Upload.Extensions)
			for _, f := range files {
				if !intake.HasExtension(f.Name, cfg.Upload.Extensions) {
					banner.Show(ui.KindWarning, fmt.Sprintf("Skipping %s: unsupported file type", f.Name))
				}
			}
			if len(accepted) == 0 {
				return fmt.Errorf("no supported files (accepted: %v)", cfg.Upload.Extensions)
			}

			hookMgr := newHooks()
			input := intake.NewFileInput("upload", hookMgr)
			input.Select(ctx, accepted)

			u := &uploader{
				client:      newClient(),
				hooks:       hookMgr,
				banner:      banner,
				overlay:     ui.NewLoadingOverlay(cmd.ErrOrStderr()),
				agentID:     id,
				concurrency: cfg.Upload.Concurrency,
			}
			if err := u.uploadAll(ctx, input.Files()); err != nil {
				return err
			}

			p.Save(keyLastAgent, id)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent ID")
	return cmd
}
