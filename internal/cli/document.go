package cli

import (
	"fmt"
	"strconv"

	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
)

func newDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Manage uploaded documents",
	}

	cmd.AddCommand(newDocumentDeleteCmd())
	return cmd
}

func newDocumentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete an uploaded document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid document id %q", args[0])
			}

			banner := newBanner(cmd)
			if err := newClient().DeleteDocument(cmd.Context(), id); err != nil {
				reportError(banner, "", err)
				return err
			}
			banner.Show(ui.KindSuccess, fmt.Sprintf("Deleted document %d", id))
			return nil
		},
	}
}
