package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/soyeahso/sasagent/internal/domain"
	"github.com/soyeahso/sasagent/internal/format"
	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
)

func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage agents",
	}

	cmd.AddCommand(newAgentCreateCmd())
	cmd.AddCommand(newAgentListCmd())
	cmd.AddCommand(newAgentHistoryCmd())
	cmd.AddCommand(newAgentDocumentsCmd())
	return cmd
}

func newAgentCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := newBanner(cmd)
			overlay := ui.NewLoadingOverlay(cmd.ErrOrStderr())
			overlay.Show("Creating agent...")
			defer overlay.Hide()

			res, err := newClient().CreateAgent(cmd.Context(), domain.CreateAgentRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				reportError(banner, "", err)
				return err
			}

			p, closePrefs, err := openPrefs()
			if err == nil {
				p.Save(keyLastAgent, res.AgentID)
				closePrefs()
			}

			banner.Show(ui.KindSuccess, res.Message)
			fmt.Fprintln(cmd.OutOrStdout(), res.AgentID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "agent description")
	return cmd
}

func newAgentListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents on the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			agents := newClient().ListAgents(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(agents)
			}

			if len(agents) == 0 {
				fmt.Fprintln(out, "No agents yet.")
				return nil
			}
			for _, a := range agents {
				fmt.Fprintf(out, "  %-6d %-24s %s\n", a.ID, a.Name, format.TruncateText(a.Description, 60))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print agents as JSON")
	return cmd
}

func newAgentHistoryCmd() *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show an agent's chat history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			id, err := resolveAgent(agentID, p)
			if err != nil {
				return err
			}

			entries, err := newClient().AgentHistory(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			now := time.Now()
			for _, e := range entries {
				fmt.Fprintf(out, "[%s]\n  you:   %s\n  agent: %s\n",
					format.Timestamp(e.Time(), now), e.UserMessage, e.AgentResponse)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent ID")
	return cmd
}

func newAgentDocumentsCmd() *cobra.Command {
	var agentID int64

	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List documents uploaded to an agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			id, err := resolveAgent(agentID, p)
			if err != nil {
				return err
			}

			docs, err := newClient().AgentDocuments(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "No documents uploaded.")
				return nil
			}
			for _, d := range docs {
				fmt.Fprintf(out, "  %-6d %-32s %s\n", d.ID, d.Filename, format.RelativeTime(d.UploadedTime()))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent ID")
	return cmd
}
