package cli

import (
	"fmt"
	"strings"

	"github.com/soyeahso/sasagent/internal/format"
	"github.com/soyeahso/sasagent/internal/hooks"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var (
		agentID int64
		html    bool
	)

	cmd := &cobra.Command{
		Use:   "chat <message>...",
		Short: "Send a message to an agent and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			query := strings.Join(args, " ")

			p, closePrefs, err := openPrefs()
			if err != nil {
				return err
			}
			defer closePrefs()

			id, err := resolveAgent(agentID, p)
			if err != nil {
				return err
			}

			hookMgr := newHooks()
			hookMgr.Emit(ctx, hooks.EventMessageSending, map[string]any{
				"agent_id": id,
				"query":    query,
			})

			reply, err := newClient().SendChatMessage(ctx, id, query)
			if err != nil {
				reportError(newBanner(cmd), "", err)
				return err
			}

			hookMgr.Emit(ctx, hooks.EventMessageReceived, map[string]any{
				"agent_id": id,
				"query":    query,
				"reply":    reply.Response,
			})
			p.Save(keyLastAgent, id)

			text := reply.Response
			if html {
				text = format.MessageContent(format.EscapeHTML(text))
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().Int64Var(&agentID, "agent", 0, "agent ID")
	cmd.Flags().BoolVar(&html, "html", false, "render the reply as HTML")
	return cmd
}
