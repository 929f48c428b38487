package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/soyeahso/sasagent/internal/config"
)

const defaultCommandTimeout = 5 * time.Second

// CommandHandler runs entry.Command through sh with the JSON payload on
// stdin and SASAGENT_EVENT set in the environment.
func CommandHandler(entry config.HookEntry) Handler {
	timeout := defaultCommandTimeout
	if entry.Timeout > 0 {
		timeout = time.Duration(entry.Timeout) * time.Millisecond
	}

	return func(ctx context.Context, p Payload) error {
		input, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encoding hook payload: %w", err)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, "sh", "-c", entry.Command)
		cmd.Stdin = bytes.NewReader(input)
		cmd.Env = append(os.Environ(), "SASAGENT_EVENT="+p.Event)
		cmd.WaitDelay = time.Second

		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("hook %q: %w: %s", entry.Command, err, strings.TrimSpace(string(out)))
		}
		return nil
	}
}

// RegisterCommands wires every configured shell hook into m.
func RegisterCommands(m *Manager, cfg config.HooksConfig) {
	byEvent := map[string][]config.HookEntry{
		EventFilesChanged:     cfg.FilesChanged,
		EventDocumentUploaded: cfg.DocumentUploaded,
		EventMessageSending:   cfg.MessageSending,
		EventMessageReceived:  cfg.MessageReceived,
	}
	for _, event := range AllEvents {
		for i, entry := range byEvent[event] {
			m.On(event, fmt.Sprintf("config:%s[%d]", event, i), CommandHandler(entry))
		}
	}
}
