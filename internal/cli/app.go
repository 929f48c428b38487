package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/soyeahso/sasagent/internal/api"
	"github.com/soyeahso/sasagent/internal/hooks"
	"github.com/soyeahso/sasagent/internal/prefs"
	"github.com/soyeahso/sasagent/internal/store"
	"github.com/soyeahso/sasagent/internal/ui"
	"github.com/spf13/cobra"
)

// keyLastAgent remembers the agent used most recently.
const keyLastAgent = "last_agent"

var errNoAgent = errors.New("no agent selected: pass --agent or set agents.default")

func newClient() *api.Client {
	opts := []api.Option{
		api.WithDemoFallback(cfg.Agents.DemoFallbackEnabled()),
	}
	if cfg.Server.Token != "" {
		opts = append(opts, api.WithToken(cfg.Server.Token))
	}
	if cfg.Server.TimeoutSeconds > 0 {
		opts = append(opts, api.WithTimeout(time.Duration(cfg.Server.TimeoutSeconds)*time.Second))
	}
	return api.New(cfg.Server.BaseURL, log, opts...)
}

func newHooks() *hooks.Manager {
	m := hooks.NewManager(log)
	hooks.RegisterCommands(m, cfg.Hooks)
	return m
}

func newBanner(cmd *cobra.Command) *ui.StatusBanner {
	return ui.NewStatusBanner(cmd.ErrOrStderr(), colorEnabled())
}

// reportError shows err on the banner. Transport failures name the backend
// and server failures carry their status.
func reportError(banner *ui.StatusBanner, subject string, err error) {
	msg := err.Error()
	if api.IsNetworkError(err) {
		msg = fmt.Sprintf("%s (backend %s unreachable)", msg, cfg.Server.BaseURL)
	} else if code := api.StatusCode(err); code != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, code)
	}
	if subject != "" {
		msg = subject + ": " + msg
	}
	banner.Show(ui.KindError, msg)
}

// openPrefs opens the configured preference backend. The returned close
// function is never nil.
func openPrefs() (*prefs.Store, func(), error) {
	if cfg.Preferences.Store == "memory" {
		return prefs.New(prefs.NewMemoryBackend(), log), func() {}, nil
	}

	path := cfg.Preferences.Path
	if path == "" {
		path = paths.PreferencesDB()
	}
	db, err := store.Open(path, log)
	if err != nil {
		return nil, nil, fmt.Errorf("opening preferences: %w", err)
	}
	return prefs.New(store.NewPreferenceStore(db), log), func() { db.Close() }, nil
}

// resolveAgent picks the agent for a command: the flag, then
// agents.default, then the last agent used.
func resolveAgent(flag int64, p *prefs.Store) (int64, error) {
	if flag > 0 {
		return flag, nil
	}
	if cfg.Agents.Default > 0 {
		return int64(cfg.Agents.Default), nil
	}
	if id := prefs.Load(p, keyLastAgent, int64(0)); id > 0 {
		return id, nil
	}
	return 0, errNoAgent
}
