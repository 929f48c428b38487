package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidate_BaseURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"http", "http://localhost:5000", true},
		{"https", "https://sas.example.com", true},
		{"relative", "/api", false},
		{"empty", "", false},
		{"ftp", "ftp://files.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Server.BaseURL = tt.url
			issues := Validate(&cfg)
			if tt.valid {
				assert.Empty(t, issues)
			} else {
				require.Len(t, issues, 1)
				assert.Equal(t, "server.baseUrl", issues[0].Path)
			}
		})
	}
}

func TestValidate_NegativeTimeout(t *testing.T) {
	cfg := Defaults()
	cfg.Server.TimeoutSeconds = -1
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "server.timeoutSeconds", issues[0].Path)
}

func TestValidate_Extensions(t *testing.T) {
	cfg := Defaults()
	cfg.Upload.Extensions = []string{".txt", "pdf", "."}
	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "upload.extensions[1]", issues[0].Path)
	assert.Equal(t, "upload.extensions[2]", issues[1].Path)
}

func TestValidate_PreferencesStore(t *testing.T) {
	cfg := Defaults()
	cfg.Preferences.Store = "redis"
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "preferences.store", issues[0].Path)
}

func TestValidate_Logging(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"
	cfg.Logging.ConsoleStyle = "compact"
	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "logging.level", issues[0].Path)
	assert.Equal(t, "logging.consoleStyle", issues[1].Path)
}

func TestValidate_HookCommandRequired(t *testing.T) {
	cfg := Defaults()
	cfg.Hooks.MessageReceived = []HookEntry{{Command: "  "}}
	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "hooks.messageReceived[0].command", issues[0].Path)
	assert.Equal(t, "hooks.messageReceived[0].command: command is required", issues[0].String())
}

func TestValidate_HookCommandShellSyntax(t *testing.T) {
	cfg := Defaults()
	cfg.Hooks.DocumentUploaded = []HookEntry{
		{Command: "jq -r .data.filename >> ~/uploads.log"},
		{Command: "echo 'unterminated"},
		{Command: "if true; then echo; fi", Timeout: -1},
	}
	issues := Validate(&cfg)
	require.Len(t, issues, 2)
	assert.Equal(t, "hooks.documentUploaded[1].command", issues[0].Path)
	assert.Contains(t, issues[0].Message, "invalid shell syntax")
	assert.Equal(t, "hooks.documentUploaded[2].timeout", issues[1].Path)
}
