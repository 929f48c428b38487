package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if u, err := url.Parse(cfg.Server.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.baseUrl",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.Server.BaseURL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		issues = append(issues, ValidationIssue{
			Path:    "server.baseUrl",
			Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
		})
	}

	if cfg.Server.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "server.timeoutSeconds",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Server.TimeoutSeconds),
		})
	}

	for i, ext := range cfg.Upload.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("upload.extensions[%d]", i),
				Message: fmt.Sprintf("must start with a dot, got %q", ext),
			})
		}
	}

	if cfg.Upload.Concurrency < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "upload.concurrency",
			Message: fmt.Sprintf("must be >= 0, got %d", cfg.Upload.Concurrency),
		})
	}

	validStores := []string{"sqlite", "memory"}
	if cfg.Preferences.Store != "" && !slices.Contains(validStores, cfg.Preferences.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "preferences.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Preferences.Store),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validConsoleStyles := []string{"pretty", "json"}
	if cfg.Logging.ConsoleStyle != "" && !slices.Contains(validConsoleStyles, cfg.Logging.ConsoleStyle) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.consoleStyle",
			Message: fmt.Sprintf("must be one of %v, got %q", validConsoleStyles, cfg.Logging.ConsoleStyle),
		})
	}

	hookLists := map[string][]HookEntry{
		"hooks.filesChanged":     cfg.Hooks.FilesChanged,
		"hooks.documentUploaded": cfg.Hooks.DocumentUploaded,
		"hooks.messageSending":   cfg.Hooks.MessageSending,
		"hooks.messageReceived":  cfg.Hooks.MessageReceived,
	}
	for _, name := range slices.Sorted(maps.Keys(hookLists)) {
		for i, h := range hookLists[name] {
			path := fmt.Sprintf("%s[%d]", name, i)
			if strings.TrimSpace(h.Command) == "" {
				issues = append(issues, ValidationIssue{
					Path:    path + ".command",
					Message: "command is required",
				})
			} else if err := checkShell(h.Command); err != nil {
				issues = append(issues, ValidationIssue{
					Path:    path + ".command",
					Message: "invalid shell syntax: " + err.Error(),
				})
			}
			if h.Timeout < 0 {
				issues = append(issues, ValidationIssue{
					Path:    path + ".timeout",
					Message: fmt.Sprintf("must be >= 0, got %d", h.Timeout),
				})
			}
		}
	}

	return issues
}

// checkShell parses command as a POSIX shell program, the dialect sh runs.
func checkShell(command string) error {
	_, err := syntax.NewParser(syntax.Variant(syntax.LangPOSIX)).Parse(strings.NewReader(command), "")
	return err
}
