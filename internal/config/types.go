package config

// Config is the root configuration for sasagent.
type Config struct {
	Server      ServerConfig      `yaml:"server,omitempty"`
	Agents      AgentsConfig      `yaml:"agents,omitempty"`
	Upload      UploadConfig      `yaml:"upload,omitempty"`
	Preferences PreferencesConfig `yaml:"preferences,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Hooks       HooksConfig       `yaml:"hooks,omitempty"`
}

// ServerConfig points the API client at a backend.
type ServerConfig struct {
	BaseURL        string `yaml:"baseUrl,omitempty"`
	Token          string `yaml:"token,omitempty"`          // sent as a Bearer token when set; supports ${ENV_VAR}
	TimeoutSeconds int    `yaml:"timeoutSeconds,omitempty"` // 0 disables the client-side timeout
}

// AgentsConfig controls agent listing behavior.
type AgentsConfig struct {
	// DemoFallback substitutes the placeholder demo agent when listing fails.
	// A nil pointer means the default (enabled).
	DemoFallback *bool `yaml:"demoFallback,omitempty"`
	Default      int   `yaml:"default,omitempty"` // agent used when --agent is omitted
}

// DemoFallbackEnabled reports whether the listing fallback is on.
func (a AgentsConfig) DemoFallbackEnabled() bool {
	return a.DemoFallback == nil || *a.DemoFallback
}

// UploadConfig controls document intake.
type UploadConfig struct {
	Extensions  []string `yaml:"extensions,omitempty"` // accepted suffixes, e.g. ".txt"
	Concurrency int      `yaml:"concurrency,omitempty"`
	WatchDir    string   `yaml:"watchDir,omitempty"`
}

// PreferencesConfig selects the local preference backend.
type PreferencesConfig struct {
	Store string `yaml:"store,omitempty"` // "sqlite" | "memory"
	Path  string `yaml:"path,omitempty"`  // sqlite file; defaults to <data>/preferences.db
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File         string `yaml:"file,omitempty"`
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}

// HooksConfig defines shell commands run on client events.
type HooksConfig struct {
	FilesChanged     []HookEntry `yaml:"filesChanged,omitempty"`
	DocumentUploaded []HookEntry `yaml:"documentUploaded,omitempty"`
	MessageSending   []HookEntry `yaml:"messageSending,omitempty"`
	MessageReceived  []HookEntry `yaml:"messageReceived,omitempty"`
}

// HookEntry defines a single hook action.
type HookEntry struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout,omitempty"` // milliseconds
}
