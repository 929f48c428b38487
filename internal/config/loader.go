package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envNamespace prefixes every environment override, e.g. SASAGENT_BASE_URL.
const envNamespace = "SASAGENT"

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// envOverrides holds values read from the environment. Empty fields leave
// the file value untouched.
type envOverrides struct {
	BaseURL        string `envconfig:"BASE_URL"`
	Token          string `envconfig:"TOKEN"`
	TimeoutSeconds *int   `envconfig:"TIMEOUT_SECONDS"`
	DemoFallback   *bool  `envconfig:"DEMO_FALLBACK"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
	PrefsStore     string `envconfig:"PREFS_STORE"`
}

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	cfg.Server.Token = expandEnvVars(cfg.Server.Token)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to a YAML config file.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
func applyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = DefaultBaseURL
	}
	cfg.Server.BaseURL = strings.TrimSuffix(cfg.Server.BaseURL, "/")
	if len(cfg.Upload.Extensions) == 0 {
		cfg.Upload.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if cfg.Upload.Concurrency <= 0 {
		cfg.Upload.Concurrency = 4
	}
	if cfg.Preferences.Store == "" {
		cfg.Preferences.Store = "sqlite"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = "pretty"
	}
}

// applyEnvOverrides reads SASAGENT_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envNamespace, &env); err != nil {
		return &ConfigError{Message: "invalid environment override: " + err.Error()}
	}

	if env.BaseURL != "" {
		cfg.Server.BaseURL = strings.TrimSuffix(env.BaseURL, "/")
	}
	if env.Token != "" {
		cfg.Server.Token = env.Token
	}
	if env.TimeoutSeconds != nil {
		cfg.Server.TimeoutSeconds = *env.TimeoutSeconds
	}
	if env.DemoFallback != nil {
		cfg.Agents.DemoFallback = env.DemoFallback
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(env.LogLevel)
	}
	if env.PrefsStore != "" {
		cfg.Preferences.Store = env.PrefsStore
	}
	return nil
}
