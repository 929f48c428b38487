package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// DefaultBaseURL is the Flask development server address.
const DefaultBaseURL = "http://127.0.0.1:5000"

// DefaultExtensions are the document suffixes the backend can ingest.
var DefaultExtensions = []string{".txt", ".pdf", ".md"}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			BaseURL: DefaultBaseURL,
		},
		Upload: UploadConfig{
			Extensions:  append([]string(nil), DefaultExtensions...),
			Concurrency: 4,
		},
		Preferences: PreferencesConfig{
			Store: "sqlite",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
