package config

import (
	"os"

	"statuswatch/internal/common"

	"gopkg.in/yaml.v3"
)

const (
	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// HTTP defaults
	DefaultHTTPTimeoutSeconds = 30
	DefaultUserAgent          = "statuswatch/1.0"

	// Notification defaults
	DefaultWebhookTimeoutSeconds    = 10
	DefaultMaxRetryElapsedSeconds   = 30
	DefaultConsoleNotificationsOn   = true
	DefaultNotificationFeedLabeling = true

	// Ops defaults
	DefaultOpsListenAddr = "127.0.0.1:9090"

	// Watch defaults
	DefaultPollIntervalSeconds = 60
)

// Config is the root configuration for the statuswatch process.
type Config struct {
	HTTP          HTTPConfig         `json:"http,omitempty" yaml:"http,omitempty"`
	Log           LogConfig          `json:"log,omitempty" yaml:"log,omitempty"`
	Notifications NotificationConfig `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Ops           OpsConfig          `json:"ops,omitempty" yaml:"ops,omitempty"`
	Watch         WatchConfig        `json:"watch,omitempty" yaml:"watch,omitempty"`
}

// NewDefaultConfig creates a Config populated with defaults.
func NewDefaultConfig() *Config {
	return &Config{
		HTTP:          NewDefaultHTTPConfig(),
		Log:           NewDefaultLogConfig(),
		Notifications: NewDefaultNotificationConfig(),
		Ops:           NewDefaultOpsConfig(),
		Watch:         NewDefaultWatchConfig(),
	}
}

// GetConfigPath determines the configuration file path.
// Priority: explicit path, STATUSWATCH_CONFIG environment variable,
// config.yaml in the current working directory.
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		return providedPath
	}
	if envPath := os.Getenv("STATUSWATCH_CONFIG"); envPath != "" {
		return envPath
	}
	for _, candidate := range []string{"config.yaml", "config.yml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig loads configuration from the given path, falling back to default
// locations via GetConfigPath. A missing path yields the defaults unchanged;
// an unreadable or malformed file is an error.
func LoadConfig(providedPath string) (*Config, error) {
	cfg := NewDefaultConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "reading config file '%s'", filePath)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, common.WrapErrorf(err, "parsing config file '%s'", filePath)
	}

	return cfg, nil
}
