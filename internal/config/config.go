// Package config manages application configuration from config files and
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// JiraConfig holds connection settings for the Jira instance.
type JiraConfig struct {
	// BaseURL is the root of the Jira instance, e.g. https://acme.atlassian.net
	// or https://jira.acme.internal.
	BaseURL string `json:"baseURL"`
	// Username is the account email (Cloud) or login name (Data Center).
	Username string `json:"username,omitempty"`
	// APIToken is the Cloud API token or Data Center personal access token.
	APIToken string `json:"apiToken,omitempty"`
	// Cloud selects the Jira Cloud API conventions; false means
	// self-hosted Data Center / Server.
	Cloud bool `json:"cloud"`
	// APIVersion overrides the REST API version segment. Zero picks the
	// variant default: 3 for Cloud, 2 for Data Center.
	APIVersion int `json:"apiVersion,omitempty"`
	// BearerAuth sends the token as a bearer header instead of basic auth.
	// Data Center personal access tokens require this.
	BearerAuth bool `json:"bearerAuth,omitempty"`
}

// SearchConfig tunes the assignee autocomplete.
type SearchConfig struct {
	// MinTermLength is the minimum number of characters (after trimming)
	// before a server-side user search is triggered.
	MinTermLength int `json:"minTermLength,omitempty"`
	// DebounceMs is the idle interval between the last keystroke and the
	// search request.
	DebounceMs int `json:"debounceMs,omitempty"`
}

// StylingConfig lets users override the colors used to render work item
// statuses and types in the search results.
type StylingConfig struct {
	WorkItemStatusColors map[string]string `json:"workItemStatusColors,omitempty"`
	WorkItemTypeColors   map[string]string `json:"workItemTypeColors,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	Jira    JiraConfig    `json:"jira"`
	Search  SearchConfig  `json:"search"`
	Styling StylingConfig `json:"styling,omitempty"`
	Debug   bool          `json:"debug,omitempty"`
	LogFile string        `json:"logFile,omitempty"`
}

const (
	appName = "jiratui"

	defaultMinTermLength = 3
	defaultDebounceMs    = 500

	cloudAPIVersion      = 3
	dataCenterAPIVersion = 2
)

// DebounceInterval returns the configured debounce interval as a duration.
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.Search.DebounceMs) * time.Millisecond
}

var cfg *Config

// Load initializes the configuration from config files and environment
// variables. It is idempotent; subsequent calls return the loaded config.
func Load(debug bool) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{}

	configureViper()
	setDefaults(debug)

	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(level)

	applyDefaults(cfg)
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func setDefaults(debug bool) {
	viper.SetDefault("search.minTermLength", defaultMinTermLength)
	viper.SetDefault("search.debounceMs", defaultDebounceMs)
	viper.SetDefault("jira.cloud", true)
	viper.SetDefault("debug", debug)
}

// readConfig handles the result of reading a configuration file. A missing
// file is not an error; all settings can come from the environment.
func readConfig(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// applyDefaults fills derived values that depend on other settings.
func applyDefaults(c *Config) {
	if c.Jira.APIVersion == 0 {
		if c.Jira.Cloud {
			c.Jira.APIVersion = cloudAPIVersion
		} else {
			c.Jira.APIVersion = dataCenterAPIVersion
		}
	}
	if c.Search.MinTermLength < 1 {
		c.Search.MinTermLength = defaultMinTermLength
	}
	if c.Search.DebounceMs < 1 {
		c.Search.DebounceMs = defaultDebounceMs
	}
}

// Validate checks that the configuration is usable for connecting to Jira.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	if cfg.Jira.BaseURL == "" {
		return fmt.Errorf("jira.baseURL is required (set it in .%s.json or JIRATUI_JIRA_BASEURL)", appName)
	}
	return nil
}

// Get returns the current configuration.
func Get() *Config {
	return cfg
}
