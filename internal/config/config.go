package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format template for lookup commands
	// Default: "" (the entity summary)
	OutputFormat string

	// Column width lookup output is padded to, 0 disables padding
	OutputWidth int

	// Path of the lookup history database
	// Default: ~/.config/crates/history.db
	HistoryDB string

	// Discogs API settings
	Discogs DiscogsConfig
}

// DiscogsConfig holds Discogs specific configuration
type DiscogsConfig struct {
	Token     string
	UserAgent string
	BaseURL   string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", "")
	v.SetDefault("output_width", 0)
	v.SetDefault("history_db", filepath.Join(configDir, "history.db"))
	v.SetDefault("discogs.token", "")
	v.SetDefault("discogs.user_agent", "")
	v.SetDefault("discogs.base_url", "")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. CRATES_DISCOGS_TOKEN
	v.SetEnvPrefix("CRATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		OutputFormat: v.GetString("output_format"),
		OutputWidth:  v.GetInt("output_width"),
		HistoryDB:    v.GetString("history_db"),
		Discogs: DiscogsConfig{
			Token:     v.GetString("discogs.token"),
			UserAgent: v.GetString("discogs.user_agent"),
			BaseURL:   v.GetString("discogs.base_url"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "crates")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.save(getConfigDir())
}

func (c *Config) save(configDir string) error {
	v := viper.New()

	configFile := filepath.Join(configDir, "config.yaml")

	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("history_db", c.HistoryDB)
	v.Set("discogs.token", c.Discogs.Token)
	v.Set("discogs.user_agent", c.Discogs.UserAgent)
	v.Set("discogs.base_url", c.Discogs.BaseURL)

	// Token file is readable by the owner only
	if err := v.WriteConfigAs(configFile); err != nil {
		return err
	}
	return os.Chmod(configFile, 0600)
}
