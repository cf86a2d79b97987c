package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL  string        `mapstructure:"API_BASE_URL"`
	StateDBPath string        `mapstructure:"STATE_DB_PATH"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
	LogFile     string        `mapstructure:"LOG_FILE"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

// LoadConfig reads the configuration from defaults, an optional .env file and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()
	dir := configDir()

	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("STATE_DB_PATH", filepath.Join(dir, "state.db"))
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILE", "")
	// Zero means requests are never timed out.
	v.SetDefault("HTTP_TIMEOUT", "0s")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath(dir)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return &cfg, nil
}

// configDir is where the state database and the optional .env live.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ragchat"
	}
	return filepath.Join(home, ".ragchat")
}
