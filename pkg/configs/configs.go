// Package configs provides configuration management for wasmup.
package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Version string      `mapstructure:"version" json:"version"`
	Log     LogConfig   `mapstructure:"log" json:"log"`
	App     AppConfig   `mapstructure:"app" json:"app"`
	Dev     DevConfig   `mapstructure:"dev" json:"dev"`
	Watch   WatchConfig `mapstructure:"watch" json:"watch"`
}

var globalConfig *Config

func setDefaults() {
	viper.SetDefault("version", "1.0")
	setLogConfigDefaults()
	setAppConfigDefaults()
	setDevConfigDefaults()
	setWatchConfigDefaults()
}

// tryLoadConfigFiles searches the usual locations for a config file in any
// of the supported formats and points viper at the first one found.
func tryLoadConfigFiles() bool {
	searchPaths := []string{
		".",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/wasmup",
	}

	configNames := []string{".wasmup", "wasmup"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)

				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}

				if _, err := os.Stat(configFile); err == nil {
					viper.SetConfigFile(configFile)
					return true
				}
			}
		}
	}

	return false
}

// LoadConfig loads the configuration, either from the explicitly given path
// or by searching the usual locations. A missing config file is fine, the
// defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		tryLoadConfigFiles()
	}

	viper.SetEnvPrefix("WASMUP")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed parsing config file: %w", err)
	}

	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed creating log directory: %w", err)
		}
	}

	globalConfig = &config
	return &config, nil
}

// GetConfig returns the global configuration, loading it on first use.
func GetConfig() *Config {
	if globalConfig == nil {
		config, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("failed loading config: %v", err))
		}
		return config
	}
	return globalConfig
}
