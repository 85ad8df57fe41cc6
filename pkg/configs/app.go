package configs

import "github.com/spf13/viper"

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name    string `mapstructure:"name" json:"name"`
	Debug   bool   `mapstructure:"debug" json:"debug"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`
	// Quiet suppresses all output except errors.
	Quiet bool `mapstructure:"quiet" json:"quiet"`
}

func setAppConfigDefaults() {
	viper.SetDefault("app.name", "wasmup")
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.verbose", false)
	viper.SetDefault("app.quiet", false)
}
