package configs

import "github.com/spf13/viper"

// DevConfig holds settings for the local development server.
type DevConfig struct {
	// Port is the local TCP port to listen on. The server always binds to
	// localhost only.
	Port int `mapstructure:"port" json:"port"`
}

func setDevConfigDefaults() {
	viper.SetDefault("dev.port", 8080)
}
