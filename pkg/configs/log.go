package configs

import "github.com/spf13/viper"

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of: trace, debug, info, warn, error, fatal, panic.
	Level string `mapstructure:"level" json:"level"`
	// JSON switches the console output to plain JSON lines.
	JSON bool `mapstructure:"json" json:"json"`
	// Mode is one of: console, file, both.
	Mode string `mapstructure:"mode" json:"mode"`
	// FilePath is the log file location for the file and both modes.
	FilePath   string `mapstructure:"file_path" json:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size"`       // megabytes
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups"` // rotated files kept
	MaxAge     int    `mapstructure:"max_age" json:"max_age"`         // days
}

func setLogConfigDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.mode", "console")
	viper.SetDefault("log.file_path", ".wasmup/wasmup.log")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)
}
