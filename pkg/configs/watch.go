package configs

import "github.com/spf13/viper"

// WatchConfig holds settings for the file watcher and debouncer.
type WatchConfig struct {
	// DebounceMS is the quiet period in milliseconds a change has to age
	// before a rebuild is triggered.
	DebounceMS int `mapstructure:"debounce_ms" json:"debounce_ms"`
	// SweepMS is the interval in milliseconds at which pending changes are
	// checked for expiry.
	SweepMS int `mapstructure:"sweep_ms" json:"sweep_ms"`
}

func setWatchConfigDefaults() {
	viper.SetDefault("watch.debounce_ms", 2000)
	viper.SetDefault("watch.sweep_ms", 500)
}
