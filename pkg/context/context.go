// Package context bundles the pieces every command needs: a base context,
// the loaded configuration and the logger.
package context

import (
	"context"

	"github.com/wasmup/wasmup/pkg/configs"
	"github.com/wasmup/wasmup/pkg/utils/log"
)

// WasmupContext carries the application-wide state, constructed once in the
// root command and passed down explicitly instead of living as globals.
type WasmupContext struct {
	context.Context
	Config *configs.Config
	Logger log.Logger
}

// GlobalFlags are the persistent flags of the root command that influence
// context construction.
type GlobalFlags struct {
	ConfigPath string
	Debug      bool
	Verbose    bool
	Quiet      bool
}

// InitWasmupContext loads the configuration, applies the global flag
// overrides and initializes the logger.
func InitWasmupContext(flags GlobalFlags) *WasmupContext {
	ctx := context.Background()

	config, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		panic(err)
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)

	return &WasmupContext{
		Context: ctx,
		Config:  config,
		Logger:  logger,
	}
}
