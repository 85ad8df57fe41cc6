package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wasmup/wasmup/pkg/build"
	"github.com/wasmup/wasmup/pkg/server"
	"github.com/wasmup/wasmup/pkg/tools"
	"github.com/wasmup/wasmup/pkg/utils/gitignore"
	"github.com/wasmup/wasmup/pkg/watch"
)

var devPortFlag int

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Run a local server for development purposes",
	Long: `Build the project, then watch it for changes, rebuild the affected
parts and live-reload connected browsers.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		port := wasmupCtx.Config.Dev.Port
		if cmd.Flags().Changed("port") {
			port = devPortFlag
		}
		return runDev(port)
	},
}

func runDev(port int) error {
	project, err := os.Getwd()
	if err != nil {
		return err
	}

	// ignore file parse failure and the initial scan failing are the only
	// fatal conditions, everything later is logged and recovered in place
	filter, err := gitignore.Load(project)
	if err != nil {
		return err
	}

	builder, err := build.New(project, tools.Resolve(), filter, *log)
	if err != nil {
		return err
	}

	if err := builder.Full(false, true); err != nil {
		return err
	}

	watcher, err := watch.Watch(project, filter, *log)
	if err != nil {
		return err
	}

	watchCfg := wasmupCtx.Config.Watch
	debouncer := watch.Debounce(
		watcher.Changes(),
		time.Duration(watchCfg.DebounceMS)*time.Millisecond,
		time.Duration(watchCfg.SweepMS)*time.Millisecond,
		*log,
	)

	broadcaster := server.NewBroadcaster()

	ctx, stop := signal.NotifyContext(wasmupCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// rebuild worker: consumes debounced changes and advances the reload
	// token after every successful rebuild
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-debouncer.Changes():
				if !ok {
					return
				}
				if err := builder.Rebuild(change); err != nil {
					log.Error().Err(err).Msg("failed rebuilding")
					continue
				}
				broadcaster.Notify()
				log.Debug().Msg("sent reload signal")
			}
		}
	}()

	srv := server.New(filepath.Join(project, "dist"), broadcaster, *log)
	err = srv.Run(ctx, port)

	stop()
	<-done
	debouncer.Shutdown()
	watcher.Shutdown()

	return err
}

func init() {
	devCmd.Flags().IntVarP(&devPortFlag, "port", "p", 8080, "local TCP port to listen on")
	rootCmd.AddCommand(devCmd)
}
