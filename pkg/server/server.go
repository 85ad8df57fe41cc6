// Package server hosts the build output for development purposes and pushes
// live-reload notifications to connected browsers.
package server

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// writeTimeout bounds a single reload push, so a stuck client can't keep a
// connection goroutine from noticing shutdown.
const writeTimeout = time.Second

//go:embed reload.js
var reloadScript []byte

// Server hosts the dist directory and the live-reload endpoints.
type Server struct {
	dist        string
	broadcaster *Broadcaster
	logger      zerolog.Logger
	upgrader    websocket.Upgrader
}

// New creates a dev server serving the given dist directory, pushing a
// reload frame to connected clients whenever the broadcaster's token
// advances.
func New(dist string, broadcaster *Broadcaster, logger zerolog.Logger) *Server {
	return &Server{
		dist:        dist,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Run serves until the context is canceled. It always binds to localhost
// only; exposing this server publicly is a bad idea, as it only does the
// basics in terms of security.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    net.JoinHostPort("127.0.0.1", strconv.Itoa(port)),
		Handler: s.routes(ctx),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("failed shutting down server")
		}
	}()

	s.logger.Info().Str("addr", "http://"+srv.Addr).Msg("dev server listening")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	s.logger.Debug().Msg("server shut down")
	return nil
}

// routes builds the request multiplexer. The context bounds the lifetime of
// every reload connection.
func (s *Server) routes(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/__WASMUP__/reload.js", s.handleReloadScript)
	mux.HandleFunc("/__WASMUP__/reload", func(w http.ResponseWriter, r *http.Request) {
		s.handleReloadSocket(ctx, w, r)
	})
	mux.HandleFunc("/", s.handleApp)
	return mux
}

// handleApp serves files from the dist directory, falling back to the markup
// entry for unmatched routes so single-page-application routing keeps
// working on a full page load.
func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.dist, filepath.FromSlash(strings.TrimPrefix(p, "/")))

	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		http.ServeFile(w, r, full)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.dist, "index.html"))
}

// handleReloadScript provides the script that triggers page reloads after a
// rebuild. The built page loads it from a fixed path in dev mode.
func (s *Server) handleReloadScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	_, _ = w.Write(reloadScript)
}

// handleReloadSocket upgrades the connection and notifies the client with a
// single text frame whenever the reload token advances. The connection loop
// ends on client disconnect, send failure or global shutdown.
func (s *Server) handleReloadSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed upgrading reload connection")
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	// acknowledge the current token first, so a client attaching mid-burst
	// doesn't receive a reload for changes that predate its connection
	_, changed := s.broadcaster.Watch()

	// the read side only serves to detect the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-closed:
			// client closed the connection, normal termination
			return
		case <-changed:
			_, changed = s.broadcaster.Watch()

			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
				s.logger.Warn().Err(err).Msg("failed pushing reload frame")
				return
			}
		}
	}
}
