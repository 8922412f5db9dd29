package remote

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weft-dev/weft/pkg/middleware"
)

// ServerConfig configures the remote server.
type ServerConfig struct {
	Addr            string
	Session         SessionConfig
	MaxIdle         time.Duration
	EvictInterval   time.Duration
	EnableMetrics   bool
	EnableTracing   bool
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns the production defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		Session:         DefaultSessionConfig(),
		MaxIdle:         5 * time.Minute,
		EvictInterval:   time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server accepts websocket connections and runs one Session per client.
type Server struct {
	root     RootFunc
	config   ServerConfig
	logger   *slog.Logger
	registry *Registry
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	// OnSession, when set, observes every session after Start.
	OnSession func(*Session)
}

// NewServer creates a server that mounts root for each connection.
func NewServer(root RootFunc, cfg ServerConfig, logger *slog.Logger) *Server {
	s := &Server{
		root:     root,
		config:   cfg,
		logger:   logger,
		registry: NewRegistry(logger, cfg.MaxIdle),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.Router(),
	}
	return s
}

// Registry returns the server's session registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Router builds the HTTP routes: the websocket endpoint, health, and
// metrics.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if s.config.EnableTracing {
		r.Use(middleware.OpenTelemetry())
	}
	if s.config.EnableMetrics {
		r.Use(middleware.Prometheus())
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/ws", s.handleWS)
	return r
}

// handleWS upgrades the connection and runs a session until it ends.
func (s *Server) handleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		middleware.RecordWebSocketError("upgrade")
		return
	}

	sess := NewSession(conn, s.logger, s.config.Session)
	if err := sess.Start(s.root); err != nil {
		s.logger.Error("session start failed", "session", sess.ID, "error", err)
		middleware.RecordWebSocketError("mount")
		return
	}

	s.registry.Add(sess)
	middleware.RecordSessionOpen()
	s.logger.Info("session started", "session", sess.ID, "remote", req.RemoteAddr)
	if s.OnSession != nil {
		s.OnSession(sess)
	}

	<-sess.done
	s.registry.Remove(sess.ID)
	middleware.RecordSessionClose()
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully: HTTP first, then every live session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	go s.registry.Watch(s.config.EvictInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("remote server listening", "addr", s.config.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.registry.Shutdown()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.httpSrv.Shutdown(shutdownCtx)
	s.registry.Shutdown()
	return err
}
