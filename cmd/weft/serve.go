package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/weft-dev/weft/el"
	"github.com/weft-dev/weft/internal/config"
	"github.com/weft-dev/weft/internal/store"
	"github.com/weft-dev/weft/pkg/blueprint"
	"github.com/weft-dev/weft/pkg/build"
	"github.com/weft-dev/weft/pkg/host"
	"github.com/weft-dev/weft/pkg/remote"
)

func serveCmd() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the remote host",
		Long: `Run the WebSocket host. Each connection gets its own runtime and
component tree; configuration comes from defaults, an optional YAML
file, and WEFT_-prefixed environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func runServe(cfg config.Config) error {
	logger := newLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var snapshots store.Store
	if cfg.Store.Driver == "sqlite" {
		db, err := sql.Open("sqlite3", cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open snapshot db: %w", err)
		}
		defer db.Close()

		snapshots, err = store.NewSQLStore(ctx, db, store.WithLogger(logger))
		if err != nil {
			return err
		}
		defer snapshots.Close()
		logger.Info("snapshot store ready", "driver", cfg.Store.Driver, "path", cfg.Store.Path)
	}

	serverCfg := remote.ServerConfig{
		Addr: cfg.Server.Addr,
		Session: remote.SessionConfig{
			ReadTimeout:       cfg.Session.ReadTimeout,
			WriteTimeout:      cfg.Session.WriteTimeout,
			HeartbeatInterval: cfg.Session.HeartbeatInterval,
			SendBuffer:        cfg.Session.SendBuffer,
		},
		MaxIdle:         cfg.Session.MaxIdle,
		EvictInterval:   cfg.Session.EvictInterval,
		EnableMetrics:   cfg.Telemetry.Metrics,
		EnableTracing:   cfg.Telemetry.Tracing,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	srv := remote.NewServer(statusRoot, serverCfg, logger)
	if snapshots != nil {
		srv.OnSession = func(sess *remote.Session) {
			go persistSession(ctx, snapshots, sess, cfg.Session.MaxIdle, logger)
		}
	}

	return srv.ListenAndServe(ctx)
}

// persistSession writes a resume marker when the session ends so a
// reconnecting client can tell whether it missed batches.
func persistSession(ctx context.Context, snapshots store.Store, sess *remote.Session, ttl time.Duration, logger *slog.Logger) {
	select {
	case <-sess.Done():
	case <-ctx.Done():
		return
	}

	data, err := sess.Snapshot()
	if err != nil {
		logger.Warn("session snapshot failed", "session", sess.ID, "error", err)
		return
	}
	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := snapshots.Save(saveCtx, sess.ID, data, time.Now().Add(ttl)); err != nil {
		logger.Warn("session snapshot save failed", "session", sess.ID, "error", err)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// statusPage is the built-in root served until an application mounts
// its own: a live counter proving the reactive loop end to end.
var statusPage = el.Define("status", func(ctx el.Ctx, props el.Props, children []*el.Blueprint) el.Output {
	count := build.UseSignal(ctx, 0)
	return el.Output{Node: el.Div(
		el.Class("weft-status"),
		el.H1(el.Text("weft")),
		el.P(el.Tmpl("The host is up. Clicks received: {0}", count)),
		el.Button(
			el.OnClick(func(host.Event) { count.Update(func(n int) int { return n + 1 }) }),
			el.Text("ping"),
		),
	)}
})

func statusRoot() *blueprint.Blueprint {
	return statusPage.New()
}
