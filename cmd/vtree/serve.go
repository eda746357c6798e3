package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/live"
	"github.com/vango-dev/vtree/pkg/modules"
)

func serveCmd() *cobra.Command {
	var (
		configDir string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve <tree-file>",
		Short: "Serve a live page that follows a tree file",
		Long: `Start a live preview server for a tree file.

Every browser connected to the page receives the operations of each
patch over a WebSocket as soon as the tree file changes. Settings come
from vtree.json in the config directory or any parent of it.

Examples:
  vtree serve page.yaml
  vtree serve page.yaml --addr :8080
  vtree serve page.yaml --config ./site`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errors.New("E300").WithDetail("serve needs a file it can watch, not stdin.")
			}
			cfg, err := config.LoadFromDir(configDir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "Directory to search for vtree.json")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from vtree.json)")

	return cmd
}

// preview is a live server following a set of tree files.
type preview struct {
	server  *live.Server
	watcher *live.Watcher
	tree    string
	logger  *slog.Logger
}

func newPreview(cfg *config.Config, tree string, logger *slog.Logger) (*preview, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	session, err := live.NewSession(live.SessionConfig{
		Modules: cfg.Modules,
		Env: modules.Env{
			Logger:           logger,
			Registry:         registry,
			MetricsNamespace: cfg.Metrics.Namespace,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, errors.New("E201").Wrap(err)
	}

	server := live.NewServer(live.ServerConfig{
		Session:     session,
		Title:       cfg.Title,
		MetricsPath: cfg.Metrics.Path,
		Gatherer:    registry,
		Logger:      logger,
	})

	files := []string{tree}
	files = append(files, cfg.WatchPaths()...)
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	tree = files[0]
	watcher := live.NewWatcher(live.WatcherConfig{Files: files, Logger: logger})

	p := &preview{server: server, watcher: watcher, tree: tree, logger: logger}
	watcher.OnChange(func(path string) { p.reload() })
	return p, nil
}

// reload decodes the tree file and patches every client. A broken file is
// reported to the clients and the last good tree stays up.
func (p *preview) reload() {
	v, err := loadTree(p.tree, nil)
	if err != nil {
		e := errors.FromError(err, "E101")
		p.logger.Error("tree reload failed", slog.String("code", e.Code), slog.Any("error", err))
		p.server.Fail(e.Code, err)
		return
	}
	batch := p.server.Update(v)
	p.logger.Info("tree reloaded",
		slog.Uint64("version", batch.Version),
		slog.Int("ops", len(batch.Ops)),
		slog.Int("clients", p.server.ClientCount()))
}

func runServe(ctx context.Context, cfg *config.Config, tree string, cmd *cobra.Command) error {
	logger := cfg.Logger(cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	p, err := newPreview(cfg, tree, logger)
	if err != nil {
		return err
	}
	defer p.server.Close()
	p.reload()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.New("E400").WithDetail("Listening on " + cfg.Addr + " failed.").Wrap(err)
	}

	printBanner(out)
	success(out, "Serving %s", tree)
	info(out, "Page:    http://%s/", ln.Addr())
	if cfg.HasModule("metrics") {
		info(out, "Metrics: http://%s%s", ln.Addr(), cfg.Metrics.Path)
	} else {
		warn(out, "metrics module disabled, %s exposes runtime metrics only", cfg.Metrics.Path)
	}
	fmt.Fprintln(out)

	srv := &http.Server{
		Handler:           p.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := p.watcher.Run(ctx); err != nil {
			errCh <- errors.New("E401").Wrap(err)
		}
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- errors.New("E400").Wrap(err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		srv.Close()
		return err
	}

	info(out, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
