package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/stackwm/internal/config"
	"github.com/1broseidon/stackwm/internal/daemon"
	"github.com/1broseidon/stackwm/internal/hotkeys"
	"github.com/1broseidon/stackwm/internal/ipc"
	"github.com/1broseidon/stackwm/internal/metrics"
	"github.com/1broseidon/stackwm/internal/platform"
)

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "Usage: stackwm daemon [--headless]", "",
		"Run the window manager daemon in the foreground.")
	headless := fs.Bool("headless", false, "Do not connect to a display; layouts are only computed")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	level := new(slog.LevelVar)
	level.Set(cfg.SlogLevel())
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var backend platform.Backend
	var x11Backend *platform.LinuxBackend
	if !*headless {
		if cfg.XAuthority != "" {
			os.Setenv("XAUTHORITY", cfg.XAuthority)
		}
		b, err := platform.Dial(cfg.Display)
		if err != nil {
			logger.Warn("no display, running headless", "error", err)
		} else {
			x11Backend = b
			backend = b
			defer b.Disconnect()
		}
	}

	m := metrics.New()
	host := daemon.NewHost(daemon.HostConfig{
		Config:  cfg,
		Backend: backend,
		Metrics: m,
		Logger:  logger,
		Level:   level,
		Loader:  config.Load,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	ipcServer, err := ipc.NewServer(host)
	if err != nil {
		logger.Error("failed to create IPC server", "error", err)
		return 1
	}
	if err := ipcServer.Start(); err != nil {
		logger.Error("failed to start IPC server", "error", err)
		return 1
	}
	defer ipcServer.Stop()
	logger.Info("IPC listening", "socket", ipcServer.SocketPath())

	if backend != nil {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: cfg.ReconcileEvery(),
			Logger:   logger.With("component", "reconciler"),
		}, host, backend)
		reconciler.ReconcileNow()
		go reconciler.Run(ctx)
		host.OnReload(func(c *config.Config) {
			reconciler.SetInterval(c.ReconcileEvery())
		})

		handler, err := hotkeys.NewHandler(backend, host, logger.With("component", "hotkeys"))
		if err != nil {
			logger.Warn("hotkeys disabled", "error", err)
		} else {
			if err := handler.Bind(cfg.BoundHotkeys()); err != nil {
				logger.Warn("some hotkeys were not bound", "error", err)
			}
			host.OnReload(func(c *config.Config) {
				if err := handler.Rebind(c.BoundHotkeys()); err != nil {
					logger.Warn("some hotkeys were not bound", "error", err)
				}
			})
		}
	}

	if path, err := config.DefaultConfigPath(); err == nil {
		watcher, err := daemon.NewConfigWatcher(path, host.Reload, logger.With("component", "config"))
		if err != nil {
			logger.Warn("config hot reload disabled", "path", path, "error", err)
		} else {
			defer watcher.Stop()
			if err := watcher.Start(); err != nil {
				logger.Warn("config hot reload disabled", "path", path, "error", err)
			}
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range sigCh {
			if sig == syscall.SIGHUP {
				logger.Info("received SIGHUP, reloading config")
				if err := host.Reload(); err != nil {
					logger.Error("config reload failed", "error", err)
				}
				continue
			}
			logger.Info("shutting down", "signal", sig.String())
			cancel()
			if x11Backend != nil {
				x11Backend.Quit()
			}
			return
		}
	}()

	logger.Info("stackwm daemon started", "headless", backend == nil, "screen", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height))
	if x11Backend != nil {
		x11Backend.EventLoop()
	}
	<-done
	signal.Stop(sigCh)
	return 0
}
