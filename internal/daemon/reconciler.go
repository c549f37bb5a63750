package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/stackwm/internal/platform"
)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically feeds the window list of one display into a Host.
type Reconciler struct {
	interval  time.Duration
	host      *Host
	backend   platform.Backend
	logger    *slog.Logger
	displayID int
	reset     chan time.Duration
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, host *Host, backend platform.Backend) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Reconciler{
		interval:  interval,
		host:      host,
		backend:   backend,
		logger:    logger,
		displayID: -1,
		reset:     make(chan time.Duration, 1),
	}
}

// SetInterval changes the interval of a running loop.
func (r *Reconciler) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-r.reset:
	default:
	}
	r.reset <- d
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case d := <-r.reset:
			if d != r.interval {
				r.interval = d
				ticker.Reset(d)
				r.logger.Info("reconciler interval changed", "interval", d)
			}
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}

func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	snap, err := r.snapshot()
	if err != nil {
		r.logger.Error("reconciler: failed to read window state", "error", err)
		return
	}

	res := r.host.Sync(snap)
	for _, w := range res.Added {
		r.logger.Info("window managed", "window", w)
	}
	for _, w := range res.Removed {
		r.logger.Info("window gone", "window", w)
	}
	if res.Resized {
		r.logger.Info("screen resized", "display", snap.Display.Name,
			"width", snap.Display.Usable.Width, "height", snap.Display.Usable.Height)
	}
	if res.Focused != nil {
		r.logger.Debug("focus followed window manager", "window", *res.Focused)
	}
}

// snapshot reads the display the host is pinned to. The first pass pins the
// active display; a display that disappears is replaced by the active one.
func (r *Reconciler) snapshot() (Snapshot, error) {
	display, err := r.display()
	if err != nil {
		return Snapshot{}, err
	}

	windows, err := r.backend.ListWindowsOnDisplay(display.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list windows on %s: %w", display.Name, err)
	}

	snap := Snapshot{Display: display, Windows: windows}
	if active, err := r.backend.ActiveWindow(); err == nil {
		snap.Active = active
	}
	return snap, nil
}

func (r *Reconciler) display() (platform.Display, error) {
	if r.displayID >= 0 {
		displays, err := r.backend.Displays()
		if err != nil {
			return platform.Display{}, err
		}
		for _, d := range displays {
			if d.ID == r.displayID {
				return d, nil
			}
		}
		r.logger.Warn("pinned display disappeared", "display", r.displayID)
	}

	d, err := r.backend.ActiveDisplay()
	if err != nil {
		return platform.Display{}, err
	}
	r.displayID = d.ID
	return d, nil
}
