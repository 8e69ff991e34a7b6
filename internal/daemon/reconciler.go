package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/wlkit/internal/output"
)

// OutputLister returns the outputs currently present.
type OutputLister func() ([]output.Output, error)

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically compares the host's output layout with an output
// source and corrects drift, covering change notifications that were
// missed.
type Reconciler struct {
	interval    time.Duration
	host        *Host
	listOutputs OutputLister
	logger      *slog.Logger
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, host *Host, listOutputs OutputLister) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		interval:    interval,
		host:        host,
		listOutputs: listOutputs,
		logger:      logger,
	}
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
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// reconcile performs a single reconciliation pass. The source is queried
// on the calling goroutine; the layout is only touched on the loop.
func (r *Reconciler) reconcile() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	actual, err := r.listOutputs()
	if err != nil {
		r.logger.Error("reconciler: failed to list outputs", "error", err)
		return
	}

	err = r.host.loop.Post(func() {
		if SameOutputs(r.host.Outputs(), actual) {
			return
		}
		r.logger.Info("reconciler: output drift detected", "outputs", len(actual))
		r.host.SetOutputs(actual)
	})
	if err != nil {
		r.logger.Warn("reconciler: failed to post update", "error", err)
	}
}

// ReconcileNow triggers an immediate reconciliation pass.
func (r *Reconciler) ReconcileNow() {
	r.reconcile()
}

// SameOutputs reports whether a and b hold the same outputs, in any order.
func SameOutputs(a, b []output.Output) bool {
	if len(a) != len(b) {
		return false
	}
	byID := make(map[output.ID]output.Output, len(a))
	for _, o := range a {
		byID[o.ID] = o
	}
	for _, o := range b {
		if got, ok := byID[o.ID]; !ok || got != o {
			return false
		}
	}
	return true
}
