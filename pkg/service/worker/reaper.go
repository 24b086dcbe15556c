package worker

import (
	"context"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/session"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
)

const (
	// DefaultReapInterval is how often the reaper scans the session store
	DefaultReapInterval = time.Hour
	// DefaultIdleWindow is the inactivity window after which a live
	// session is evicted. Partially collected facts of an abandoned
	// session are lost from the live store; persisted turn history is
	// unaffected.
	DefaultIdleWindow = 6 * time.Hour
)

// SessionReaper evicts idle sessions from the live store on a fixed
// interval.
//
// Architecture assumptions:
// - Single server instance (all session state is process-local)
// - Eviction is destructive; nothing is flushed to persistence
type SessionReaper struct {
	store    *session.Store
	interval time.Duration
	window   time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Option is a functional option for SessionReaper configuration
type Option func(*SessionReaper)

// WithInterval overrides the scan interval
func WithInterval(d time.Duration) Option {
	return func(r *SessionReaper) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithIdleWindow overrides the inactivity window
func WithIdleWindow(d time.Duration) Option {
	return func(r *SessionReaper) {
		if d > 0 {
			r.window = d
		}
	}
}

// NewSessionReaper creates a reaper for the given store
func NewSessionReaper(store *session.Store, opts ...Option) *SessionReaper {
	r := &SessionReaper{
		store:    store,
		interval: DefaultReapInterval,
		window:   DefaultIdleWindow,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start begins the background eviction loop. It does not block.
func (r *SessionReaper) Start(ctx context.Context) {
	logging.Default().Info("session reaper starting",
		"interval", r.interval.String(),
		"idle_window", r.window.String(),
	)
	go r.run(ctx)
}

// Stop signals the reaper to stop and waits for completion
func (r *SessionReaper) Stop() {
	close(r.stopCh)
	<-r.doneCh
	logging.Default().Info("session reaper stopped")
}

func (r *SessionReaper) run(ctx context.Context) {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if evicted := r.store.EvictIdle(r.window); evicted > 0 {
				logging.Default().Info("evicted idle sessions",
					"count", evicted,
					"live", r.store.Len(),
				)
			}

		case <-r.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("session reaper context cancelled")
			return
		}
	}
}
