// Package session owns the lifecycle of one anonymous visit session and
// its periodic heartbeat. All three signals (start, heartbeat, end) are
// telemetry: failures are logged and swallowed, never surfaced.
package session

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"vitrine/internal/domain"
	applog "vitrine/internal/log"
)

// DefaultInterval is the heartbeat cadence.
const DefaultInterval = 10 * time.Second

const signalTimeout = 5 * time.Second

// Notifier is the slice of the backend client the tracker needs.
type Notifier interface {
	StartSession(ctx context.Context, s domain.VisitSession) error
	Heartbeat(ctx context.Context, sessionID, pageURL string) error
	EndSession(ctx context.Context, sessionID string) error
}

// NewID builds a visit-session id from a millisecond time component plus a
// random fragment, enough to avoid same-millisecond collisions.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 36) + "-" + uuid.NewString()[:8]
}

// Tracker drives one visit session. Start it once; Stop cancels the
// heartbeat before the end signal is dispatched, so a heartbeat can never
// fire after end.
type Tracker struct {
	api      Notifier
	sess     domain.VisitSession
	interval time.Duration

	mu      sync.Mutex
	pageURL string

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
}

func NewTracker(api Notifier, pageURL, userAgent string) *Tracker {
	return NewTrackerWithInterval(api, pageURL, userAgent, DefaultInterval)
}

// NewTrackerWithInterval exists for tests that need a short cadence.
func NewTrackerWithInterval(api Notifier, pageURL, userAgent string, interval time.Duration) *Tracker {
	return &Tracker{
		api: api,
		sess: domain.VisitSession{
			ID:        NewID(time.Now()),
			PageURL:   pageURL,
			UserAgent: userAgent,
		},
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// ID returns the generated visit-session identifier.
func (t *Tracker) ID() string { return t.sess.ID }

// SetPage updates the page path reported by subsequent heartbeats.
func (t *Tracker) SetPage(pageURL string) {
	t.mu.Lock()
	t.pageURL = pageURL
	t.mu.Unlock()
}

func (t *Tracker) page() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pageURL != "" {
		return t.pageURL
	}
	return t.sess.PageURL
}

// Start sends the start signal and begins the heartbeat loop. The start
// signal is dispatched before the first heartbeat can fire. Idempotent.
func (t *Tracker) Start() {
	t.startOnce.Do(func() {
		t.started = true
		t.send("session.start", func(ctx context.Context) error {
			return t.api.StartSession(ctx, t.sess)
		})
		go t.loop()
	})
}

func (t *Tracker) loop() {
	defer close(t.done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.send("session.heartbeat", func(ctx context.Context) error {
				return t.api.Heartbeat(ctx, t.sess.ID, t.page())
			})
		}
	}
}

// Stop cancels the heartbeat, waits for the loop to exit, then sends the
// end signal. Safe to call more than once and on every teardown path.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		if !t.started {
			return
		}
		close(t.stop)
		<-t.done
		t.send("session.end", func(ctx context.Context) error {
			return t.api.EndSession(ctx, t.sess.ID)
		})
	})
}

// send runs one fire-and-forget signal with its own timeout; errors are
// logged and dropped. Losing a heartbeat is acceptable data loss.
func (t *Tracker) send(action string, f func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), signalTimeout)
	defer cancel()
	if err := f(ctx); err != nil {
		applog.Warn(action+".fail", err, map[string]any{"session_id": t.sess.ID})
	}
}
