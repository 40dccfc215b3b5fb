// Package auth gates admin-only operations behind a single time-boxed
// token held in device-local storage. The guard manages storage and
// expiry only; password verification is the backend's job.
package auth

import (
	"context"
	"strconv"
	"time"

	"vitrine/internal/kv"
)

// Window is the absolute validity window from issuance. No sliding
// refresh: activity does not extend it.
const Window = 24 * time.Hour

const (
	keyAuthenticated = "admin_authenticated"
	keyAuthTime      = "admin_auth_time"
)

// Verifier is the slice of the backend client the guard needs.
type Verifier interface {
	VerifyPassword(ctx context.Context, password string) error
}

// Guard owns the token lifecycle over an injected store and clock.
type Guard struct {
	store  kv.Store
	clock  kv.Clock
	verify Verifier
	window time.Duration
}

func NewGuard(store kv.Store, clock kv.Clock, verify Verifier) *Guard {
	return &Guard{store: store, clock: clock, verify: verify, window: Window}
}

// NewGuardWithWindow exists for tests that need a short window.
func NewGuardWithWindow(store kv.Store, clock kv.Clock, verify Verifier, window time.Duration) *Guard {
	return &Guard{store: store, clock: clock, verify: verify, window: window}
}

// Login verifies the password against the backend and, on success, stamps
// the issuance time. On any failure the state stays unauthenticated and
// nothing is written.
func (g *Guard) Login(ctx context.Context, password string) error {
	if err := g.verify.VerifyPassword(ctx, password); err != nil {
		return err
	}
	now := g.clock.Now().UnixMilli()
	if err := g.store.Set(keyAuthenticated, "true"); err != nil {
		return err
	}
	return g.store.Set(keyAuthTime, strconv.FormatInt(now, 10))
}

// CheckAuth reports whether a valid token is held. An expired or
// malformed token is evicted synchronously, so a subsequent read never
// observes stale-but-present storage. Called on every protected entry.
func (g *Guard) CheckAuth() bool {
	flag, ok := g.store.Get(keyAuthenticated)
	if !ok || flag != "true" {
		return false
	}
	raw, ok := g.store.Get(keyAuthTime)
	if !ok {
		g.evict()
		return false
	}
	issued, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Malformed timestamp counts as expired, never forever-valid.
		g.evict()
		return false
	}
	elapsed := g.clock.Now().UnixMilli() - issued
	if elapsed >= g.window.Milliseconds() {
		g.evict()
		return false
	}
	return true
}

// Logout unconditionally evicts the token.
func (g *Guard) Logout() {
	g.evict()
}

func (g *Guard) evict() {
	_ = g.store.Delete(keyAuthenticated)
	_ = g.store.Delete(keyAuthTime)
}
