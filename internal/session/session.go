// Package session gates signing operations behind a token lifecycle.
//
// The manager holds its state in an atomic pointer so Validate is a
// cheap, lock-free read that any concurrent context may call.
package session

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/lightningnetwork/lnd/clock"
)

// State is the lifecycle position of the session.
type State int

const (
	Anonymous State = iota
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "anonymous"
	}
}

// ErrSessionExpired is returned whenever no fresh authenticated session
// exists, whether it never existed, timed out, or was invalidated.
var ErrSessionExpired = errors.New("session expired")

// TimeSource supplies trusted server time and the session expiry
// configuration. Server time is preferred over the local clock so a
// skewed device neither expires sessions early nor keeps them alive.
type TimeSource interface {
	// ServerNow returns the trusted current time and whether it is
	// available right now.
	ServerNow() (time.Time, bool)

	// SessionExpiry returns the configured session lifetime.
	SessionExpiry() time.Duration
}

type snapshot struct {
	state    State
	token    string
	issuedAt time.Time
	expiry   time.Duration
}

// Manager tracks one session. Transitions are monotonic: Expired never
// becomes Authenticated without a fresh Authenticate call.
type Manager struct {
	clock clock.Clock
	src   TimeSource
	cur   atomic.Pointer[snapshot]
}

// NewManager builds a manager around the trusted time source. clk is
// the local fallback when server time is unavailable.
func NewManager(src TimeSource, clk clock.Clock) *Manager {
	if src == nil {
		panic("session: TimeSource is required")
	}
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	m := &Manager{clock: clk, src: src}
	m.cur.Store(&snapshot{state: Anonymous})
	return m
}

// Authenticate records the token with a fresh issuance instant and moves
// the session to Authenticated.
func (m *Manager) Authenticate(token string) {
	m.cur.Store(&snapshot{
		state:    Authenticated,
		token:    token,
		issuedAt: m.now(),
		expiry:   m.src.SessionExpiry(),
	})
}

// Validate returns nil for a fresh authenticated session and
// ErrSessionExpired otherwise. The elapsed-time check is inclusive:
// a session is expired the instant now-issued equals the expiry.
func (m *Manager) Validate() error {
	snap := m.cur.Load()
	if snap.state != Authenticated {
		return ErrSessionExpired
	}
	if m.now().Sub(snap.issuedAt) >= snap.expiry {
		m.expire(snap)
		return ErrSessionExpired
	}
	return nil
}

// RemainingTTL reports how long the current session stays valid.
// Zero means no valid session.
func (m *Manager) RemainingTTL() time.Duration {
	snap := m.cur.Load()
	if snap.state != Authenticated {
		return 0
	}
	remaining := snap.expiry - m.now().Sub(snap.issuedAt)
	if remaining <= 0 {
		m.expire(snap)
		return 0
	}
	return remaining
}

// Invalidate handles an external unauthorized signal: same transition
// and state clearing as a failed Validate.
func (m *Manager) Invalidate() {
	m.expire(m.cur.Load())
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	return m.cur.Load().state
}

// Token returns the current token, empty unless authenticated.
func (m *Manager) Token() string {
	snap := m.cur.Load()
	if snap.state != Authenticated {
		return ""
	}
	return snap.token
}

func (m *Manager) expire(old *snapshot) {
	// Token is cleared with the transition. A lost race means another
	// caller already moved the state; both outcomes are Expired.
	m.cur.CompareAndSwap(old, &snapshot{state: Expired})
}

func (m *Manager) now() time.Time {
	if t, ok := m.src.ServerNow(); ok {
		return t
	}
	return m.clock.Now()
}
