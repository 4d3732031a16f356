package siwe

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AttemptTracker counts login attempts per address in a fixed window and
// tracks issued nonces. State is process-wide and deliberately
// non-persistent: it exists for abuse mitigation within a process lifetime
// and is lost on restart. The clock is injected so tests can drive the
// window deterministically.
type AttemptTracker struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	nonceTTL    time.Duration
	now         func() time.Time
	attempts    map[string]*attemptRecord
	nonces      map[string]nonceRecord
}

type attemptRecord struct {
	count       int
	windowStart time.Time
}

type nonceRecord struct {
	nonce     string
	expiresAt time.Time
}

// NewAttemptTracker creates a tracker allowing maxAttempts per address per
// window. A nil clock defaults to time.Now.
func NewAttemptTracker(maxAttempts int, window, nonceTTL time.Duration, now func() time.Time) *AttemptTracker {
	if now == nil {
		now = time.Now
	}
	return &AttemptTracker{
		maxAttempts: maxAttempts,
		window:      window,
		nonceTTL:    nonceTTL,
		now:         now,
		attempts:    make(map[string]*attemptRecord),
		nonces:      make(map[string]nonceRecord),
	}
}

// Allow records an attempt for the address and reports whether it is within
// the budget. The window is fixed: it starts at the first attempt and resets
// once it has elapsed.
func (t *AttemptTracker) Allow(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	rec, ok := t.attempts[address]
	if !ok || now.Sub(rec.windowStart) >= t.window {
		rec = &attemptRecord{windowStart: now}
		t.attempts[address] = rec
	}

	rec.count++
	return rec.count <= t.maxAttempts
}

// IssueNonce creates a single-use nonce for the address, replacing any
// outstanding one.
func (t *AttemptTracker) IssueNonce(address string) string {
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")

	t.mu.Lock()
	defer t.mu.Unlock()
	t.nonces[address] = nonceRecord{
		nonce:     nonce,
		expiresAt: t.now().Add(t.nonceTTL),
	}
	return nonce
}

// CheckNonce validates a presented nonce against the one issued to the
// address, consuming it on a match. Addresses with no outstanding nonce pass:
// the client may have generated its own. An outstanding nonce that does not
// match or has expired fails.
func (t *AttemptTracker) CheckNonce(address, nonce string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.nonces[address]
	if !ok {
		return true
	}
	if t.now().After(rec.expiresAt) {
		delete(t.nonces, address)
		return false
	}
	if rec.nonce == nonce {
		delete(t.nonces, address)
		return true
	}
	return false
}

// Reset clears all attempt counters and outstanding nonces.
func (t *AttemptTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts = make(map[string]*attemptRecord)
	t.nonces = make(map[string]nonceRecord)
}
