package progress

import "sync"

// SessionGuard makes restore-on-load a once-per-lecture affair within a
// single run of the program. The first load of a lecture may seek to the
// saved offset; returning to the same lecture later in the session starts
// from zero even if a newer offset has been saved meanwhile.
type SessionGuard struct {
	mu      sync.Mutex
	claimed map[string]bool
}

// NewSessionGuard returns an empty guard.
func NewSessionGuard() *SessionGuard {
	return &SessionGuard{claimed: make(map[string]bool)}
}

// Claim reports whether this is the first load of the lecture this session,
// and marks it claimed.
func (g *SessionGuard) Claim(lectureID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed[lectureID] {
		return false
	}
	g.claimed[lectureID] = true
	return true
}
