// Package latest decides which of several overlapping requests may publish
// its result: only the most recently issued one.
package latest

import "sync"

// Ticket identifies one issued request.
type Ticket struct {
	Key string
	seq uint64
}

// Tracker hands out tickets. The zero value is ready to use.
type Tracker struct {
	mu  sync.Mutex
	seq uint64
}

// Begin registers a new request for key, superseding every earlier ticket.
func (t *Tracker) Begin(key string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return Ticket{Key: key, seq: t.seq}
}

// Current reports whether tk is still the newest ticket.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.seq == t.seq
}
