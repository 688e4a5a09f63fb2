// Package session owns the in-process cache of live chat contexts. Each
// context carries the consultant's system instruction plus the turn history
// used to prime the generation backend for one conversation. Contexts are
// not durable; the chat record store is the source of truth on restart.
package session

import (
	"sync"
	"time"

	"github.com/useadvisor/advisor/plugin/ai"
)

const (
	// DefaultMaxIdle is how long a session may sit untouched before the
	// janitor drops its live context.
	DefaultMaxIdle = 30 * time.Minute

	// DefaultSweepInterval is how often the janitor scans for idle sessions.
	DefaultSweepInterval = 5 * time.Minute
)

// Context is the live chat context bound to one session.
type Context struct {
	ConsultantID string
	Instruction  string
	History      []ai.Message // prior turns in stored order, no system message
}

// Messages assembles the full priming sequence for a generation call.
func (c *Context) Messages(prompt string) []ai.Message {
	return ai.FormatMessages(c.Instruction, prompt, c.History)
}

// AppendExchange records one completed user/model exchange.
func (c *Context) AppendExchange(prompt, reply string) {
	c.History = append(c.History, ai.UserMessage(prompt), ai.AssistantMessage(reply))
}

type entry struct {
	mu        sync.Mutex
	live      *Context
	updatedAt time.Time
	evicted   bool
}

// Manager maps session ids to live contexts, serializing all access per
// session: Acquire holds the session's lock until Release, so two requests
// for the same session can never interleave their cache check-then-set or
// their read-modify-write against the durable store. Sessions idle longer
// than maxIdle are evicted by a background janitor.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry

	maxIdle time.Duration
	done    chan struct{}
	closed  sync.Once
}

// NewManager creates a manager and starts its eviction janitor.
func NewManager(maxIdle, sweepInterval time.Duration) *Manager {
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdle
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	m := &Manager{
		entries: make(map[string]*entry),
		maxIdle: maxIdle,
		done:    make(chan struct{}),
	}
	go m.janitor(sweepInterval)
	return m
}

// Acquire locks the session and returns a handle to its slot. The caller
// must call Release when the request is finished with the session.
func (m *Manager) Acquire(sessionID string) *Handle {
	for {
		m.mu.Lock()
		e, ok := m.entries[sessionID]
		if !ok {
			e = &entry{updatedAt: time.Now()}
			m.entries[sessionID] = e
		}
		m.mu.Unlock()

		e.mu.Lock()
		if e.evicted {
			// Lost a race with the janitor; the map no longer holds this
			// entry, so start over with a fresh slot.
			e.mu.Unlock()
			continue
		}
		return &Handle{id: sessionID, e: e}
	}
}

// Len reports the number of cached sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close stops the janitor. Cached contexts are simply abandoned; nothing is
// persisted here.
func (m *Manager) Close() {
	m.closed.Do(func() {
		close(m.done)
	})
}

func (m *Manager) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

// evictIdle drops entries untouched for longer than maxIdle. Entries whose
// lock is held by an in-flight request are skipped and picked up next sweep.
func (m *Manager) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.updatedAt) > m.maxIdle {
			e.evicted = true
			delete(m.entries, id)
		}
		e.mu.Unlock()
	}
}

// Handle is an exclusive view of one session's slot.
type Handle struct {
	id string
	e  *entry
}

// GetOrCreate returns the cached live context when it is still bound to the
// requested consultant. Otherwise it rebuilds: prior is invoked to load the
// persisted history, a fresh context replaces whatever was cached, and any
// stale context from a previously bound consultant is discarded.
func (h *Handle) GetOrCreate(consultantID, instruction string, prior func() ([]ai.Message, error)) (*Context, error) {
	if h.e.live != nil && h.e.live.ConsultantID == consultantID {
		return h.e.live, nil
	}
	history, err := prior()
	if err != nil {
		return nil, err
	}
	h.e.live = &Context{
		ConsultantID: consultantID,
		Instruction:  instruction,
		History:      history,
	}
	return h.e.live, nil
}

// Invalidate drops the live context but keeps the session slot locked.
func (h *Handle) Invalidate() {
	h.e.live = nil
}

// Release touches the session and unlocks it.
func (h *Handle) Release() {
	h.e.updatedAt = time.Now()
	h.e.mu.Unlock()
}
