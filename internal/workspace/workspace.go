// Package workspace keeps the view state of each browser session in memory.
//
// A workspace holds at most one active view. Entering a different view
// discards the previous one, so navigating away loses unsaved state the same
// way leaving a page does. Events against one workspace run one at a time.
package workspace

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Workspace is the view state of one browser session.
type Workspace struct {
	mu   sync.Mutex
	kind string
	view any
}

// Enter runs fn against the view registered under kind. When another kind is
// active, or nothing is, open builds a fresh view that replaces it.
func Enter[V any](ws *Workspace, kind string, open func() (V, error), fn func(V)) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	view, ok := ws.view.(V)
	if !ok || ws.kind != kind {
		fresh, err := open()
		if err != nil {
			return err
		}
		ws.kind = kind
		ws.view = fresh
		view = fresh
	}
	fn(view)
	return nil
}

// Leave discards the active view.
func (ws *Workspace) Leave() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.kind = ""
	ws.view = nil
}

// Active returns the kind of the active view, or "".
func (ws *Workspace) Active() string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.kind
}

// Manager maps session ids to workspaces. Idle workspaces expire after ttl
// and the least recently used ones are evicted beyond size.
type Manager struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *Workspace]
}

// NewManager builds a Manager.
func NewManager(size int, ttl time.Duration, logger *slog.Logger) *Manager {
	if size <= 0 {
		size = 1024
	}
	onEvict := func(string, *Workspace) {
		if logger != nil {
			logger.Debug("workspace evicted")
		}
	}
	return &Manager{cache: expirable.NewLRU[string, *Workspace](size, onEvict, ttl)}
}

// Get returns the workspace for sessionID, creating it on first use. Every
// access renews its expiry.
func (m *Manager) Get(sessionID string) *Workspace {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.cache.Get(sessionID)
	if !ok {
		ws = &Workspace{}
	}
	m.cache.Add(sessionID, ws)
	return ws
}

// Peek returns the workspace for sessionID without creating or renewing it.
func (m *Manager) Peek(sessionID string) (*Workspace, bool) {
	return m.cache.Peek(sessionID)
}

// Discard drops the workspace for sessionID.
func (m *Manager) Discard(sessionID string) {
	m.cache.Remove(sessionID)
}

// Len returns the number of live workspaces.
func (m *Manager) Len() int {
	return m.cache.Len()
}
