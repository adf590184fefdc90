package interpret

import "sync"

// Sender is the minimal handle the registry keeps per user: enough to
// push a server-initiated message to that user's live connection.
type Sender interface {
	Send(v any) error
}

// Registry tracks the one live connection per authenticated user.
// Registering a user who already has a binding supersedes it; the old
// handle becomes unreachable through the registry but is not closed
// here — that stays the owning connection's job.
type Registry struct {
	mu    sync.Mutex
	conns map[string]Sender
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Sender)}
}

// Register binds a user id to a connection handle, superseding any
// existing binding.
func (r *Registry) Register(userID string, h Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = h
}

// Unregister removes the binding for userID, but only if it still
// points at h. A superseded connection's teardown therefore cannot
// evict its successor.
func (r *Registry) Unregister(userID string, h Sender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[userID] == h {
		delete(r.conns, userID)
	}
}

// SendTo delivers a message to the user's live connection. Returns
// false when no binding exists or the send fails.
func (r *Registry) SendTo(userID string, message any) bool {
	r.mu.Lock()
	h, ok := r.conns[userID]
	r.mu.Unlock()

	if !ok {
		return false
	}
	return h.Send(message) == nil
}
