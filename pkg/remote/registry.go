package remote

import (
	"log/slog"
	"sync"
	"time"
)

// Registry tracks live sessions and evicts the ones whose clients went
// quiet. Eviction runs on a ticker owned by the registry.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	logger  *slog.Logger
	maxIdle time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRegistry creates a registry. maxIdle of zero disables eviction.
func NewRegistry(logger *slog.Logger, maxIdle time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		logger:   logger,
		maxIdle:  maxIdle,
		stop:     make(chan struct{}),
	}
}

// Add registers a session.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns the session with the given id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove unregisters a session without closing it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle closes and removes sessions idle beyond the registry's
// limit, returning how many were evicted.
func (r *Registry) EvictIdle() int {
	if r.maxIdle <= 0 {
		return 0
	}

	r.mu.Lock()
	var victims []*Session
	for id, s := range r.sessions {
		if s.Closed() || s.IdleFor() > r.maxIdle {
			victims = append(victims, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range victims {
		r.logger.Info("evicting idle session", "session", s.ID, "idle", s.IdleFor())
		s.Close()
	}
	return len(victims)
}

// Watch runs periodic eviction until Shutdown.
func (r *Registry) Watch(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.EvictIdle()
		case <-r.stop:
			return
		}
	}
}

// Shutdown stops the eviction watcher and closes every session.
func (r *Registry) Shutdown() {
	r.stopOnce.Do(func() { close(r.stop) })

	r.mu.Lock()
	victims := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		victims = append(victims, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range victims {
		s.Close()
	}
}
