// Package session keeps one state.State per client session in a bounded LRU.
//
// A State is single-threaded by contract, so every access goes through
// Registry.With, which serializes calls per session. Sessions past capacity
// are evicted least-recently-used first; eviction closes the State so it
// stops listening for store changes.
package session

import (
	"errors"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/warri-apartment-hunt/internal/state"
)

// DefaultID is used when a client does not name its session.
const DefaultID = "default"

// MaxIDLen caps session ids taken from request headers.
const MaxIDLen = 64

// ErrClosed is returned for a session evicted while a caller held it.
var ErrClosed = errors.New("session closed")

var (
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Live client sessions held in memory.",
	})
	sessionsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_evicted_total",
		Help: "Sessions dropped from the registry.",
	})
)

func init() {
	prometheus.MustRegister(sessionsActive, sessionsEvicted)
}

// Session pairs a State with the lock that serializes access to it.
type Session struct {
	ID string

	mu     sync.Mutex
	st     *state.State
	closed bool
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.st.Close()
}

// Registry is a bounded, concurrency-safe set of sessions.
type Registry struct {
	mu       sync.Mutex
	cache    *lru.Cache[string, *Session]
	newState func() *state.State
}

// NewRegistry returns a registry holding at most capacity sessions. factory
// builds the State for a new session.
func NewRegistry(capacity int, factory func() *state.State) (*Registry, error) {
	cache, err := lru.NewWithEvict[string, *Session](capacity, func(id string, s *Session) {
		sessionsEvicted.Inc()
		sessionsActive.Dec()
		log.Debug().Str("session", id).Msg("session evicted")
		s.close()
	})
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, newState: factory}, nil
}

// NormalizeID trims id, substitutes DefaultID for blank ids, and truncates
// over-long ones.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultID
	}
	if len(id) > MaxIDLen {
		id = id[:MaxIDLen]
	}
	return id
}

func (r *Registry) get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.cache.Get(id); ok {
		return s
	}
	s := &Session{ID: id, st: r.newState()}
	r.cache.Add(id, s)
	sessionsActive.Inc()
	return s
}

// With runs fn against the State of session id, creating the session when
// needed. Calls for the same session never overlap.
func (r *Registry) With(id string, fn func(*state.State) error) error {
	id = NormalizeID(id)
	// a session can be evicted between lookup and lock; retry once on a fresh one
	for attempt := 0; attempt < 2; attempt++ {
		s := r.get(id)
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			continue
		}
		err := fn(s.st)
		s.mu.Unlock()
		return err
	}
	return ErrClosed
}

// Remove drops session id and closes its State.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(NormalizeID(id))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int { return r.cache.Len() }

// Close drops every session.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
}
