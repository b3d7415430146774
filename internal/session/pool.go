package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"revealboard/internal/board"
	"revealboard/internal/config"
	"revealboard/internal/viewport"
)

// ErrUnknownSession is returned for IDs the pool does not hold
var ErrUnknownSession = errors.New("unknown session")

type pooled struct {
	mu sync.Mutex
	s  *Session
}

// Pool hosts many sessions over one immutable declaration. Every session
// owns its board, budget and viewport; calls on one session are serialized
// while different sessions run in parallel.
type Pool struct {
	cfg    config.Config
	decl   *board.Declaration
	newCam func() viewport.Camera
	opts   []Option

	mu       sync.RWMutex
	sessions map[string]*pooled
}

// NewPool creates an empty pool. newCam supplies each session's camera.
func NewPool(cfg config.Config, decl *board.Declaration, newCam func() viewport.Camera, opts ...Option) *Pool {
	return &Pool{
		cfg:      cfg,
		decl:     decl,
		newCam:   newCam,
		opts:     opts,
		sessions: make(map[string]*pooled),
	}
}

// Create builds a new session and returns its ID
func (p *Pool) Create() (string, error) {
	var cam viewport.Camera
	if p.newCam != nil {
		cam = p.newCam()
	}
	s, err := New(p.cfg, p.decl, cam, p.opts...)
	if err != nil {
		return "", err
	}
	s.ID = uuid.NewString()

	p.mu.Lock()
	p.sessions[s.ID] = &pooled{s: s}
	p.mu.Unlock()
	return s.ID, nil
}

// With runs fn with exclusive access to session id
func (p *Pool) With(id string, fn func(*Session) error) error {
	p.mu.RLock()
	e, ok := p.sessions[id]
	p.mu.RUnlock()
	if !ok {
		return ErrUnknownSession
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Remove drops session id. It reports whether the session existed.
func (p *Pool) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[id]; !ok {
		return false
	}
	delete(p.sessions, id)
	return true
}

// IDs returns the hosted session IDs, sorted
func (p *Pool) IDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.sessions))
	for id := range p.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of hosted sessions
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}
