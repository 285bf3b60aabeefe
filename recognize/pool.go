package recognize

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of live ONNX sessions for one model. The first
// session is opened by NewPool so a bad model fails early; further sessions
// are opened on demand, up to the pool size, and kept idle for reuse.
type Pool struct {
	cfg  SessionConfig
	size int
	sem  *semaphore.Weighted

	mu     sync.Mutex
	idle   []*Session
	closed bool
}

// NewPool creates a pool of at most size sessions (minimum 1).
func NewPool(cfg SessionConfig, size int) (*Pool, error) {
	size = max(size, 1)

	first, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &Pool{
		cfg:  cfg,
		size: size,
		sem:  semaphore.NewWeighted(int64(size)),
		idle: []*Session{first},
	}, nil
}

// Acquire returns an idle session or opens a new one, blocking while all
// size sessions are in use. It returns ErrPoolClosed after Close.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.sem.Release(1)
		return nil, ErrPoolClosed
	}

	if n := len(p.idle); n > 0 {
		s := p.idle[n-1]
		p.idle = p.idle[:n-1]
		return s, nil
	}

	s, err := NewSession(p.cfg)
	if err != nil {
		p.sem.Release(1)
		return nil, fmt.Errorf("opening pooled session: %w", err)
	}
	return s, nil
}

// Release hands a session obtained from Acquire back to the pool.
// Sessions released after Close are closed instead.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		_ = s.Close()
	} else {
		p.idle = append(p.idle, s)
	}
	p.mu.Unlock()

	p.sem.Release(1)
}

// Close closes the idle sessions. Sessions still in use are closed when
// they are released.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for _, s := range p.idle {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.idle = nil

	return errors.Join(errs...)
}

// Size returns the maximum number of sessions.
func (p *Pool) Size() int {
	return p.size
}

// Idle returns the number of open sessions waiting in the pool.
func (p *Pool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}
