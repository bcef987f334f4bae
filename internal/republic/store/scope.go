package store

import (
	"context"
	"errors"
	"sync"
)

var ErrScopeReleased = errors.New("store: request scope already released")

type scopeKey struct{}

type scope struct {
	mu       sync.Mutex
	st       Store
	conn     Conn
	released bool
}

// WithScope starts a request scope on ctx. The first Acquire inside it pins
// a connection from st and later calls reuse it. The returned release func
// closes that connection; it is safe to call more than once and a no-op if
// nothing was acquired.
func WithScope(ctx context.Context, st Store) (context.Context, func() error) {
	s := &scope{st: st}
	return context.WithValue(ctx, scopeKey{}, s), s.release
}

// Acquire returns the connection for the current request scope, opening it
// on first use. Outside a scope it returns fallback.
func Acquire(ctx context.Context, fallback Querier) (Querier, error) {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok {
		return fallback, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.released {
		return nil, ErrScopeReleased
	}
	if s.conn == nil {
		c, err := s.st.Conn(ctx)
		if err != nil {
			return nil, err
		}
		s.conn = c
	}
	return s.conn, nil
}

// Yield closes the connection pinned in the current scope, if any. The scope
// stays usable: the next Acquire pins a fresh connection. Call it before slow
// work that does not touch the database so other requests can use the pool.
func Yield(ctx context.Context) error {
	s, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *scope) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.released = true
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}
