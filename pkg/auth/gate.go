package auth

import (
	"context"
	"sync"
)

// Status is where the gate stands.
type Status int

const (
	Loading Status = iota
	SignedOut
	SignedIn
)

func (s Status) String() string {
	switch s {
	case SignedOut:
		return "signed out"
	case SignedIn:
		return "signed in"
	default:
		return "loading"
	}
}

// Gate blocks calendar features until a session is resolved and signed in.
type Gate struct {
	provider Provider

	mu        sync.RWMutex
	status    Status
	session   *Session
	listeners map[int]func(Status)
	nextID    int
}

// NewGate starts in Loading; call Resolve to look up the session.
func NewGate(p Provider) *Gate {
	return &Gate{provider: p, listeners: map[int]func(Status){}}
}

// Resolve asks the provider for the current session.
func (g *Gate) Resolve(ctx context.Context) error {
	s, err := g.provider.Session(ctx)
	if err != nil {
		g.set(SignedOut, nil)
		return err
	}
	if s == nil {
		g.set(SignedOut, nil)
		return nil
	}
	g.set(SignedIn, s)
	return nil
}

// Status returns the gate state.
func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Session returns the signed-in session, or nil.
func (g *Gate) Session() *Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

// Require returns nil only when signed in.
func (g *Gate) Require() error {
	switch g.Status() {
	case SignedIn:
		return nil
	case Loading:
		return ErrLoading
	default:
		return ErrSignedOut
	}
}

// SignUp registers a new account. The gate stays signed out.
func (g *Gate) SignUp(ctx context.Context, email, password string) (User, error) {
	return g.provider.SignUp(ctx, email, password)
}

// SignIn authenticates and opens the gate.
func (g *Gate) SignIn(ctx context.Context, email, password string) error {
	s, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	g.set(SignedIn, s)
	return nil
}

// SignOut closes the gate.
func (g *Gate) SignOut(ctx context.Context) error {
	if err := g.provider.SignOut(ctx); err != nil {
		return err
	}
	g.set(SignedOut, nil)
	return nil
}

// Subscribe is notified on every status change.
func (g *Gate) Subscribe(fn func(Status)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.listeners, id)
	}
}

func (g *Gate) set(status Status, s *Session) {
	g.mu.Lock()
	changed := g.status != status
	g.status = status
	g.session = s
	fns := make([]func(Status), 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range fns {
		fn(status)
	}
}
