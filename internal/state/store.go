// Package state holds the client-side authentication state: whether a user
// is logged in and who they are. Consumers (route guards, navigation,
// session pages) share one *Store and observe changes through
// IsLoggedStream or Subscribe.
package state

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"

	"yogastudio/internal/models"
)

// ErrNotLogged is returned by Token when no user is logged in
var ErrNotLogged = errors.New("not logged in")

// Store is the single source of truth for the current principal.
// The zero value is not usable; create one with NewStore.
type Store struct {
	mu     sync.Mutex
	logged bool
	info   *models.SessionInformation
	subs   map[*subscriber]struct{}
}

// NewStore creates a logged-out store
func NewStore() *Store {
	return &Store{subs: make(map[*subscriber]struct{})}
}

// LogIn records info as the current principal and publishes true.
// A previous principal, if any, is replaced.
func (s *Store) LogIn(info models.SessionInformation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logged = true
	s.info = &info
	s.publish(true)
}

// LogOut clears the principal and publishes false. Calling it while
// already logged out publishes false again.
func (s *Store) LogOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logged = false
	s.info = nil
	s.publish(false)
}

// IsLogged returns the current login state
func (s *Store) IsLogged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logged
}

// SessionInformation returns a copy of the current principal.
// ok is false when logged out.
func (s *Store) SessionInformation() (info models.SessionInformation, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.info == nil {
		return models.SessionInformation{}, false
	}
	return *s.info, true
}

// Token implements oauth2.TokenSource so HTTP clients can attach the
// bearer token of whoever is logged in.
func (s *Store) Token() (*oauth2.Token, error) {
	info, ok := s.SessionInformation()
	if !ok || info.Token == "" {
		return nil, ErrNotLogged
	}
	return &oauth2.Token{AccessToken: info.Token, TokenType: info.Type}, nil
}

// IsLoggedStream returns a channel that first yields the current login state
// and then every subsequent LogIn/LogOut, in call order. Values are never
// dropped or coalesced. The channel is closed once ctx is done.
func (s *Store) IsLoggedStream(ctx context.Context) <-chan bool {
	out := make(chan bool)
	sub := s.attach()

	go func() {
		defer close(out)
		defer s.detach(sub)

		for {
			v, ok := sub.next(ctx)
			if !ok {
				return
			}
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// Subscribe calls fn with the current login state and then with every
// subsequent change, in call order, from a dedicated goroutine.
// The returned function stops delivery; it is safe to call from fn.
func (s *Store) Subscribe(fn func(logged bool)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := s.attach()

	go func() {
		defer s.detach(sub)

		for {
			v, ok := sub.next(ctx)
			if !ok {
				return
			}
			fn(v)
		}
	}()

	return cancel
}

// publish must be called with s.mu held
func (s *Store) publish(v bool) {
	for sub := range s.subs {
		sub.push(v)
	}
}

func (s *Store) attach() *subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscriber{wake: make(chan struct{}, 1)}
	sub.push(s.logged)
	s.subs[sub] = struct{}{}
	return sub
}

func (s *Store) detach(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, sub)
}

// subscriber is an unbounded FIFO of pending notifications, so a slow
// consumer never blocks LogIn/LogOut and never misses a value.
type subscriber struct {
	mu    sync.Mutex
	queue []bool
	wake  chan struct{}
}

func (sub *subscriber) push(v bool) {
	sub.mu.Lock()
	sub.queue = append(sub.queue, v)
	sub.mu.Unlock()

	select {
	case sub.wake <- struct{}{}:
	default:
	}
}

func (sub *subscriber) next(ctx context.Context) (bool, bool) {
	for {
		if ctx.Err() != nil {
			return false, false
		}

		sub.mu.Lock()
		if len(sub.queue) > 0 {
			v := sub.queue[0]
			sub.queue = sub.queue[1:]
			sub.mu.Unlock()
			return v, true
		}
		sub.mu.Unlock()

		select {
		case <-sub.wake:
		case <-ctx.Done():
			return false, false
		}
	}
}
