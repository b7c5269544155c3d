package app

import (
	"sync"

	"yogastudio/internal/state"
)

// NavBar mirrors the login stream so the shell can switch between the
// logged in and anonymous links.
type NavBar struct {
	store       *state.Store
	unsubscribe func()

	mu     sync.Mutex
	logged bool
}

// NewNavBar subscribes to the store. Call Close to stop following it.
func NewNavBar(store *state.Store) *NavBar {
	n := &NavBar{store: store, logged: store.IsLogged()}
	n.unsubscribe = store.Subscribe(func(logged bool) {
		n.mu.Lock()
		n.logged = logged
		n.mu.Unlock()
	})
	return n
}

// Logged reports the last value received from the stream
func (n *NavBar) Logged() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.logged
}

// Logout clears the store and routes home
func (n *NavBar) Logout() Route {
	n.store.LogOut()
	return RouteHome
}

// Close stops following the store
func (n *NavBar) Close() {
	n.unsubscribe()
}
