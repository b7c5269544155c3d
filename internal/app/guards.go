package app

import "yogastudio/internal/state"

// AuthGuard protects pages that need a logged in user
func AuthGuard(store *state.Store) (allowed bool, redirect Route) {
	if !store.IsLogged() {
		return false, RouteLogin
	}
	return true, RouteStay
}

// UnauthGuard protects the login and register pages from logged in users
func UnauthGuard(store *state.Store) (allowed bool, redirect Route) {
	if store.IsLogged() {
		return false, RouteSessions
	}
	return true, RouteStay
}
