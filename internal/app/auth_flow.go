package app

import (
	"context"
	"log"
	"sync"

	"yogastudio/internal/models"
	"yogastudio/internal/state"
)

// AuthFlow backs the login and register forms. Any failure (invalid form,
// bad credentials, server or network error) only raises the OnError flag;
// the store is mutated on a successful login alone.
type AuthFlow struct {
	auth  AuthAPI
	store *state.Store

	mu      sync.Mutex
	onError bool
}

// NewAuthFlow creates an auth flow
func NewAuthFlow(auth AuthAPI, store *state.Store) *AuthFlow {
	return &AuthFlow{auth: auth, store: store}
}

// OnError reports whether the last submission failed
func (f *AuthFlow) OnError() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.onError
}

func (f *AuthFlow) setError(v bool) {
	f.mu.Lock()
	f.onError = v
	f.mu.Unlock()
}

// SubmitLogin logs in and, on success, records the principal in the store
// and routes to the session list.
func (f *AuthFlow) SubmitLogin(ctx context.Context, req models.LoginRequest) (Route, error) {
	f.setError(false)

	info, err := f.auth.Login(ctx, req)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		f.setError(true)
		return RouteStay, err
	}

	f.store.LogIn(*info)
	return RouteSessions, nil
}

// SubmitRegister creates an account and routes to the login form
func (f *AuthFlow) SubmitRegister(ctx context.Context, req models.RegisterRequest) (Route, error) {
	f.setError(false)

	if err := f.auth.Register(ctx, req); err != nil {
		log.Printf("Registration failed for %s: %v", req.Email, err)
		f.setError(true)
		return RouteStay, err
	}

	return RouteLogin, nil
}

// Logout clears the store and routes home
func (f *AuthFlow) Logout() Route {
	f.store.LogOut()
	return RouteHome
}
