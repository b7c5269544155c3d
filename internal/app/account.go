package app

import (
	"context"
	"fmt"

	"yogastudio/internal/models"
	"yogastudio/internal/state"
)

// Account is the "me" page of the logged in user
type Account struct {
	users UserAPI
	store *state.Store
}

// NewAccount creates the account page
func NewAccount(users UserAPI, store *state.Store) *Account {
	return &Account{users: users, store: store}
}

// Load fetches the logged in user
func (a *Account) Load(ctx context.Context) (*models.User, error) {
	info, ok := a.store.SessionInformation()
	if !ok {
		return nil, state.ErrNotLogged
	}

	user, err := a.users.Detail(ctx, info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", info.ID, err)
	}
	return user, nil
}

// Delete removes the account, logs out and routes home. The store is left
// alone when the server refuses.
func (a *Account) Delete(ctx context.Context) (Route, error) {
	info, ok := a.store.SessionInformation()
	if !ok {
		return RouteLogin, state.ErrNotLogged
	}

	if err := a.users.Delete(ctx, info.ID); err != nil {
		return RouteStay, fmt.Errorf("failed to delete user %d: %w", info.ID, err)
	}

	a.store.LogOut()
	return RouteHome, nil
}
