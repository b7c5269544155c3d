// Package app holds the flows that sit between the screens and the API:
// login and registration submission, the session detail page, the account
// page, the admin session form, route guards and the navigation bar. Each
// flow reads identity from a state.Store and never caches server data
// beyond the last fetch.
package app

import (
	"context"

	"yogastudio/internal/client"
	"yogastudio/internal/models"
)

// Route is a navigation target returned by a flow. The empty route means
// stay on the current page.
type Route string

const (
	RouteStay     Route = ""
	RouteHome     Route = "/"
	RouteLogin    Route = "/login"
	RouteRegister Route = "/register"
	RouteSessions Route = "/sessions"
	RouteMe       Route = "/me"
)

// AuthAPI is the subset of the auth client used by AuthFlow
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.SessionInformation, error)
}

// SessionAPI is the subset of the session client used by the session pages
type SessionAPI interface {
	All(ctx context.Context) ([]models.Session, error)
	Detail(ctx context.Context, id int64) (*models.Session, error)
	Create(ctx context.Context, session models.Session) (*models.Session, error)
	Update(ctx context.Context, id int64, session models.Session) (*models.Session, error)
	Delete(ctx context.Context, id int64) error
	Participate(ctx context.Context, id, userID int64) error
	UnParticipate(ctx context.Context, id, userID int64) error
}

// TeacherAPI is the subset of the teacher client used by the session pages
type TeacherAPI interface {
	All(ctx context.Context) ([]models.Teacher, error)
	Detail(ctx context.Context, id int64) (*models.Teacher, error)
}

// UserAPI is the subset of the user client used by the account page
type UserAPI interface {
	Detail(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

var (
	_ AuthAPI    = (*client.AuthService)(nil)
	_ SessionAPI = (*client.SessionService)(nil)
	_ TeacherAPI = (*client.TeacherService)(nil)
	_ UserAPI    = (*client.UserService)(nil)
)
