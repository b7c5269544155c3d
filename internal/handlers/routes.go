package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// API bundles the handlers behind the REST surface
type API struct {
	Middleware *Middleware
	Auth       *AuthHandler
	Sessions   *SessionHandler
	Teachers   *TeacherHandler
	Users      *UserHandler
	Startup    *StartupStatus
}

// Routes registers every endpoint and wraps the mux with metrics and
// request logging
func (a *API) Routes() http.Handler {
	mw := a.Middleware
	mux := http.NewServeMux()

	mux.Handle("GET /metrics", promhttp.Handler())
	if a.Startup != nil {
		mux.HandleFunc("GET /api/health", a.Startup.Health)
	}

	// Auth routes
	mux.HandleFunc("POST /api/auth/login", mw.RateLimit(a.Auth.Login))
	mux.HandleFunc("POST /api/auth/register", mw.RateLimit(a.Auth.Register))

	// Session routes
	mux.HandleFunc("GET /api/session", mw.RequireAuth(a.Sessions.List))
	mux.HandleFunc("GET /api/session/{id}", mw.RequireAuth(a.Sessions.Get))
	mux.HandleFunc("POST /api/session", mw.RequireAdmin(a.Sessions.Create))
	mux.HandleFunc("PUT /api/session/{id}", mw.RequireAdmin(a.Sessions.Update))
	mux.HandleFunc("DELETE /api/session/{id}", mw.RequireAdmin(a.Sessions.Delete))
	mux.HandleFunc("POST /api/session/{id}/participate/{userId}", mw.RequireAuth(a.Sessions.Participate))
	mux.HandleFunc("DELETE /api/session/{id}/participate/{userId}", mw.RequireAuth(a.Sessions.NoLongerParticipate))

	// Teacher routes
	mux.HandleFunc("GET /api/teacher", mw.RequireAuth(a.Teachers.List))
	mux.HandleFunc("GET /api/teacher/{id}", mw.RequireAuth(a.Teachers.Get))

	// User routes
	mux.HandleFunc("GET /api/user/{id}", mw.RequireAuth(a.Users.Get))
	mux.HandleFunc("DELETE /api/user/{id}", mw.RequireAuth(a.Users.Delete))

	return Logging(Metrics(mux))
}
