// Package server wires repositories, services and handlers into the HTTP API.
package server

import (
	"net/http"

	"yogastudio/internal/database"
	"yogastudio/internal/events"
	"yogastudio/internal/handlers"
	"yogastudio/internal/repository"
	"yogastudio/internal/security"
	"yogastudio/internal/service"
)

// Options are the collaborators that vary between production and tests.
// Mailer, Publisher, Limiter and Startup may be nil.
type Options struct {
	Tokens    *security.TokenManager
	Mailer    service.WelcomeMailer
	Publisher events.EventPublisher
	Limiter   *security.RateLimiter
	Startup   *handlers.StartupStatus
}

// Server is the assembled API plus the services main needs directly
type Server struct {
	API  *handlers.API
	Seed *service.SeedService
}

// New builds every repository, service and handler on top of db
func New(db *database.DB, opts Options) *Server {
	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	authService := service.NewAuthService(userRepo, opts.Tokens, opts.Mailer)
	sessionService := service.NewSessionService(sessionRepo, userRepo, teacherRepo, opts.Publisher)
	teacherService := service.NewTeacherService(teacherRepo)
	userService := service.NewUserService(userRepo)

	return &Server{
		API: &handlers.API{
			Middleware: handlers.NewMiddleware(authService, opts.Limiter),
			Auth:       handlers.NewAuthHandler(authService),
			Sessions:   handlers.NewSessionHandler(sessionService),
			Teachers:   handlers.NewTeacherHandler(teacherService),
			Users:      handlers.NewUserHandler(userService),
			Startup:    opts.Startup,
		},
		Seed: service.NewSeedService(userRepo, teacherRepo),
	}
}

// Handler returns the routed, instrumented HTTP handler
func (s *Server) Handler() http.Handler {
	return s.API.Routes()
}
