package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"yogastudio/internal/models"
	"yogastudio/internal/repository"
	"yogastudio/internal/security"
	"yogastudio/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// WelcomeMailer sends the post-registration email
type WelcomeMailer interface {
	SendWelcomeEmail(ctx context.Context, toEmail, toName string) error
}

// AuthService handles registration, login and bearer token checks
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *security.TokenManager
	mailer   WelcomeMailer
}

// NewAuthService creates a new auth service. mailer may be nil.
func NewAuthService(userRepo *repository.UserRepository, tokens *security.TokenManager, mailer WelcomeMailer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// Register creates a non-admin account
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.TrimSpace(req.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("firstName", req.FirstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("lastName", req.LastName); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), false)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.FullName()); err != nil {
			log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login checks credentials and returns the session information with a
// freshly signed bearer token
func (s *AuthService) Login(email, password string) (*models.SessionInformation, error) {
	user, err := s.userRepo.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Admin)
	if err != nil {
		return nil, err
	}

	return &models.SessionInformation{
		Token:     token,
		Type:      "Bearer",
		ID:        user.ID,
		Username:  user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     user.Admin,
	}, nil
}

// Authenticate verifies a bearer token and that its user still exists.
// The admin flag is taken from the database, not the token.
func (s *AuthService) Authenticate(token string) (*security.Claims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}

	claims.Admin = user.Admin
	return claims, nil
}
