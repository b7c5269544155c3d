package client

import (
	"context"
	"net/http"

	"yogastudio/internal/models"
	"yogastudio/internal/validation"
)

// AuthService wraps the registration and login endpoints
type AuthService struct {
	client *Client
}

// Register creates an account. The response body is ignored.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	return s.client.do(ctx, http.MethodPost, "api/auth/register", req, nil)
}

// Login authenticates and returns the principal to feed into the state store
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.SessionInformation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var info models.SessionInformation
	if err := s.client.do(ctx, http.MethodPost, "api/auth/login", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
