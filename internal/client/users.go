package client

import (
	"context"
	"net/http"

	"yogastudio/internal/models"
)

// UserService wraps /api/user
type UserService struct {
	client *Client
}

// Detail fetches a user account
func (s *UserService) Detail(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.client.do(ctx, http.MethodGet, "api/user/"+itoa(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, "api/user/"+itoa(id), nil, nil)
}
