package service

import (
	"errors"

	"yogastudio/internal/models"
	"yogastudio/internal/repository"
)

// ErrNotAccountOwner is returned when deleting someone else's account
var ErrNotAccountOwner = errors.New("only the account owner may delete it")

// UserService handles account lookups and self-deletion
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Get returns one user or ErrNotFound
func (s *UserService) Get(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Delete removes account id on behalf of the user identified by actorEmail
func (s *UserService) Delete(actorEmail string, id int64) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.Email != actorEmail {
		return ErrNotAccountOwner
	}
	return s.userRepo.DeleteUser(id)
}
