package service

import (
	"context"
	"fmt"

	"github.com/vantagefin/vantage/internal/auth"
	"github.com/vantagefin/vantage/internal/models"
	"github.com/vantagefin/vantage/internal/storage"
)

type UserService struct {
	users storage.UserStore
}

func NewUserService(users storage.UserStore) *UserService {
	return &UserService{users: users}
}

// Signup creates the user and returns it; token issuance stays with the
// handler. The existence check and the insert are not transactional, so a
// concurrent signup race falls through to the unique index on email.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, ValidationError("name is required")
	}
	if req.Email == "" {
		return nil, ValidationError("email is required")
	}
	if req.Password == "" {
		return nil, ValidationError("password is required")
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, ValidationError("email is required")
	}
	if req.Password == "" {
		return nil, ValidationError("password is required")
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownEmail
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// UpdateProfile patches name/email/password; a new password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.User, error) {
	var passwordHash string
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = hash
	}

	user, err := s.users.UpdateUser(ctx, userID, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
