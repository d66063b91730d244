package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	repository "task-desk.com/task-desk/internal/repositories"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

type AuthService struct {
	users  *repository.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	log    logrus.FieldLogger
}

func NewAuthService(
	users *repository.UserRepository,
	hasher *PasswordHasher,
	tokens *TokenManager,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, exceptions.ErrNotFound) {
			return nil, exceptions.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, exceptions.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, exceptions.ErrNotFound) {
			return nil, exceptions.Auth("Not authorized, user no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return "", exceptions.Auth("Not authorized, token expired")
		}
		return "", exceptions.Auth("Not authorized, token failed")
	}
	return claims.UserID, nil
}

func (s *AuthService) issue(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token:    token,
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
