package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var (
	ErrUserExists   = exceptions.Validation("User already exists")
	ErrUserNotFound = exceptions.NotFound("User not found")
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (*model.User, error) {
	email = normalizeEmail(email)

	if _, err := r.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", normalizeEmail(email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
