package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/waysgoods/inventory/internal/models"
	"github.com/waysgoods/inventory/pkg/hash"
	"github.com/waysgoods/inventory/pkg/tokens"
)

// UserRepo is the credential-store access needed by AuthService.
type UserRepo interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

type AuthService struct {
	Users     UserRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

// Login verifies the credentials and issues a signed token. A missing user
// and a wrong password both come back as ErrInvalidCredentials so the caller
// cannot tell which field was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !hash.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := tokens.Sign(user.ID, user.Role, s.JWTSecret, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) CheckAuth(ctx context.Context, id uint) (*models.User, error) {
	return s.Users.UserByID(ctx, id)
}
