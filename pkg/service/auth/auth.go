// Package auth implements staff login and JWT handling for the back office.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lumenworks/studiobooks/pkg/config"
	"github.com/lumenworks/studiobooks/pkg/domain"
	"github.com/lumenworks/studiobooks/pkg/repository"
)

// ErrInvalidCredentials is returned for a wrong email/password pair. The
// same error covers both cases so login failures do not leak which one was
// wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates back-office users and issues JWTs.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates the auth service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies credentials and returns a signed token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		u, err := users.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if !u.CheckPassword(password) {
			return ErrInvalidCredentials
		}
		user = u
		return nil
	})
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return "", nil, err
	}

	token, err = s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.logger.Info("login successful", "user_id", user.ID)
	return token, user, nil
}

// Register creates a staff user. Duplicate emails are rejected by the store.
func (s *Service) Register(ctx context.Context, fullName, email, password string, role domain.UserRole) (user *domain.User, err error) {
	user, err = domain.NewUser(fullName, email, password, role)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.Users()
		if err != nil {
			return err
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CurrentUserID extracts the authenticated user id from a parsed token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return id, nil
}

func (s *Service) generateToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.Expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}
