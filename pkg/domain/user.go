package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User validation errors.
var (
	// ErrMissingEmail is returned when a user has no email.
	ErrMissingEmail = errors.New("email is required")
	// ErrWeakPassword is returned when a password is shorter than 8 characters.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)

// UserRole controls what a back-office user may do.
type UserRole string

// User roles.
const (
	RoleAdmin  UserRole = "Admin"
	RoleMember UserRole = "Member"
)

// User is a back-office (vendor staff) account. Clients and freelancers do
// not have users; they reach their portals through opaque access ids.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Role         UserRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a staff user, hashing the password with bcrypt.
func NewUser(fullName, email, password string, role UserRole) (*User, error) {
	if email == "" {
		return nil, ErrMissingEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
