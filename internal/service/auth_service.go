package service

import (
	"context"
	"errors"

	"github.com/brandturn/backend/internal/model"
)

// GoogleUserInfo は検証済み Google ID トークンから取り出すユーザー情報
type GoogleUserInfo struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// ErrEmailTaken is returned by Register when the email already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by Login for unknown emails and wrong
// passwords alike; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService は認証に関するビジネスロジックのインターフェース
type AuthService interface {
	// Register creates an account with a bcrypt-hashed password.
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// Login verifies email + password. A matching adminKey promotes the
	// account to admin (audited; disabled when no key is configured).
	Login(ctx context.Context, email, password, adminKey string) (*model.User, error)
	// LoginWithGoogle links the Google subject to an existing account matched
	// by email, or creates a new one. The bool reports whether a user was created.
	LoginWithGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, bool, error)
}
