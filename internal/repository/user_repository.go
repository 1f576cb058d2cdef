package repository

import (
	"context"

	"github.com/brandturn/backend/internal/model"
)

// UserRepository handles persistence for users.
type UserRepository interface {
	Ping(ctx context.Context) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	// Create inserts the user and fills in ID/CreatedAt/UpdatedAt.
	// Returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, user *model.User) error
	// LinkGoogleID sets google_id on an existing account (account linking).
	LinkGoogleID(ctx context.Context, userID, googleID string) error
	// SetAdmin flips the admin flag. Returns ErrNotFound for unknown users.
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
}
