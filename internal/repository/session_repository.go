package repository

import (
	"context"

	"github.com/brandturn/backend/internal/model"
)

// SessionRepository handles persistence for issued-token sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	FindByID(ctx context.Context, id string) (*model.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
}
