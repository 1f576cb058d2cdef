package repository

import (
	"context"

	"github.com/brandturn/backend/internal/model"
)

// NewsletterRepository handles persistence for newsletter subscribers.
type NewsletterRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
	// Create inserts a new active subscriber. Returns ErrDuplicate when the
	// email already has a row (active or not).
	Create(ctx context.Context, sub *model.NewsletterSubscriber) error
	// ListActive returns active subscribers, newest first.
	ListActive(ctx context.Context) ([]*model.NewsletterSubscriber, error)
	// SetActive flips the subscription flag. Returns ErrNotFound when the
	// email has no row.
	SetActive(ctx context.Context, email string, active bool) error
}
