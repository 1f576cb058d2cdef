package service

import (
	"context"
	"errors"

	"github.com/brandturn/backend/internal/model"
)

// ErrAlreadySubscribed is returned when the email is already actively subscribed.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// ErrNotSubscribed is returned when unsubscribing an email with no record.
var ErrNotSubscribed = errors.New("email not found")

// NewsletterService defines the business logic for newsletter subscriptions.
type NewsletterService interface {
	// Subscribe adds a new subscriber or reactivates a previously
	// unsubscribed one. Returns ErrAlreadySubscribed for active emails.
	Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error)

	// Subscribers returns active subscribers, newest first.
	Subscribers(ctx context.Context) ([]*model.NewsletterSubscriber, error)

	// Unsubscribe soft-deletes a subscription. Returns ErrNotSubscribed when
	// the email has no record; nothing is created in that case.
	Unsubscribe(ctx context.Context, email string) error
}
