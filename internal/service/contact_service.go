package service

import (
	"context"

	"github.com/brandturn/backend/internal/model"
)

// ContactService defines the business logic for contact-form submissions.
type ContactService interface {
	// Submit stores a new contact. Missing city/region default to "Unknown"
	// and a missing type is classified from subject + message.
	// msg.ID and CreatedAt are populated by the implementation.
	Submit(ctx context.Context, c *model.Contact) error

	// List returns contacts, newest first.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)

	// Stats returns the dashboard aggregation counts.
	Stats(ctx context.Context) (*model.ContactStats, error)
}
