package repository

import (
	"context"

	"github.com/brandturn/backend/internal/model"
)

// ContactRepository handles persistence for contact-form submissions.
type ContactRepository interface {
	// Save inserts the contact and fills in ID/CreatedAt.
	Save(ctx context.Context, c *model.Contact) error
	// List returns contacts ordered by created_at desc.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error)
	Count(ctx context.Context) (int, error)
	// CountBy groups contacts by the given column ("type", "region", "city")
	// and returns per-value counts, largest first.
	CountBy(ctx context.Context, column string) ([]*model.StatCount, error)
}
