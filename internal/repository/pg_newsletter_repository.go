package repository

import (
	"context"

	"github.com/brandturn/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgNewsletterRepository struct {
	pool *pgxpool.Pool
}

// NewPgNewsletterRepository returns a PostgreSQL-backed NewsletterRepository.
func NewPgNewsletterRepository(pool *pgxpool.Pool) NewsletterRepository {
	return &pgNewsletterRepository{pool: pool}
}

const subscriberSelectCols = `id, email, is_active, subscribed_at, unsubscribed_at`

func scanSubscriber(scan func(...any) error) (*model.NewsletterSubscriber, error) {
	var s model.NewsletterSubscriber
	if err := scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt, &s.UnsubscribedAt); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *pgNewsletterRepository) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+subscriberSelectCols+` FROM newsletter_subscribers WHERE email = $1`, email)
	return scanSubscriber(row.Scan)
}

func (r *pgNewsletterRepository) Create(ctx context.Context, sub *model.NewsletterSubscriber) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO newsletter_subscribers (email) VALUES ($1)
		 RETURNING id, is_active, subscribed_at`,
		sub.Email,
	).Scan(&sub.ID, &sub.IsActive, &sub.SubscribedAt)
	return mapError(err)
}

func (r *pgNewsletterRepository) ListActive(ctx context.Context) ([]*model.NewsletterSubscriber, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+subscriberSelectCols+` FROM newsletter_subscribers
		 WHERE is_active ORDER BY subscribed_at DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []*model.NewsletterSubscriber
	for rows.Next() {
		s, err := scanSubscriber(rows.Scan)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *pgNewsletterRepository) SetActive(ctx context.Context, email string, active bool) error {
	// unsubscribed_at は解除時のみ刻む。再購読でクリアされる
	tag, err := r.pool.Exec(ctx,
		`UPDATE newsletter_subscribers
		 SET is_active = $1,
		     unsubscribed_at = CASE WHEN $1 THEN NULL ELSE NOW() END
		 WHERE email = $2`,
		active, email)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
