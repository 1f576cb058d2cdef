package repository

import (
	"context"
	"fmt"

	"github.com/brandturn/backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgContactRepository は ContactRepository の PostgreSQL 実装
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository は PgContactRepository を生成する
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Save は問い合わせを保存する
func (r *PgContactRepository) Save(ctx context.Context, c *model.Contact) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, subject, message, city, region, type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		c.Name, c.Email, c.Subject, c.Message, c.City, c.Region, c.Type,
	).Scan(&c.ID, &c.CreatedAt)
	return mapError(err)
}

// List は問い合わせを新しい順で返す
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, subject, message, city, region, type, created_at
		 FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.City, &c.Region, &c.Type, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// Count は総件数を返す
func (r *PgContactRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n)
	return n, mapError(err)
}

// CountBy は指定カラムでグループ化した件数を返す
// column は "type", "region", "city" のいずれか
func (r *PgContactRepository) CountBy(ctx context.Context, column string) ([]*model.StatCount, error) {
	allowed := map[string]bool{"type": true, "region": true, "city": true}
	if !allowed[column] {
		return nil, fmt.Errorf("invalid stats column: %s", column)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+column+`, COUNT(*) FROM contacts GROUP BY `+column+` ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var stats []*model.StatCount
	for rows.Next() {
		var s model.StatCount
		if err := rows.Scan(&s.Key, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, &s)
	}
	return stats, rows.Err()
}
