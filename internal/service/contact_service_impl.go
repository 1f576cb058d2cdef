package service

import (
	"context"
	"strings"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

const unknownLocation = "Unknown"

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

// ClassifyInquiry は件名と本文から問い合わせ種別を推定する。
// "business" を含めば Business、"support" を含めば Support、それ以外は General
func ClassifyInquiry(subject, message string) string {
	text := strings.ToLower(subject + " " + message)
	switch {
	case strings.Contains(text, "business"):
		return model.ContactTypeBusiness
	case strings.Contains(text, "support"):
		return model.ContactTypeSupport
	default:
		return model.ContactTypeGeneral
	}
}

// Submit stores a new contact, filling in defaults for city/region/type.
func (s *contactServiceImpl) Submit(ctx context.Context, c *model.Contact) error {
	if c.City == "" {
		c.City = unknownLocation
	}
	if c.Region == "" {
		c.Region = unknownLocation
	}
	if !model.ValidContactType(c.Type) {
		c.Type = ClassifyInquiry(c.Subject, c.Message)
	}
	return s.repo.Save(ctx, c)
}

// List returns contacts according to the given pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.Contact, error) {
	return s.repo.List(ctx, opts)
}

// Stats runs the four aggregation queries concurrently.
func (s *contactServiceImpl) Stats(ctx context.Context) (*model.ContactStats, error) {
	stats := &model.ContactStats{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(ctx)
		stats.TotalContacts = n
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountBy(ctx, "type")
		stats.TypeStats = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountBy(ctx, "region")
		stats.RegionStats = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountBy(ctx, "city")
		stats.CityStats = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Return [] not null for empty groups
	if stats.TypeStats == nil {
		stats.TypeStats = []*model.StatCount{}
	}
	if stats.RegionStats == nil {
		stats.RegionStats = []*model.StatCount{}
	}
	if stats.CityStats == nil {
		stats.CityStats = []*model.StatCount{}
	}
	return stats, nil
}
