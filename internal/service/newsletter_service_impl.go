package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
)

// newsletterServiceImpl is the production implementation of NewsletterService.
type newsletterServiceImpl struct {
	repo repository.NewsletterRepository
}

// NewNewsletterService creates a NewsletterService backed by the given repository.
func NewNewsletterService(repo repository.NewsletterRepository) NewsletterService {
	return &newsletterServiceImpl{repo: repo}
}

// Subscribe は購読を登録する。解除済みメールは再アクティブ化する
func (s *newsletterServiceImpl) Subscribe(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		if existing.IsActive {
			return nil, ErrAlreadySubscribed
		}
		if err := s.repo.SetActive(ctx, email, true); err != nil {
			return nil, fmt.Errorf("reactivate subscriber: %w", err)
		}
		existing.IsActive = true
		existing.UnsubscribedAt = nil
		slog.Info("newsletter subscription reactivated", "subscriber_id", existing.ID)
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}

	sub := &model.NewsletterSubscriber{Email: email}
	if err := s.repo.Create(ctx, sub); err != nil {
		// 同時購読との競合は一意制約で検出される
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("create subscriber: %w", err)
	}
	return sub, nil
}

// Subscribers returns the active subscriber list.
func (s *newsletterServiceImpl) Subscribers(ctx context.Context) ([]*model.NewsletterSubscriber, error) {
	return s.repo.ListActive(ctx)
}

// Unsubscribe はソフトデリートする。レコードがなければ ErrNotSubscribed
func (s *newsletterServiceImpl) Unsubscribe(ctx context.Context, email string) error {
	if err := s.repo.SetActive(ctx, email, false); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}
