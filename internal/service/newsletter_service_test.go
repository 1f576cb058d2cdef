package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
)

type mockNewsletterRepo struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.NewsletterSubscriber, error)
	createFunc      func(ctx context.Context, sub *model.NewsletterSubscriber) error
	listActiveFunc  func(ctx context.Context) ([]*model.NewsletterSubscriber, error)
	setActiveFunc   func(ctx context.Context, email string, active bool) error
}

func (m *mockNewsletterRepo) FindByEmail(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
	return m.findByEmailFunc(ctx, email)
}

func (m *mockNewsletterRepo) Create(ctx context.Context, sub *model.NewsletterSubscriber) error {
	return m.createFunc(ctx, sub)
}

func (m *mockNewsletterRepo) ListActive(ctx context.Context) ([]*model.NewsletterSubscriber, error) {
	return m.listActiveFunc(ctx)
}

func (m *mockNewsletterRepo) SetActive(ctx context.Context, email string, active bool) error {
	return m.setActiveFunc(ctx, email, active)
}

func TestNewsletterService_Subscribe_New(t *testing.T) {
	created := false
	repo := &mockNewsletterRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, sub *model.NewsletterSubscriber) error {
			created = true
			sub.ID = "sub-1"
			sub.IsActive = true
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	sub, err := svc.Subscribe(context.Background(), "taro@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !created {
		t.Error("expected Create to be called")
	}
	if sub.Email != "taro@example.com" {
		t.Errorf("unexpected subscriber: %+v", sub)
	}
}

func TestNewsletterService_Subscribe_AlreadyActive(t *testing.T) {
	repo := &mockNewsletterRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
			return &model.NewsletterSubscriber{ID: "sub-1", Email: email, IsActive: true}, nil
		},
		createFunc: func(ctx context.Context, sub *model.NewsletterSubscriber) error {
			t.Fatal("Create must not be called for an active subscriber")
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	if _, err := svc.Subscribe(context.Background(), "taro@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Errorf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestNewsletterService_Subscribe_Reactivates(t *testing.T) {
	reactivated := false
	repo := &mockNewsletterRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
			return &model.NewsletterSubscriber{ID: "sub-1", Email: email, IsActive: false}, nil
		},
		setActiveFunc: func(ctx context.Context, email string, active bool) error {
			if !active {
				t.Error("expected SetActive(true)")
			}
			reactivated = true
			return nil
		},
		createFunc: func(ctx context.Context, sub *model.NewsletterSubscriber) error {
			t.Fatal("Create must not be called when a row exists")
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	sub, err := svc.Subscribe(context.Background(), "taro@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !reactivated {
		t.Error("expected reactivation")
	}
	if !sub.IsActive || sub.UnsubscribedAt != nil {
		t.Errorf("expected active subscriber with cleared unsubscribed_at, got %+v", sub)
	}
}

func TestNewsletterService_Subscribe_RaceDuplicate(t *testing.T) {
	// FindByEmail と Create の間に他リクエストが先に登録したケース
	repo := &mockNewsletterRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.NewsletterSubscriber, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, sub *model.NewsletterSubscriber) error {
			return repository.ErrDuplicate
		},
	}
	svc := NewNewsletterService(repo)

	if _, err := svc.Subscribe(context.Background(), "taro@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Errorf("expected ErrAlreadySubscribed on duplicate race, got %v", err)
	}
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	repo := &mockNewsletterRepo{
		setActiveFunc: func(ctx context.Context, email string, active bool) error {
			if active {
				t.Error("expected SetActive(false)")
			}
			return nil
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Unsubscribe(context.Background(), "taro@example.com"); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
}

func TestNewsletterService_Unsubscribe_NotSubscribed(t *testing.T) {
	repo := &mockNewsletterRepo{
		setActiveFunc: func(ctx context.Context, email string, active bool) error {
			return repository.ErrNotFound
		},
	}
	svc := NewNewsletterService(repo)

	if err := svc.Unsubscribe(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("expected ErrNotSubscribed, got %v", err)
	}
}
