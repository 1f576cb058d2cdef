package service

import (
	"context"
	"testing"
	"time"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
)

// fakeSessionRepo はインメモリの SessionRepository
type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.Session{}}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *model.Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) DeleteByID(ctx context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

func TestSessionService_CreateAndValidate(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo)

	session, err := svc.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if session.ID == "" {
		t.Fatal("expected a session ID")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}

	userID, err := svc.ValidateSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("validate session: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected user-1, got %q", userID)
	}
}

func TestSessionService_Validate_Unknown(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo())

	if _, err := svc.ValidateSession(context.Background(), "no-such-session"); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestSessionService_Validate_Expired(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo)

	repo.sessions["expired"] = &model.Session{
		ID:        "expired",
		UserID:    "user-1",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	if _, err := svc.ValidateSession(context.Background(), "expired"); err == nil {
		t.Error("expected error for expired session")
	}
	// 失効した行は掃除される
	if _, ok := repo.sessions["expired"]; ok {
		t.Error("expected expired session to be deleted")
	}
}

func TestSessionService_Delete(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo)

	session, err := svc.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	if err := svc.DeleteSession(context.Background(), session.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := svc.ValidateSession(context.Background(), session.ID); err == nil {
		t.Error("expected validation to fail after logout")
	}
}

func TestSessionService_DeleteAll(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo)

	a, _ := svc.CreateSession(context.Background(), "user-1")
	b, _ := svc.CreateSession(context.Background(), "user-1")
	other, _ := svc.CreateSession(context.Background(), "user-2")

	if err := svc.DeleteAllSessions(context.Background(), "user-1"); err != nil {
		t.Fatalf("delete all sessions: %v", err)
	}

	if _, err := svc.ValidateSession(context.Background(), a.ID); err == nil {
		t.Error("expected session a to be revoked")
	}
	if _, err := svc.ValidateSession(context.Background(), b.ID); err == nil {
		t.Error("expected session b to be revoked")
	}
	if _, err := svc.ValidateSession(context.Background(), other.ID); err != nil {
		t.Errorf("other user's session must survive: %v", err)
	}
}
