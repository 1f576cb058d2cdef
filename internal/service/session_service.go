package service

import (
	"context"
	"errors"
	"time"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
	"github.com/brandturn/backend/pkg/auth"
	"github.com/google/uuid"
)

// SessionService manages DB-backed sessions for issued bearer tokens.
// Implements auth.SessionValidator.
type SessionService struct {
	repo repository.SessionRepository
}

// NewSessionService creates a SessionService.
func NewSessionService(repo repository.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// CreateSession はトークン発行に対応するセッション行を作成する。
// 返り値の ID がトークンの jti になる
func (s *SessionService) CreateSession(ctx context.Context, userID string) (*model.Session, error) {
	now := time.Now().UTC()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.TokenDuration),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ValidateSession はセッション ID を検証してユーザー ID を返す。
// 失効済みの行は削除する。auth.SessionValidator 実装
func (s *SessionService) ValidateSession(ctx context.Context, sessionID string) (string, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return "", errors.New("invalid_session")
	}
	if session.Expired(time.Now()) {
		_ = s.repo.DeleteByID(ctx, sessionID)
		return "", errors.New("session_expired")
	}
	return session.UserID, nil
}

// DeleteSession removes a session (logout).
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.repo.DeleteByID(ctx, sessionID)
}

// DeleteAllSessions removes all sessions for a user (forced logout).
func (s *SessionService) DeleteAllSessions(ctx context.Context, userID string) error {
	return s.repo.DeleteByUserID(ctx, userID)
}
