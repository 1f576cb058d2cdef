package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
	"github.com/brandturn/backend/pkg/auth"
)

// AuthServiceImpl は AuthService の実装
type AuthServiceImpl struct {
	userRepo repository.UserRepository
	adminKey string // 空文字列なら昇格パスは無効
}

// NewAuthService は AuthServiceImpl を生成する（DI: UserRepository を注入）
// adminKey はログイン時の管理者昇格キー。空なら昇格は常に拒否される
func NewAuthService(userRepo repository.UserRepository, adminKey string) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, adminKey: adminKey}
}

// Register はパスワードを bcrypt でハッシュ化してユーザーを作成する
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 同時登録との競合は DB の一意制約で検出される
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login はメールアドレスとパスワードを検証する
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, adminKey string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.HasPassword() || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if adminKey != "" && s.adminKey != "" && adminKey == s.adminKey && !user.IsAdmin {
		if err := s.userRepo.SetAdmin(ctx, user.ID, true); err != nil {
			slog.Error("admin promotion failed", "error", err, "user_id", user.ID)
			return nil, fmt.Errorf("promote admin: %w", err)
		}
		user.IsAdmin = true
		// 昇格は必ず監査ログに残す
		slog.Info("user promoted to admin", "user_id", user.ID, "email", user.Email)
	}

	return user, nil
}

// LoginWithGoogle は検証済み Google ユーザー情報からユーザーを取得または作成する
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, bool, error) {
	// まず Google の subject で探す。紐付け済みユーザーは Google 側で
	// メールアドレスを変えていても同じアカウントに戻る
	if user, err := s.userRepo.FindByGoogleID(ctx, info.Sub); err == nil {
		return user, false, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err == nil {
		// メール一致の既存アカウントに Google ID を紐付ける
		if user.GoogleID == "" {
			if err := s.userRepo.LinkGoogleID(ctx, user.ID, info.Sub); err != nil {
				return nil, false, fmt.Errorf("link google id: %w", err)
			}
			user.GoogleID = info.Sub
		}
		return user, false, nil
	}

	// Google 専用アカウントにも使い捨てパスワードを埋めておく。
	// password_hash を非 NULL に保ち、通常ログイン経路の分岐を増やさないため
	hash, err := auth.HashPassword(auth.RandomPassword())
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	newUser := &model.User{
		Name:         info.Name,
		Email:        info.Email,
		PasswordHash: hash,
		GoogleID:     info.Sub,
		Avatar:       info.Picture,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	slog.Info("new user created", "user_id", newUser.ID, "provider", "google")
	return newUser, true, nil
}
