package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenDuration はベアラートークンの有効期間（30 日）
const TokenDuration = 30 * 24 * time.Hour

const minSecretLen = 32

// Claims はベアラートークンのペイロード。
// SessionID（jti）が sessions テーブルに存在する間だけトークンは有効。
type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"jti"`
	IsAdmin   bool   `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// TokenSigner signs and parses bearer tokens with a shared HS256 secret.
type TokenSigner struct {
	secret []byte
}

// NewTokenSigner creates a TokenSigner. Secrets shorter than 32 bytes are
// zero-padded so HMAC key length stays constant.
func NewTokenSigner(secret string) *TokenSigner {
	b := []byte(secret)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		b = out
	}
	return &TokenSigner{secret: b}
}

// Sign は userID とセッション ID からベアラートークンを発行する
func (s *TokenSigner) Sign(userID, sessionID string, isAdmin bool, expiresAt time.Time) (string, error) {
	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ErrInvalidToken はトークンの署名・期限・形式が不正な場合のエラー
var ErrInvalidToken = errors.New("invalid token")

// Parse はトークンを検証して Claims を返す
func (s *TokenSigner) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
