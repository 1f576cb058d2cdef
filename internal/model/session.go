package model

import "time"

// Session は発行済みベアラートークンのサーバー側レコード。
// ID はトークンの jti クレームと一致する。行を削除すればトークンは失効する。
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired returns true if the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
