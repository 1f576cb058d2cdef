package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/repository"
	"github.com/brandturn/backend/internal/service"
	"github.com/brandturn/backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookieName = "oauth_state"

// generateOAuthState は CSRF 対策用のランダム state 文字列を生成する
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// setStateCookie は state を HttpOnly クッキーに保存する
func setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})
}

// verifyOAuthState は state クッキーとクエリパラメータを照合する
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

// clearStateCookie は state クッキーを削除する
func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// GoogleTokenVerifier は Google ID トークンを検証してユーザー情報を返す
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*service.GoogleUserInfo, error)
}

// tokenInfoVerifier は Google の tokeninfo エンドポイントで ID トークンを検証する実装
type tokenInfoVerifier struct {
	clientID   string
	httpClient *http.Client
}

// NewGoogleTokenVerifier creates a verifier that checks ID tokens against
// Google's tokeninfo endpoint and requires the given OAuth client ID audience.
func NewGoogleTokenVerifier(clientID string) GoogleTokenVerifier {
	return &tokenInfoVerifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *tokenInfoVerifier) Verify(ctx context.Context, idToken string) (*service.GoogleUserInfo, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid google token")
	}

	var info struct {
		Aud     string `json:"aud"`
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	// tokeninfo は署名と期限を検証済み。audience は自分で照合する
	if v.clientID != "" && info.Aud != v.clientID {
		return nil, errors.New("google token audience mismatch")
	}
	if info.Sub == "" || info.Email == "" {
		return nil, errors.New("google token missing subject or email")
	}

	return &service.GoogleUserInfo{
		Sub:     info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// AuthHandler は認証関連の HTTP ハンドラ
type AuthHandler struct {
	authService  service.AuthService
	sessions     *service.SessionService
	signer       *auth.TokenSigner
	verifier     GoogleTokenVerifier
	userRepo     repository.UserRepository
	googleConfig *oauth2.Config
	frontendURL  string
}

// AuthConfig は AuthHandler の設定
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectPath string
	FrontendURL        string
}

// NewAuthHandler は AuthHandler を生成する（DI: AuthService / SessionService を注入）
func NewAuthHandler(authService service.AuthService, sessions *service.SessionService, signer *auth.TokenSigner, verifier GoogleTokenVerifier, userRepo repository.UserRepository, cfg AuthConfig) *AuthHandler {
	redirectBase := os.Getenv("BACKEND_URL")
	if redirectBase == "" {
		redirectBase = "http://localhost:8080"
	}

	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  redirectBase + cfg.GoogleRedirectPath,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}

	return &AuthHandler{
		authService:  authService,
		sessions:     sessions,
		signer:       signer,
		verifier:     verifier,
		userRepo:     userRepo,
		googleConfig: googleConfig,
		frontendURL:  cfg.FrontendURL,
	}
}

// authResponse は登録・ログイン系エンドポイント共通のレスポンス。
// `_id` は既存フロントエンドが消費しているワイヤ形式に合わせている
type authResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	Token   string `json:"token"`
}

// issueToken はセッション行を作成し、対応するベアラートークンを発行する
func (h *AuthHandler) issueToken(ctx context.Context, user *model.User) (string, error) {
	session, err := h.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return h.signer.Sign(user.ID, session.ID, user.IsAdmin, session.ExpiresAt)
}

func (h *AuthHandler) writeAuthResponse(w http.ResponseWriter, status int, user *model.User, token string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Avatar:  user.Avatar,
		IsAdmin: user.IsAdmin,
		Token:   token,
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name_email_password_required")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken")
			return
		}
		writeError(w, http.StatusInternalServerError, "register_failed")
		return
	}

	token, err := h.issueToken(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	h.writeAuthResponse(w, http.StatusCreated, user, token)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		AdminKey string `json:"adminKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email_password_required")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password, req.AdminKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}

	token, err := h.issueToken(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	h.writeAuthResponse(w, http.StatusOK, user, token)
}

// GoogleAuth handles POST /api/auth/google (ID token from the sign-in widget).
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token_required")
		return
	}

	info, err := h.verifier.Verify(r.Context(), req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_google_token")
		return
	}

	user, created, err := h.authService.LoginWithGoogle(r.Context(), info)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "google_auth_failed")
		return
	}

	token, err := h.issueToken(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_failed")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.writeAuthResponse(w, status, user, token)
}

// googleUserInfo は Google userinfo API のレスポンス
type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLoginURL は Google OAuth の認証 URL を返す（GET /api/auth/google/login）
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	setStateCookie(w, state)
	url := h.googleConfig.AuthCodeURL(state)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// GoogleCallback は OAuth コールバックを処理する（GET /api/auth/google/callback）。
// 成功時はトークンをクエリに載せてフロントエンドへリダイレクトする
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		http.Redirect(w, r, h.frontendURL+"/?error=invalid_state", http.StatusFound)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.frontendURL+"/?error=no_code", http.StatusFound)
		return
	}

	oauthToken, err := h.googleConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=exchange_failed", http.StatusFound)
		return
	}

	client := h.googleConfig.Client(r.Context(), oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=userinfo_failed", http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=decode_failed", http.StatusFound)
		return
	}

	user, _, err := h.authService.LoginWithGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:     info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	})
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=create_user_failed", http.StatusFound)
		return
	}

	token, err := h.issueToken(r.Context(), user)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/?error=token_failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, h.frontendURL+"/?token="+url.QueryEscape(token), http.StatusFound)
}

// Logout はログアウトする（POST /api/auth/logout、要認証）。
// セッション行を削除するため、同じトークンは期限内でも以後使えない
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.sessions.DeleteSession(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "logout_failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// Me は GET /api/me を処理する（要認証）
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user_not_found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
