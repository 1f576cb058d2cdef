package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/service"
)

// NewsletterHandler handles newsletter subscription endpoints.
type NewsletterHandler struct {
	newsletterService service.NewsletterService
}

// NewNewsletterHandler creates a NewsletterHandler with the given service.
func NewNewsletterHandler(newsletterService service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

type emailRequest struct {
	Email string `json:"email"`
}

// decodeEmail decodes the {email} body shared by subscribe/unsubscribe.
func decodeEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return "", false
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return "", false
	}
	return email, true
}

// Subscribe handles POST /api/newsletter/subscribe.
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	sub, err := h.newsletterService.Subscribe(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySubscribed) {
			writeError(w, http.StatusConflict, "already_subscribed")
			return
		}
		slog.Error("newsletter subscribe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "subscribe_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(sub)
}

// Subscribers handles GET /api/newsletter/subscribers (admin-only).
func (h *NewsletterHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	subs, err := h.newsletterService.Subscribers(r.Context())
	if err != nil {
		slog.Error("newsletter list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	if subs == nil {
		subs = []*model.NewsletterSubscriber{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(subs)
}

// Unsubscribe handles DELETE /api/newsletter/unsubscribe.
// 存在しないメールは 404。新規レコードは作らない
func (h *NewsletterHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email, ok := decodeEmail(w, r)
	if !ok {
		return
	}

	if err := h.newsletterService.Unsubscribe(r.Context(), email); err != nil {
		if errors.Is(err, service.ErrNotSubscribed) {
			writeError(w, http.StatusNotFound, "not_subscribed")
			return
		}
		slog.Error("newsletter unsubscribe failed", "error", err)
		writeError(w, http.StatusInternalServerError, "unsubscribe_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}
