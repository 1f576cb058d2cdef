package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brandturn/backend/internal/model"
	"github.com/brandturn/backend/internal/service"
	"github.com/brandturn/backend/pkg/auth"
)

const maxMessageLength = 5000

// ContactHandler handles contact form submission and the admin dashboard reads.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitContactRequest is the expected JSON body for POST /api/contacts.
type submitContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Type    string `json:"type"`
}

// Submit handles POST /api/contacts.
// name/email/subject/message are required; city/region/type are optional and
// defaulted by the service.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	switch {
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "name_required")
		return
	case req.Email == "":
		writeError(w, http.StatusBadRequest, "email_required")
		return
	case req.Subject == "":
		writeError(w, http.StatusBadRequest, "subject_required")
		return
	case req.Message == "":
		writeError(w, http.StatusBadRequest, "message_required")
		return
	}

	if len([]rune(req.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return
	}

	contact := &model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		City:    req.City,
		Region:  req.Region,
		Type:    req.Type,
	}

	if err := h.contactService.Submit(r.Context(), contact); err != nil {
		slog.Error("contact submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(contact)
}

// requireAdmin は認証済み管理者でなければエラーを書き込み false を返す
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := auth.UserIDFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// List handles GET /api/contacts (admin-only).
// Supports query params: limit (default 100, max 500), offset.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	opts := model.ContactListOptions{
		Limit:  100,
		Offset: 0,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 500 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	contacts, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(contacts)
}

// Stats handles GET /api/contacts/stats (admin-only).
func (h *ContactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	stats, err := h.contactService.Stats(r.Context())
	if err != nil {
		slog.Error("contact stats failed", "error", err)
		writeError(w, http.StatusInternalServerError, "stats_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}
