package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brandturn/backend/pkg/apollo"
)

// ApolloHandler は Apollo.io プロキシの HTTP ハンドラ（全エンドポイント管理者専用）。
// 失敗時の挙動は全エンドポイントで統一: キー未設定は 503、上流障害は 502。
// 空配列で障害を握りつぶすことはしない
type ApolloHandler struct {
	client apollo.Client
}

// NewApolloHandler は ApolloHandler を生成する
func NewApolloHandler(client apollo.Client) *ApolloHandler {
	return &ApolloHandler{client: client}
}

type searchRequest struct {
	Query string `json:"query"`
}

func writeApolloError(w http.ResponseWriter, err error) {
	if errors.Is(err, apollo.ErrNotConfigured) {
		writeError(w, http.StatusServiceUnavailable, "apollo_not_configured")
		return
	}
	slog.Error("apollo upstream failed", "error", err)
	writeError(w, http.StatusBadGateway, "apollo_upstream_failed")
}

// SearchPeople handles POST /api/integrations/apollo/search/people.
func (h *ApolloHandler) SearchPeople(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	people, err := h.client.SearchPeople(r.Context(), req.Query)
	if err != nil {
		writeApolloError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(people)
}

// SearchCompanies handles POST /api/integrations/apollo/search/companies.
func (h *ApolloHandler) SearchCompanies(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	companies, err := h.client.SearchCompanies(r.Context(), req.Query)
	if err != nil {
		writeApolloError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(companies)
}

// TeamUsers handles GET /api/integrations/apollo/users.
func (h *ApolloHandler) TeamUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	users, err := h.client.ListTeamUsers(r.Context())
	if err != nil {
		writeApolloError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(users)
}
