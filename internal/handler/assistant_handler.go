package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brandturn/backend/internal/service"
)

// AssistantHandler は LLM プロキシの HTTP ハンドラ。
// chat は公開（サイトのチャットウィジェット）、generate は管理者専用
type AssistantHandler struct {
	assistant service.AssistantService
}

// NewAssistantHandler は AssistantHandler を生成する
func NewAssistantHandler(assistant service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Chat handles POST /api/integrations/ai/chat.
// チャットウィジェットは content フィールドを読む。フォールバック応答には
// "fallback": true が付き、本物の応答と区別できる
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
		Context string `json:"context"` // "landing" | "admin"
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message_required")
		return
	}

	reply, fallback := h.assistant.Chat(r.Context(), req.Message, req.Context)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Content  string `json:"content"`
		Fallback bool   `json:"fallback,omitempty"`
	}{Content: reply, Fallback: fallback})
}

// Generate handles POST /api/integrations/ai/generate (admin-only).
func (h *AssistantHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req struct {
		SystemPrompt string `json:"systemPrompt"`
		UserPrompt   string `json:"userPrompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.SystemPrompt == "" || req.UserPrompt == "" {
		writeError(w, http.StatusBadRequest, "prompts_required")
		return
	}

	content, fallback := h.assistant.Generate(r.Context(), req.SystemPrompt, req.UserPrompt)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Content  string `json:"content"`
		Fallback bool   `json:"fallback,omitempty"`
	}{Content: content, Fallback: fallback})
}
