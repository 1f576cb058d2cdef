package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/brandturn/backend/pkg/groq"
)

// チャットウィジェットのコンテキスト。フロントエンドは landing（公開サイト）
// または admin（管理画面）のどちらかを送ってくる
const (
	chatContextLanding = "landing"
	chatContextAdmin   = "admin"
)

// landingSystemPrompt はサイト訪問者向けのシステムプロンプト
const landingSystemPrompt = `You are BT Buddy, the BrandTURN executive assistant on the website of BrandTURN, a digital marketing agency. Answer questions about the agency's services (branding, performance marketing, content, social media), pricing and how to get in touch. Keep answers short and friendly. If you don't know something, suggest using the contact form.`

// adminSystemPrompt は管理画面向けのシステムプロンプト
const adminSystemPrompt = `You are BT Buddy, the AI assistant inside the BrandTURN admin panel. Help the team write emails, generate business ideas and draft marketing strategies. Keep answers concise and actionable.`

const (
	chatTemperature = 0.7
	chatMaxTokens   = 1024
)

func chatSystemPrompt(ctxHint string) string {
	if ctxHint == chatContextAdmin {
		return adminSystemPrompt
	}
	return landingSystemPrompt
}

// cannedReplies はキー未設定・上流障害時にコンテキスト別で返す定型文
var cannedReplies = map[string]string{
	chatContextLanding: "Thanks for reaching out! I'm BT Buddy, the BrandTURN assistant. We cover branding, performance marketing, content production and social media management — leave your details in the contact form and the team will follow up within one business day.",
	chatContextAdmin:   "I can't reach the AI service right now, so drafting is unavailable. Please try again in a moment — the lead search and contact stats in the dashboard still work as usual.",
}

// cannedDefaultReply はコンテキストが不明な場合の定型文
const cannedDefaultReply = "Thanks for reaching out! I'm BT Buddy, the BrandTURN assistant. Ask me about our services, pricing or how to get in touch — or leave a message via the contact form and the team will follow up."

// generate エンドポイント用の定型文
const (
	cannedGenerateNoKey = "Strategy: Focus on decision-makers with budget authority in your target industry.\n\nKeywords: CEO, Marketing Director, VP Sales, Founder, Head of Growth"
	cannedGenerateError = "Strategy: Target professionals in leadership roles within your specified industry.\n\nKeywords: Director, Manager, VP, C-Suite, Lead"
)

// AssistantService は LLM プロキシのビジネスロジック。
// 上流障害やキー未設定では定型文にフォールバックし、二番目の返り値で
// フォールバックであることを呼び出し側に明示する
type AssistantService interface {
	// Chat answers a visitor message. ctxHint ("landing" or "admin") selects
	// the system prompt and the canned fallback.
	Chat(ctx context.Context, message, ctxHint string) (reply string, fallback bool)
	// Generate runs an arbitrary system/user prompt pair for the dashboard.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (content string, fallback bool)
}

// assistantServiceImpl is the production implementation of AssistantService.
type assistantServiceImpl struct {
	client groq.Client
}

// NewAssistantService creates an AssistantService over the given Groq client.
// client may be unconfigured; every call then takes the fallback path.
func NewAssistantService(client groq.Client) AssistantService {
	return &assistantServiceImpl{client: client}
}

// CannedReply returns the fallback reply for a context hint.
func CannedReply(ctxHint string) string {
	if reply, ok := cannedReplies[ctxHint]; ok {
		return reply
	}
	return cannedDefaultReply
}

// Chat は訪問者のメッセージに応答する
func (s *assistantServiceImpl) Chat(ctx context.Context, message, ctxHint string) (string, bool) {
	reply, err := s.client.Complete(ctx, groq.CompletionParams{
		Messages: []groq.Message{
			{Role: "system", Content: chatSystemPrompt(ctxHint)},
			{Role: "user", Content: message},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		slog.Warn("assistant chat fallback", "error", err, "context", ctxHint)
		return CannedReply(ctxHint), true
	}
	return reply, false
}

// Generate は管理画面向けの汎用プロンプト実行
func (s *assistantServiceImpl) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, bool) {
	content, err := s.client.Complete(ctx, groq.CompletionParams{
		Messages: []groq.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
	})
	if err != nil {
		slog.Warn("assistant generate fallback", "error", err)
		if errors.Is(err, groq.ErrNotConfigured) {
			return cannedGenerateNoKey, true
		}
		return cannedGenerateError, true
	}
	return content, false
}
