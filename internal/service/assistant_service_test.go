package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brandturn/backend/pkg/groq"
)

type mockGroqClient struct {
	completeFunc func(ctx context.Context, params groq.CompletionParams) (string, error)
}

func (m *mockGroqClient) Complete(ctx context.Context, params groq.CompletionParams) (string, error) {
	return m.completeFunc(ctx, params)
}

func TestAssistantService_Chat(t *testing.T) {
	client := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			if len(params.Messages) != 2 {
				t.Fatalf("expected system + user messages, got %d", len(params.Messages))
			}
			if params.Messages[0].Role != "system" {
				t.Errorf("expected first message to be the system prompt, got %q", params.Messages[0].Role)
			}
			if params.Messages[1].Content != "What services do you offer?" {
				t.Errorf("unexpected user message %q", params.Messages[1].Content)
			}
			return "We offer branding and performance marketing.", nil
		},
	}
	svc := NewAssistantService(client)

	reply, fallback := svc.Chat(context.Background(), "What services do you offer?", "landing")
	if fallback {
		t.Error("expected a live reply, not a fallback")
	}
	if reply != "We offer branding and performance marketing." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestAssistantService_Chat_SystemPromptByContext(t *testing.T) {
	// admin と landing でシステムプロンプトを切り替える
	var systemPrompts []string
	client := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			systemPrompts = append(systemPrompts, params.Messages[0].Content)
			return "ok", nil
		},
	}
	svc := NewAssistantService(client)

	svc.Chat(context.Background(), "draft an email", "admin")
	svc.Chat(context.Background(), "what do you offer?", "landing")

	if len(systemPrompts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(systemPrompts))
	}
	if systemPrompts[0] == systemPrompts[1] {
		t.Error("admin and landing contexts must use different system prompts")
	}
	if !strings.Contains(systemPrompts[0], "admin panel") {
		t.Errorf("unexpected admin system prompt %q", systemPrompts[0])
	}
}

func TestAssistantService_Chat_FallbackByContext(t *testing.T) {
	client := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			return "", groq.ErrNotConfigured
		},
	}
	svc := NewAssistantService(client)

	// チャットウィジェットが送る 2 つのコンテキストで別々の定型文を返す
	landing, fallback := svc.Chat(context.Background(), "what do you offer?", "landing")
	if !fallback {
		t.Error("expected fallback=true when the client is unconfigured")
	}
	if landing != CannedReply("landing") {
		t.Errorf("expected the landing canned reply, got %q", landing)
	}

	admin, fallback := svc.Chat(context.Background(), "draft an email", "admin")
	if !fallback || admin != CannedReply("admin") {
		t.Errorf("expected the admin canned reply, got %q (fallback=%v)", admin, fallback)
	}
	if admin == landing {
		t.Error("admin and landing canned replies must differ")
	}

	// 不明なコンテキストはデフォルト定型文
	reply, fallback := svc.Chat(context.Background(), "hi", "weather")
	if !fallback || reply != CannedReply("weather") {
		t.Errorf("expected default canned reply, got %q (fallback=%v)", reply, fallback)
	}
	if reply == CannedReply("admin") {
		t.Error("default reply must differ from the admin reply")
	}
}

func TestAssistantService_Generate(t *testing.T) {
	client := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			if params.Messages[0].Content != "You are a lead-gen expert." {
				t.Errorf("unexpected system prompt %q", params.Messages[0].Content)
			}
			return "Strategy: custom output", nil
		},
	}
	svc := NewAssistantService(client)

	content, fallback := svc.Generate(context.Background(), "You are a lead-gen expert.", "Find SaaS leads")
	if fallback {
		t.Error("expected a live result")
	}
	if content != "Strategy: custom output" {
		t.Errorf("unexpected content %q", content)
	}
}

func TestAssistantService_Generate_Fallbacks(t *testing.T) {
	// キー未設定と上流障害で異なる定型文を返す
	noKey := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			return "", groq.ErrNotConfigured
		},
	}
	content, fallback := NewAssistantService(noKey).Generate(context.Background(), "sys", "user")
	if !fallback {
		t.Error("expected fallback=true without an API key")
	}
	if !strings.Contains(content, "decision-makers with budget authority") {
		t.Errorf("unexpected no-key fallback %q", content)
	}

	upstream := &mockGroqClient{
		completeFunc: func(ctx context.Context, params groq.CompletionParams) (string, error) {
			return "", errors.New("status 500")
		},
	}
	errContent, fallback := NewAssistantService(upstream).Generate(context.Background(), "sys", "user")
	if !fallback {
		t.Error("expected fallback=true on upstream failure")
	}
	if !strings.Contains(errContent, "leadership roles") {
		t.Errorf("unexpected upstream-error fallback %q", errContent)
	}
	if errContent == content {
		t.Error("no-key and upstream-error fallbacks must differ")
	}
}
