// Package groq provides a lightweight Groq chat-completions client for
// BrandTURN. Uses raw HTTP calls (no SDK) to minimize external dependencies.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL は Groq の OpenAI 互換 API のベース URL
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel は全エンドポイントで使用する固定モデル ID
const DefaultModel = "llama-3.1-70b-versatile"

// Message is one chat message in OpenAI wire format.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// CompletionParams は chat completion リクエストのパラメータ
type CompletionParams struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client は Groq API クライアントのインターフェース
type Client interface {
	// Complete は chat completion を実行し、最初の選択肢の本文を返す
	Complete(ctx context.Context, params CompletionParams) (string, error)
}

// ErrNotConfigured は Groq の API キーが設定されていない場合のエラー
var ErrNotConfigured = errors.New("groq: not configured")

// RealClient は Groq API への raw HTTP クライアント実装
type RealClient struct {
	APIKey     string
	BaseURL    string // overridable for tests
	Model      string
	httpClient *http.Client
}

// NewClient は RealClient を生成する
func NewClient(apiKey string) *RealClient {
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *RealClient) Configured() bool { return c.APIKey != "" }

// Complete は /chat/completions を呼び出して最初の選択肢の本文を返す
func (c *RealClient) Complete(ctx context.Context, params CompletionParams) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	body := map[string]any{
		"model":       c.Model,
		"messages":    params.Messages,
		"temperature": params.Temperature,
		"max_tokens":  params.MaxTokens,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq chat completion: status %d", resp.StatusCode)
	}

	var result struct {
		Choices []struct {
			Message Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", errors.New("groq chat completion: empty response")
	}
	return result.Choices[0].Message.Content, nil
}
