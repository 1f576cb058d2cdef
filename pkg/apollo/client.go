// Package apollo provides a lightweight Apollo.io API client for BrandTURN.
// Uses raw HTTP calls (no SDK) to minimize external dependencies.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL は Apollo REST API のベース URL
const DefaultBaseURL = "https://api.apollo.io/v1"

// searchPageSize は people / companies 検索の 1 ページあたりの件数
const searchPageSize = 15

// Person is one result from a people search. Fields we don't consume are
// kept as raw JSON so the dashboard sees whatever Apollo returned.
type Person = json.RawMessage

// Organization is one result from a company search.
type Organization = json.RawMessage

// TeamUser is one member of the Apollo team account.
type TeamUser = json.RawMessage

// Client は Apollo API クライアントのインターフェース
type Client interface {
	// SearchPeople はキーワードで人物を検索する
	SearchPeople(ctx context.Context, query string) ([]Person, error)
	// SearchCompanies は組織名で企業を検索する
	SearchCompanies(ctx context.Context, query string) ([]Organization, error)
	// ListTeamUsers はチームアカウントのユーザー一覧を取得する
	ListTeamUsers(ctx context.Context) ([]TeamUser, error)
}

// ErrNotConfigured は Apollo の API キーが設定されていない場合のエラー
var ErrNotConfigured = errors.New("apollo: not configured")

// RealClient は Apollo API への raw HTTP クライアント実装
type RealClient struct {
	APIKey     string
	BaseURL    string // overridable for tests
	httpClient *http.Client
}

// NewClient は RealClient を生成する
func NewClient(apiKey string) *RealClient {
	return &RealClient{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchPeople は mixed_people/search にキーワード検索を転送する
func (c *RealClient) SearchPeople(ctx context.Context, query string) ([]Person, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	body := map[string]any{
		"api_key":    c.APIKey,
		"q_keywords": query,
		"page":       1,
		"per_page":   searchPageSize,
	}

	var result struct {
		People []Person `json:"people"`
	}
	if err := c.postJSON(ctx, "/mixed_people/search", body, &result); err != nil {
		return nil, err
	}
	if result.People == nil {
		result.People = []Person{}
	}
	return result.People, nil
}

// SearchCompanies は mixed_companies/search に組織名検索を転送する
func (c *RealClient) SearchCompanies(ctx context.Context, query string) ([]Organization, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	body := map[string]any{
		"api_key":             c.APIKey,
		"q_organization_name": query,
		"page":                1,
		"per_page":            searchPageSize,
	}

	var result struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := c.postJSON(ctx, "/mixed_companies/search", body, &result); err != nil {
		return nil, err
	}
	if result.Organizations == nil {
		result.Organizations = []Organization{}
	}
	return result.Organizations, nil
}

// ListTeamUsers は users/search からチームユーザーを取得する
func (c *RealClient) ListTeamUsers(ctx context.Context) ([]TeamUser, error) {
	if c.APIKey == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("api_key", c.APIKey)
	q.Set("per_page", "100")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/users/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("apollo list users: status %d", resp.StatusCode)
	}

	var result struct {
		Users []TeamUser `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Users == nil {
		result.Users = []TeamUser{}
	}
	return result.Users, nil
}

func (c *RealClient) postJSON(ctx context.Context, path string, body map[string]any, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// エラー本文はログにも返却にも載せない（上流ペイロードのリークを防ぐ）
		return fmt.Errorf("apollo %s: status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
