package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brandturn/backend/pkg/apollo"
)

type mockApolloClient struct {
	searchPeopleFunc    func(ctx context.Context, query string) ([]apollo.Person, error)
	searchCompaniesFunc func(ctx context.Context, query string) ([]apollo.Organization, error)
	listTeamUsersFunc   func(ctx context.Context) ([]apollo.TeamUser, error)
}

func (m *mockApolloClient) SearchPeople(ctx context.Context, query string) ([]apollo.Person, error) {
	return m.searchPeopleFunc(ctx, query)
}

func (m *mockApolloClient) SearchCompanies(ctx context.Context, query string) ([]apollo.Organization, error) {
	return m.searchCompaniesFunc(ctx, query)
}

func (m *mockApolloClient) ListTeamUsers(ctx context.Context) ([]apollo.TeamUser, error) {
	return m.listTeamUsersFunc(ctx)
}

func TestApolloHandler_SearchPeople(t *testing.T) {
	client := &mockApolloClient{
		searchPeopleFunc: func(ctx context.Context, query string) ([]apollo.Person, error) {
			if query != "marketing director" {
				t.Errorf("unexpected query %q", query)
			}
			return []apollo.Person{apollo.Person(`{"name":"Alice"}`)}, nil
		},
	}
	h := NewApolloHandler(client)

	req := adminRequest(http.MethodPost, "/api/integrations/apollo/search/people",
		`{"query":"marketing director"}`)
	rec := httptest.NewRecorder()
	h.SearchPeople(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var people []json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&people); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(people) != 1 {
		t.Errorf("expected 1 person, got %d", len(people))
	}
}

func TestApolloHandler_NotConfigured(t *testing.T) {
	client := &mockApolloClient{
		searchPeopleFunc: func(ctx context.Context, query string) ([]apollo.Person, error) {
			return nil, apollo.ErrNotConfigured
		},
	}
	h := NewApolloHandler(client)

	req := adminRequest(http.MethodPost, "/api/integrations/apollo/search/people", `{"query":"x"}`)
	rec := httptest.NewRecorder()
	h.SearchPeople(rec, req)

	// キー未設定は空配列ではなく 503 を返す
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "apollo_not_configured" {
		t.Errorf("expected apollo_not_configured, got %q", resp["error"])
	}
}

func TestApolloHandler_UpstreamFailure(t *testing.T) {
	client := &mockApolloClient{
		searchCompaniesFunc: func(ctx context.Context, query string) ([]apollo.Organization, error) {
			return nil, errors.New("status 500")
		},
	}
	h := NewApolloHandler(client)

	req := adminRequest(http.MethodPost, "/api/integrations/apollo/search/companies", `{"query":"Acme"}`)
	rec := httptest.NewRecorder()
	h.SearchCompanies(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestApolloHandler_TeamUsers(t *testing.T) {
	client := &mockApolloClient{
		listTeamUsersFunc: func(ctx context.Context) ([]apollo.TeamUser, error) {
			return []apollo.TeamUser{apollo.TeamUser(`{"email":"a@b.c"}`)}, nil
		},
	}
	h := NewApolloHandler(client)

	req := adminRequest(http.MethodGet, "/api/integrations/apollo/users", "")
	rec := httptest.NewRecorder()
	h.TeamUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestApolloHandler_RequiresAdmin(t *testing.T) {
	client := &mockApolloClient{
		searchPeopleFunc: func(ctx context.Context, query string) ([]apollo.Person, error) {
			t.Fatal("client must not be called")
			return nil, nil
		},
	}
	h := NewApolloHandler(client)

	req := httptest.NewRequest(http.MethodPost, "/api/integrations/apollo/search/people", nil)
	rec := httptest.NewRecorder()
	h.SearchPeople(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without auth, got %d", rec.Code)
	}
}
