package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/timmy/promptforge/internal/domain"
)

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
}

func testDrafts() []domain.PromptVariation {
	return []domain.PromptVariation{
		{Positive: "1girl, sitting, beach", Negative: "worst quality"},
		{Positive: "1boy, standing, city", Negative: "worst quality"},
	}
}

func TestExpandReturnsRefinedVariations(t *testing.T) {
	srv := chatServer(t, http.StatusOK,
		`[{"positive":"1girl, sitting, beach, golden hour","negative":"worst quality, bad anatomy"}]`)
	defer srv.Close()

	svc := NewExpansionService(&ExpansionConfig{
		Enabled: true,
		Model:   "gpt-4o-mini",
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})

	got, err := svc.Expand(context.Background(), ExpansionContext{}, testDrafts())
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 variation, got %d", len(got))
	}
	if got[0].Positive != "1girl, sitting, beach, golden hour" {
		t.Errorf("unexpected positive prompt %q", got[0].Positive)
	}
}

func TestExpandStripsCodeFences(t *testing.T) {
	srv := chatServer(t, http.StatusOK,
		"```json\n[{\"positive\":\"1girl, forest\",\"negative\":\"blurry\"}]\n```")
	defer srv.Close()

	svc := NewExpansionService(&ExpansionConfig{
		Enabled: true,
		Model:   "gpt-4o-mini",
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})

	got, err := svc.Expand(context.Background(), ExpansionContext{}, testDrafts())
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got[0].Positive != "1girl, forest" {
		t.Errorf("unexpected positive prompt %q", got[0].Positive)
	}
}

func TestExpandWithFallbackKeepsDraftsOnFailure(t *testing.T) {
	drafts := testDrafts()

	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"malformed payload", http.StatusOK, "here are your prompts!"},
		{"empty array", http.StatusOK, "[]"},
		{"empty positive", http.StatusOK, `[{"positive":"","negative":"x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := chatServer(t, tt.status, tt.content)
			defer srv.Close()

			svc := NewExpansionService(&ExpansionConfig{
				Enabled: true,
				Model:   "gpt-4o-mini",
				APIKey:  "test-key",
				BaseURL: srv.URL,
			})

			got := svc.ExpandWithFallback(context.Background(), ExpansionContext{}, drafts)
			if len(got) != len(drafts) {
				t.Fatalf("expected %d fallback variations, got %d", len(drafts), len(got))
			}
			for i := range got {
				if got[i] != drafts[i] {
					t.Errorf("variation %d changed: %+v", i, got[i])
				}
			}
		})
	}
}

func TestExpandWithFallbackOnTransportError(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "[]")
	srv.Close() // refuse connections

	svc := NewExpansionService(&ExpansionConfig{
		Enabled: true,
		Model:   "gpt-4o-mini",
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})

	drafts := testDrafts()
	got := svc.ExpandWithFallback(context.Background(), ExpansionContext{}, drafts)
	if len(got) != len(drafts) {
		t.Fatalf("expected drafts back, got %d variations", len(got))
	}
}

func TestDisabledServicePassesThrough(t *testing.T) {
	svc := NewExpansionService(nil)
	if svc.IsEnabled() {
		t.Fatal("nil config should disable the service")
	}

	drafts := testDrafts()
	got := svc.ExpandWithFallback(context.Background(), ExpansionContext{}, drafts)
	if len(got) != len(drafts) {
		t.Fatalf("expected drafts back, got %d variations", len(got))
	}

	if _, err := svc.Expand(context.Background(), ExpansionContext{}, drafts); err == nil {
		t.Error("Expand on a disabled service should return an error")
	}
}

func TestNewExpansionServiceRequiresAPIKey(t *testing.T) {
	svc := NewExpansionService(&ExpansionConfig{Enabled: true, Model: "gpt-4o-mini"})
	if svc.IsEnabled() {
		t.Error("service without an API key should be disabled")
	}
}
