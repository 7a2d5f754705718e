package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventvault-backend/internal/llm"
)

func withTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prev := apiBase
	apiBase = srv.URL
	t.Cleanup(func() { apiBase = prev })

	client, err := NewClient("test-key", "gemini-pro")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClient_MissingKey(t *testing.T) {
	if _, err := NewClient("", "gemini-pro"); !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if _, err := NewClient("   ", "gemini-pro"); !errors.Is(err, llm.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential for blank key, got %v", err)
	}
}

func TestGenerateContent_SendsPromptAndJoinsParts(t *testing.T) {
	var gotPath, gotKey string
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}

	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":"},{"text":"\"ok\"}"}]}}]}`))
	})

	out, err := client.GenerateContent(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != `{"summary":"ok"}` {
		t.Fatalf("unexpected joined output %q", out)
	}
	if gotPath != "/gemini-pro:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("api key header missing, got %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	if gotBody.Contents[0].Parts[0].Text != "analyze this" {
		t.Fatalf("prompt not forwarded, got %q", gotBody.Contents[0].Parts[0].Text)
	}
}

func TestGenerateContent_APIErrorEnvelope(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error from error envelope")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("expected API message surfaced, got %v", err)
	}
}

func TestGenerateContent_MissingCandidates(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "candidates") {
		t.Fatalf("expected missing candidates error, got %v", err)
	}
}

func TestGenerateContent_NonJSONResponse(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.GenerateContent(context.Background(), "prompt")
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
