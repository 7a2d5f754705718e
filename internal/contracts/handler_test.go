package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"eventvault-backend/internal/analysis"
)

func newTestRouter(t *testing.T) (*gin.Engine, *serviceFixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	f := newServiceFixture(t)
	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(f.svc).RegisterRoutes(api)
	return r, f
}

func multipartUpload(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestUploadContract_Created(t *testing.T) {
	r, _ := newTestRouter(t)

	body, contentType := multipartUpload(t, "file", "Venue Agreement.pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/event-1/contracts", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var got ContractResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Title != "Venue Agreement" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Status != StatusDraft {
		t.Fatalf("status = %q", got.Status)
	}
	if got.EventID != "event-1" {
		t.Fatalf("event id = %q", got.EventID)
	}
	if len(got.Versions) != 1 || !strings.HasPrefix(got.Versions[0].FilePath, "/uploads/contracts/") {
		t.Fatalf("versions = %+v", got.Versions)
	}
}

func TestUploadContract_MissingFileIs400(t *testing.T) {
	r, f := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("note", "no file here"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/event-1/contracts", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if list, _ := f.repo.ListByEvent(context.Background(), "event-1"); len(list) != 0 {
		t.Fatalf("nothing should be persisted on 400, got %d", len(list))
	}
}

func TestListContracts_ByEvent(t *testing.T) {
	r, f := newTestRouter(t)
	ctx := context.Background()

	if _, err := f.svc.Ingest(ctx, "event-1", "first.pdf", strings.NewReader("%PDF-1.4")); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}
	if _, err := f.svc.Ingest(ctx, "event-2", "other.pdf", strings.NewReader("%PDF-1.4")); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/event-1/contracts", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got []ContractResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Title != "first" {
		t.Fatalf("unexpected list %+v", got)
	}
}

func TestGetAnalysis_NullWhenMissing(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/analysis?path=/uploads/contracts/none.pdf", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("missing analysis must be 200, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != "null" {
		t.Fatalf("expected JSON null, got %q", body)
	}
}

func TestGetAnalysis_ReturnsResult(t *testing.T) {
	r, f := newTestRouter(t)
	store := &analysis.Store{Objects: f.store}
	want := analysis.Result{
		Summary: "Photography contract for one day.",
		Risks:   []string{"No backup photographer clause"},
	}
	if err := store.Save(context.Background(), "uploads/contracts/x-photo.pdf", want); err != nil {
		t.Fatalf("seed sidecar: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contracts/analysis?path=/uploads/contracts/x-photo.pdf", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got analysis.Result
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Summary != want.Summary {
		t.Fatalf("summary = %q, want %q", got.Summary, want.Summary)
	}
	if len(got.Risks) != 1 || got.Risks[0] != want.Risks[0] {
		t.Fatalf("risks = %+v", got.Risks)
	}
}
