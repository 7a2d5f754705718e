package contracts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventvault-backend/internal/analysis"
	"eventvault-backend/internal/extract"
	"eventvault-backend/internal/shared/metrics"
	"eventvault-backend/internal/shared/storage/object"
	"eventvault-backend/internal/shared/telemetry"
)

// Uploaded contract files live under a public-servable directory; their
// storage keys double as URL paths.
const uploadDir = "uploads/contracts"

// ExtractFunc pulls plain text from raw document bytes.
type ExtractFunc func(ctx context.Context, data []byte, fileName string) (string, error)

// SummarizeFunc turns extracted text into a structured analysis result.
type SummarizeFunc func(ctx context.Context, text string) (analysis.Result, error)

// AnalysisStore persists and retrieves analysis sidecars.
type AnalysisStore interface {
	Save(ctx context.Context, storageKey string, res analysis.Result) error
	Load(ctx context.Context, publicPath string) (analysis.Result, error)
}

// Service ingests uploaded contracts and drives the analysis pipeline.
// Everything after the contract record is created is best-effort: extraction,
// summarization and sidecar writes may fail without failing the upload.
type Service struct {
	Repo      Repo
	Store     object.ObjectStore
	Extract   ExtractFunc
	Summarize SummarizeFunc
	Analyses  AnalysisStore
}

// Ingest stores the uploaded file, creates the contract record (DRAFT,
// version 1) and runs one analysis attempt. The returned contract is defined
// by record creation alone; analysis failures are logged and swallowed.
func (s *Service) Ingest(ctx context.Context, eventID, fileName string, r io.Reader) (Contract, error) {
	if strings.TrimSpace(eventID) == "" || strings.TrimSpace(fileName) == "" || r == nil {
		return Contract{}, ErrInvalidInput
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Contract{}, err
	}
	if len(data) == 0 {
		return Contract{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, uploadDir, fileName, bytes.NewReader(data))
	if err != nil {
		return Contract{}, err
	}

	now := time.Now().UTC()
	contract := Contract{
		ID:      uuid.NewString(),
		EventID: eventID,
		Title:   TitleFromFileName(fileName),
		Status:  StatusDraft,
		Versions: []Version{
			{VersionNumber: 1, FilePath: "/" + storageKey, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, contract); err != nil {
		return Contract{}, err
	}

	metrics.IncIngestAccepted()
	telemetry.Info("contract.ingested", map[string]any{
		"contract_id": contract.ID,
		"event_id":    eventID,
		"file_name":   fileName,
		"storage_key": storageKey,
		"size_bytes":  size,
		"mime_type":   mimeType,
	})

	// One synchronous attempt. The context is detached so an abandoned
	// client connection does not cancel a running analysis.
	s.analyze(context.WithoutCancel(ctx), contract, storageKey, fileName, data)

	return contract, nil
}

func (s *Service) analyze(ctx context.Context, contract Contract, storageKey, fileName string, data []byte) {
	start := time.Now()
	fields := map[string]any{
		"contract_id": contract.ID,
		"event_id":    contract.EventID,
		"storage_key": storageKey,
	}

	text, err := s.Extract(ctx, data, fileName)
	if errors.Is(err, extract.ErrSkippedFormat) {
		fields["reason"] = "unsupported format"
		telemetry.Info("contract.analysis.skipped", fields)
		metrics.IncAnalysisSkipped()
		return
	}
	if err != nil {
		fields["err"] = err.Error()
		telemetry.Error("contract.analysis.extract_failed", fields)
		metrics.IncAnalysisFailed()
		return
	}
	if strings.TrimSpace(text) == "" {
		fields["reason"] = "no text extracted"
		telemetry.Info("contract.analysis.skipped", fields)
		metrics.IncAnalysisSkipped()
		return
	}

	result, err := s.Summarize(ctx, text)
	if err != nil {
		fields["err"] = err.Error()
		telemetry.Error("contract.analysis.summarize_failed", fields)
		metrics.IncAnalysisFailed()
		return
	}

	if err := s.Analyses.Save(ctx, storageKey, result); err != nil {
		fields["err"] = err.Error()
		telemetry.Error("contract.analysis.save_failed", fields)
		metrics.IncAnalysisFailed()
		return
	}

	metrics.IncAnalysisSaved()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("contract.analysis.saved", fields)
}

// GetAnalysis returns the persisted analysis for a document's public path,
// or nil when none exists yet. "Not analyzed" is a normal state, never an
// error.
func (s *Service) GetAnalysis(ctx context.Context, publicPath string) (*analysis.Result, error) {
	if strings.TrimSpace(publicPath) == "" {
		return nil, nil
	}
	result, err := s.Analyses.Load(ctx, publicPath)
	if err != nil {
		return nil, nil
	}
	return &result, nil
}

// ListByEvent returns all contracts attached to an event.
func (s *Service) ListByEvent(ctx context.Context, eventID string) ([]Contract, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByEvent(ctx, eventID)
}

// GetByID returns one contract.
func (s *Service) GetByID(ctx context.Context, id string) (Contract, error) {
	if strings.TrimSpace(id) == "" {
		return Contract{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}
