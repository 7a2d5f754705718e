package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"eventvault-backend/internal/shared/storage/object"
)

// ErrNotFound is returned by Load when no readable sidecar exists. Absence is
// a normal state: analysis may not have run, may have been skipped, or may
// have failed.
var ErrNotFound = errors.New("analysis not found")

// Store persists analysis results as JSON sidecar files next to the source
// document. The sidecar key is derived purely from the document key (same
// path, extension replaced), never stored separately; moving the document
// orphans its analysis.
type Store struct {
	Objects object.ObjectStore
}

// Save writes the serialized result at the sidecar key derived from the
// document's storage key. An existing sidecar is overwritten, last write wins.
func (s *Store) Save(ctx context.Context, storageKey string, res Result) error {
	sidecarKey, ok := SidecarKey(storageKey, ".pdf", ".docx")
	if !ok {
		return fmt.Errorf("no sidecar key for %q", storageKey)
	}

	data, err := json.Marshal(res.normalized())
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	if _, err := s.Objects.SaveWithKey(ctx, sidecarKey, "application/json", bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save analysis %s: %w", sidecarKey, err)
	}
	return nil
}

// Load reads the sidecar derived from a document's public reference path.
// Missing or unparseable sidecars come back as ErrNotFound, never as a hard
// error.
func (s *Store) Load(ctx context.Context, publicPath string) (Result, error) {
	storageKey := strings.TrimPrefix(strings.TrimSpace(publicPath), "/")
	if storageKey == "" {
		return Result{}, ErrNotFound
	}

	sidecarKey, ok := SidecarKey(storageKey, ".pdf", ".docx", ".doc")
	if !ok {
		return Result{}, ErrNotFound
	}

	rc, err := s.Objects.Open(ctx, sidecarKey)
	if err != nil {
		return Result{}, ErrNotFound
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return Result{}, ErrNotFound
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		return Result{}, ErrNotFound
	}
	return res.normalized(), nil
}

// SidecarKey replaces a trailing extension from exts (matched
// case-insensitively) with .json. It reports false when the key carries none
// of the extensions.
func SidecarKey(key string, exts ...string) (string, bool) {
	lower := strings.ToLower(key)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return key[:len(key)-len(ext)] + ".json", true
		}
	}
	return "", false
}
