package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Save places the object under dir with a collision-resistant generated name;
// SaveWithKey writes derived artifacts (e.g. analysis sidecars) at an exact key.
type ObjectStore interface {
	Save(ctx context.Context, dir string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
