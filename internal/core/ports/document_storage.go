package ports

import (
	"context"
	"io"
)

// DocumentStorage stores uploaded driver document files. The core keeps only the
// returned reference.
type DocumentStorage interface {
	// Save writes body under key and returns the reference to record on the document.
	Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
