package ports

import (
	"context"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

// Extractor decodes the text of a document container.
type Extractor interface {
	Extract(ctx context.Context, data []byte, format domain.Format) (string, error)
}
