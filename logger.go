package docsimilarity

import (
	"io"

	"github.com/baditaflorin/l"
)

// createQuietLogger returns a synchronous logger that drops every record.
// Library callers that want traces pass their own through WithLogger.
func createQuietLogger() (l.Logger, error) {
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:     io.Discard,
		JsonFormat: false,
		AsyncWrite: false,
		AddSource:  false,
		Metrics:    false,
	})
}
