package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_doc_similarity/internal/app"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
	"github.com/baditaflorin/go_doc_similarity/pkg/docsim"
)

const compareTimeout = 60 * time.Second

// TextRequest carries two raw texts to compare.
type TextRequest struct {
	NameA string `json:"name_a,omitempty"`
	TextA string `json:"text_a"`
	NameB string `json:"name_b,omitempty"`
	TextB string `json:"text_b"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

type server struct {
	app    *app.App
	logger ports.Logger
}

func newServer(a *app.App) *server {
	return &server{app: a, logger: a.Logger}
}

// requestHandler is the main fasthttp request handler
func (s *server) requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "docsim")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/compare":
		s.handleCompareTexts(ctx)
	case "/compare/files":
		s.handleCompareFiles(ctx)
	case "/history":
		s.handleHistory(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
		"history": s.app.History != nil,
	})
}

func (s *server) handleCompareTexts(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req TextRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}
	if req.NameA == "" {
		req.NameA = "text_a"
	}
	if req.NameB == "" {
		req.NameB = "text_b"
	}

	c, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	report, err := s.app.CompareTexts(c, req.NameA, req.TextA, req.NameB, req.TextB)
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, report)
}

func (s *server) handleCompareFiles(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid multipart form: "+err.Error())
		return
	}

	docA, err := readDocument(form, "file_a")
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}
	docB, err := readDocument(form, "file_b")
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}

	c, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()

	report, err := s.app.CompareDocuments(c, docA, docB)
	if err != nil {
		s.writeCompareError(ctx, err)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, report)
}

var errMissingFile = errors.New("missing file")

func readDocument(form *multipart.Form, field string) (domain.Document, error) {
	files := form.File[field]
	if len(files) == 0 {
		return domain.Document{}, fmt.Errorf("%w: %s", errMissingFile, field)
	}
	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		return domain.Document{}, fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read %s: %w", field, err)
	}
	return domain.NewDocument(fh.Filename, data)
}

func (s *server) handleHistory(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	limit := 0
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		n, err := strconv.Atoi(string(raw))
		if err != nil || n <= 0 {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.writeJSONError(ctx, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.app.ListHistory(ctx, limit)
	if errors.Is(err, app.ErrHistoryDisabled) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("Failed to list history", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	s.writeJSONResponse(ctx, map[string]interface{}{"comparisons": recs})
}

// statusFor maps comparison errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingFile):
		return fasthttp.StatusBadRequest
	case errors.Is(err, docsim.ErrUnsupportedFormat), errors.Is(err, docsim.ErrDecode):
		return fasthttp.StatusUnprocessableEntity
	case errors.Is(err, docsim.ErrDocumentTooLarge), errors.Is(err, docsim.ErrTableTooLarge):
		return fasthttp.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	default:
		return fasthttp.StatusInternalServerError
	}
}

func (s *server) writeCompareError(ctx *fasthttp.RequestCtx, err error) {
	status := statusFor(err)
	ctx.SetStatusCode(status)
	if status == fasthttp.StatusInternalServerError {
		s.logger.Error("Comparison failed", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	s.writeJSONError(ctx, err.Error())
}

// writeJSONResponse writes a JSON response to the context
func (s *server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

// writeJSONError writes a JSON error response to the context
func (s *server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}
