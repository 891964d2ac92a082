// Package intake exposes the document processing endpoints. Each endpoint
// accepts form-encoded input with optional sender and conversation_id
// attribution and responds with a success envelope wrapping the pipeline
// result.
package intake

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/internal/pipeline"
	"github.com/JaimeStill/courier/pkg/handlers"
	"github.com/JaimeStill/courier/pkg/routes"
	"github.com/JaimeStill/courier/pkg/storage"
)

var (
	errMissingInput   = errors.New("Either file or text must be provided")
	errUploadTooLarge = errors.New("File exceeds maximum upload size")
)

// Response is the envelope every processing endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler provides HTTP endpoints for document intake.
type Handler struct {
	pipeline  *pipeline.Pipeline
	archive   storage.System
	logger    *slog.Logger
	maxUpload int64
}

// NewHandler creates a Handler. archive may be nil; uploaded documents are
// then processed without being retained.
func NewHandler(
	p *pipeline.Pipeline,
	archive storage.System,
	logger *slog.Logger,
	maxUpload int64,
) *Handler {
	return &Handler{
		pipeline:  p,
		archive:   archive,
		logger:    logger.With("handler", "intake"),
		maxUpload: maxUpload,
	}
}

// Routes returns the route group definition for processing endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/process",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/email", Handler: h.Email},
			{Method: "POST", Pattern: "/json", Handler: h.JSON},
			{Method: "POST", Pattern: "/text", Handler: h.Text},
			{Method: "POST", Pattern: "/pdf", Handler: h.PDF},
			{Method: "POST", Pattern: "/pdf/text", Handler: h.PDFText},
		},
	}
}

// Email processes raw email text from the email_text form field.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("email_text")
	if content == "" {
		h.respondError(w, http.StatusBadRequest, errMissingInput)
		return
	}

	h.route(w, r, pipeline.Input{
		Content:        content,
		Format:         classify.FormatEmail,
		Sender:         r.FormValue("sender"),
		ConversationID: r.FormValue("conversation_id"),
	})
}

// JSON processes a structured payload from the json_data form field.
func (h *Handler) JSON(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("json_data")
	if content == "" {
		h.respondError(w, http.StatusBadRequest, errMissingInput)
		return
	}

	h.route(w, r, pipeline.Input{
		Content:        content,
		Format:         classify.FormatJSON,
		Sender:         r.FormValue("sender"),
		ConversationID: r.FormValue("conversation_id"),
	})
}

// Text processes free text from the text form field, leaving format
// resolution to classification.
func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("text")
	if content == "" {
		h.respondError(w, http.StatusBadRequest, errMissingInput)
		return
	}

	h.route(w, r, pipeline.Input{
		Content:        content,
		Sender:         r.FormValue("sender"),
		ConversationID: r.FormValue("conversation_id"),
	})
}

// PDFText processes already-extracted PDF text from the text form field.
func (h *Handler) PDFText(w http.ResponseWriter, r *http.Request) {
	content := r.FormValue("text")
	if content == "" {
		h.respondError(w, http.StatusBadRequest, errMissingInput)
		return
	}

	h.route(w, r, pipeline.Input{
		Content:        content,
		Format:         classify.FormatPDF,
		Sender:         r.FormValue("sender"),
		ConversationID: r.FormValue("conversation_id"),
	})
}

// PDF processes either an uploaded document from the file form field or
// extracted text from the text form field. Uploaded documents are archived
// concurrently with processing when an archive store is configured.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	input := pipeline.Input{
		Format:         classify.FormatPDF,
		Sender:         r.FormValue("sender"),
		ConversationID: r.FormValue("conversation_id"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err)
			return
		}
		if int64(len(data)) > h.maxUpload {
			h.respondError(w, http.StatusRequestEntityTooLarge, errUploadTooLarge)
			return
		}

		input.Raw = data
		input.SourceHint = header.Filename
		h.routePDF(w, r, input, data, header.Filename)

	case r.FormValue("text") != "":
		input.Content = r.FormValue("text")
		h.route(w, r, input)

	default:
		h.respondError(w, http.StatusBadRequest, errMissingInput)
	}
}

func (h *Handler) route(w http.ResponseWriter, r *http.Request, input pipeline.Input) {
	result, err := h.pipeline.Route(r.Context(), input)
	if err != nil {
		h.respondError(w, pipeline.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true, Result: result})
}

// routePDF runs processing and archival concurrently. An archival failure
// fails the request: a retained copy is part of the intake contract when an
// archive store is configured.
func (h *Handler) routePDF(w http.ResponseWriter, r *http.Request, input pipeline.Input, data []byte, filename string) {
	g, ctx := errgroup.WithContext(r.Context())

	var result any
	g.Go(func() error {
		routed, err := h.pipeline.Route(ctx, input)
		if err != nil {
			return err
		}
		result = routed
		return nil
	})

	if h.archive != nil {
		key := uuid.New().String() + "/" + filename
		g.Go(func() error {
			return h.archive.Archive(ctx, key, bytes.NewReader(data), "application/pdf")
		})
	}

	if err := g.Wait(); err != nil {
		h.respondError(w, pipeline.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Success: true, Result: result})
}

func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("intake request failed", "status", status, "error", err)
	} else {
		h.logger.Warn("intake request rejected", "status", status, "error", err)
	}

	handlers.RespondJSON(w, status, Response{Success: false, Error: err.Error()})
}
