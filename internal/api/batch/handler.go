package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/pkg/logger"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/pkg/report"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler serves the batch translation API
type Handler struct {
	usecase   BatchUsecase
	lm        LifecycleReader
	uploadCfg config.FileUploadConfig
	agentCfg  config.AgentConfig
}

func NewHandler(
	usecase BatchUsecase,
	lm LifecycleReader,
	uploadCfg config.FileUploadConfig,
	agentCfg config.AgentConfig,
) *Handler {
	return &Handler{
		usecase:   usecase,
		lm:        lm,
		uploadCfg: uploadCfg,
		agentCfg:  agentCfg,
	}
}

// CreateBatch handles POST /batches
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateBatch")

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}

	req := &entity.CreateBatchRequest{
		Name:  r.FormValue("name"),
		Files: r.MultipartForm.File["files"],
	}

	batch, err := h.usecase.CreateBatch(ctx, req, h.agentCfg.SourceDialect, h.agentCfg.TargetDialect)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	response.Created(w, toBatchResponse(batch))
}

// ListBatches handles GET /batches
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListBatches")

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 50)

	batches, err := h.usecase.ListBatches(ctx, skip, limit)
	if err != nil {
		ctxzap.Error(ctx, "failed to list batches", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to list batches")
		return
	}

	resp := make([]BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, toBatchResponse(b))
	}

	response.Success(w, resp)
}

// GetBatch handles GET /batches/{batch_id}
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetBatch")
	batchID := chi.URLParam(r, "batch_id")

	summary, err := h.usecase.Summary(ctx, batchID)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	response.Success(w, toSummaryResponse(summary))
}

// DeleteBatch handles DELETE /batches/{batch_id}
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteBatch")
	batchID := chi.URLParam(r, "batch_id")

	if err := h.usecase.DeleteBatch(ctx, batchID); err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ProcessBatch handles POST /batches/{batch_id}/process
func (h *Handler) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithBatch(logger.WithAction(r.Context(), "ProcessBatch"), chi.URLParam(r, "batch_id"))
	batchID := chi.URLParam(r, "batch_id")

	summary, err := h.usecase.ProcessBatch(ctx, batchID)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	response.Success(w, toSummaryResponse(summary))
}

// BatchReport handles GET /batches/{batch_id}/report
func (h *Handler) BatchReport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "BatchReport")
	batchID := chi.URLParam(r, "batch_id")

	summary, err := h.usecase.Summary(ctx, batchID)
	if err != nil {
		h.respondDomainError(ctx, w, err)
		return
	}

	pdf, err := report.BatchPDF(summary)
	if err != nil {
		ctxzap.Error(ctx, "failed to render batch report", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=batch-%s.pdf", batchID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// AgentStatus handles GET /agents/status
func (h *Handler) AgentStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, toStatusResponse(h.lm.State(), h.lm.StageResults()))
}

// respondDomainError maps domain errors to status codes. An absent agent set
// is reported as 503 so clients can distinguish degraded mode from bad input.
func (h *Handler) respondDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrAgentsUnavailable):
		ctxzap.Warn(ctx, "request rejected, agents unavailable")
		response.ServiceUnavailable(w, "translation agents unavailable")
	case errors.Is(err, entity.ErrBatchNotFound), errors.Is(err, entity.ErrFileNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrBatchEmpty),
		errors.Is(err, entity.ErrTooManyFiles),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrInvalidExtension):
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		ctxzap.Error(ctx, "request failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return def
	}
	return val
}
