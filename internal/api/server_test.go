package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	batchapi "github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/api/batch"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/lifecycle"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type degradedUsecase struct{}

func (degradedUsecase) CreateBatch(context.Context, *entity.CreateBatchRequest, string, string) (*entity.Batch, error) {
	return nil, entity.ErrAgentsUnavailable
}
func (degradedUsecase) GetBatch(context.Context, string) (*entity.Batch, error) {
	return nil, entity.ErrBatchNotFound
}
func (degradedUsecase) ListBatches(context.Context, int, int) ([]*entity.Batch, error) {
	return nil, nil
}
func (degradedUsecase) DeleteBatch(context.Context, string) error {
	return entity.ErrBatchNotFound
}
func (degradedUsecase) Summary(context.Context, string) (*entity.BatchSummary, error) {
	return nil, entity.ErrBatchNotFound
}
func (degradedUsecase) ProcessBatch(context.Context, string) (*entity.BatchSummary, error) {
	return nil, entity.ErrAgentsUnavailable
}

type degradedLifecycle struct{}

func (degradedLifecycle) State() lifecycle.State { return lifecycle.StateDegraded }
func (degradedLifecycle) StageResults() []lifecycle.StageResult {
	return []lifecycle.StageResult{
		{Stage: lifecycle.StageCredential, Err: context.DeadlineExceeded},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tracing, err := telemetry.Init(context.Background(), config.TelemetryConfig{Enabled: false, ServiceName: "test"})
	require.NoError(t, err)

	handler := batchapi.NewHandler(
		degradedUsecase{},
		degradedLifecycle{},
		config.FileUploadConfig{MaxFileSize: 1 << 20, MaxFileCount: 4, MaxUploadSize: 1 << 22},
		config.AgentConfig{SourceDialect: "informix", TargetDialect: "tsql"},
	)

	return SetupRouter(handler, tracing, zap.NewNop())
}

func TestHealthAlwaysHealthy(t *testing.T) {
	// The process is fully degraded here; /health must not care
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestProcessReturns503WhenDegraded(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/batches/b1/process", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "translation agents unavailable")
}

func TestAgentStatusReportsDegradedState(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agents/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"degraded"`)
	assert.Contains(t, rec.Body.String(), `"stage":"credential"`)
}

func TestUnknownBatchReturns404(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batches/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflightAllowsAnyOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/batches", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
