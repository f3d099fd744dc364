package batch

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/agents"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memBatchRepo struct {
	batches map[string]*entity.Batch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: map[string]*entity.Batch{}}
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.Batch) (*entity.Batch, error) {
	stored := *b
	stored.Status = entity.BatchStatusCreated
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.batches[b.ID] = &stored
	return &stored, nil
}

func (r *memBatchRepo) Get(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, entity.ErrBatchNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memBatchRepo) List(_ context.Context, _, _ int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.batches {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memBatchRepo) UpdateStatus(_ context.Context, id string, status entity.BatchStatus) error {
	b, ok := r.batches[id]
	if !ok {
		return entity.ErrBatchNotFound
	}
	b.Status = status
	return nil
}

func (r *memBatchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.batches[id]; !ok {
		return entity.ErrBatchNotFound
	}
	delete(r.batches, id)
	return nil
}

type memFileRepo struct {
	files map[string]*entity.BatchFile
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: map[string]*entity.BatchFile{}}
}

func (r *memFileRepo) Create(_ context.Context, f *entity.BatchFile) (*entity.BatchFile, error) {
	stored := *f
	stored.Status = entity.FileStatusUploaded
	r.files[f.ID] = &stored
	return &stored, nil
}

func (r *memFileRepo) Get(_ context.Context, id string) (*entity.BatchFile, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, entity.ErrFileNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *memFileRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.BatchFile, error) {
	var out []*entity.BatchFile
	for _, f := range r.files {
		if f.BatchID == batchID {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memFileRepo) SetResult(_ context.Context, id string, translated string, status entity.FileStatus, fileErr string) error {
	f, ok := r.files[id]
	if !ok {
		return entity.ErrFileNotFound
	}
	f.Translated = translated
	f.Status = status
	f.Error = fileErr
	return nil
}

type stubAgentSource struct {
	set *agents.SQLAgents
}

func (s stubAgentSource) Agents() (*agents.SQLAgents, bool) {
	return s.set, s.set != nil
}

func uploadConfig() config.FileUploadConfig {
	return config.FileUploadConfig{MaxFileSize: 1 << 20, MaxFileCount: 8, MaxUploadSize: 1 << 22}
}

// makeFileHeaders builds real multipart file headers the way a handler would
// receive them.
func makeFileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 22)
	require.NoError(t, err)

	return form.File["files"]
}

func newReadySet(t *testing.T) *agents.SQLAgents {
	t.Helper()

	set, err := agents.Create(context.Background(), agents.BaseConfig{
		ProjectClient:   aiproject.NewMockClient(zap.NewNop()),
		SourceDialect:   "informix",
		TargetDialect:   "tsql",
		ModelDeployment: "gpt-4o",
	})
	require.NoError(t, err)
	return set
}

func TestCreateBatchStoresFiles(t *testing.T) {
	batchRepo := newMemBatchRepo()
	fileRepo := newMemFileRepo()
	uc := NewUsecase(batchRepo, fileRepo, stubAgentSource{}, uploadConfig(), zap.NewNop())

	headers := makeFileHeaders(t, map[string]string{
		"orders.sql":    "SELECT FIRST 5 * FROM orders;",
		"customers.sql": "SELECT * FROM customers;",
	})

	batch, err := uc.CreateBatch(context.Background(), &entity.CreateBatchRequest{Name: "migration-1", Files: headers}, "informix", "tsql")
	require.NoError(t, err)

	assert.Equal(t, "informix", batch.SourceDialect)
	assert.Equal(t, "tsql", batch.TargetDialect)

	files, err := fileRepo.ListByBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestCreateBatchRejectsEmptyAndBadExtension(t *testing.T) {
	uc := NewUsecase(newMemBatchRepo(), newMemFileRepo(), stubAgentSource{}, uploadConfig(), zap.NewNop())

	_, err := uc.CreateBatch(context.Background(), &entity.CreateBatchRequest{Name: "empty"}, "informix", "tsql")
	assert.ErrorIs(t, err, entity.ErrBatchEmpty)

	headers := makeFileHeaders(t, map[string]string{"malware.exe": "nope"})
	_, err = uc.CreateBatch(context.Background(), &entity.CreateBatchRequest{Name: "bad", Files: headers}, "informix", "tsql")
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestProcessBatchUnavailableWhenDegraded(t *testing.T) {
	uc := NewUsecase(newMemBatchRepo(), newMemFileRepo(), stubAgentSource{}, uploadConfig(), zap.NewNop())

	_, err := uc.ProcessBatch(context.Background(), "any")
	assert.ErrorIs(t, err, entity.ErrAgentsUnavailable)
}

func TestProcessBatchTranslatesAllFiles(t *testing.T) {
	batchRepo := newMemBatchRepo()
	fileRepo := newMemFileRepo()
	uc := NewUsecase(batchRepo, fileRepo, stubAgentSource{set: newReadySet(t)}, uploadConfig(), zap.NewNop())

	headers := makeFileHeaders(t, map[string]string{"orders.sql": "SELECT FIRST 5 * FROM orders;"})
	batch, err := uc.CreateBatch(context.Background(), &entity.CreateBatchRequest{Name: "migration-1", Files: headers}, "informix", "tsql")
	require.NoError(t, err)

	summary, err := uc.ProcessBatch(context.Background(), batch.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, entity.BatchStatusCompleted, summary.Batch.Status)

	files, err := fileRepo.ListByBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, entity.FileStatusCompleted, files[0].Status)
	assert.NotEmpty(t, files[0].Translated)
}

func TestProcessBatchMissingBatch(t *testing.T) {
	uc := NewUsecase(newMemBatchRepo(), newMemFileRepo(), stubAgentSource{set: newReadySet(t)}, uploadConfig(), zap.NewNop())

	_, err := uc.ProcessBatch(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrBatchNotFound)
}

func TestSummaryCountsOutcomes(t *testing.T) {
	batchRepo := newMemBatchRepo()
	fileRepo := newMemFileRepo()
	uc := NewUsecase(batchRepo, fileRepo, stubAgentSource{}, uploadConfig(), zap.NewNop())

	headers := makeFileHeaders(t, map[string]string{"a.sql": "SELECT 1;", "b.sql": "SELECT 2;"})
	batch, err := uc.CreateBatch(context.Background(), &entity.CreateBatchRequest{Name: "m", Files: headers}, "informix", "tsql")
	require.NoError(t, err)

	files, err := fileRepo.ListByBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	require.NoError(t, fileRepo.SetResult(context.Background(), files[0].ID, "ok", entity.FileStatusCompleted, ""))
	require.NoError(t, fileRepo.SetResult(context.Background(), files[1].ID, "", entity.FileStatusFailed, "boom"))

	summary, err := uc.Summary(context.Background(), batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Failed)

	_, err = uc.Summary(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrBatchNotFound)
}
