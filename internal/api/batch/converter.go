package batch

import (
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/lifecycle"
)

// BatchResponse is the wire representation of a batch
type BatchResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SourceDialect string `json:"source_dialect"`
	TargetDialect string `json:"target_dialect"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// FileResponse is the wire representation of a batch file
type FileResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Status     string `json:"status"`
	Translated string `json:"translated,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SummaryResponse is the wire representation of a processed batch
type SummaryResponse struct {
	Batch     BatchResponse  `json:"batch"`
	Files     []FileResponse `json:"files"`
	Completed int            `json:"completed"`
	Failed    int            `json:"failed"`
}

// StatusResponse reports the agent lifecycle state
type StatusResponse struct {
	State  string        `json:"state"`
	Stages []StageStatus `json:"stages"`
}

// StageStatus is one recorded startup stage outcome
type StageStatus struct {
	Stage string `json:"stage"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func toBatchResponse(b *entity.Batch) BatchResponse {
	return BatchResponse{
		ID:            b.ID,
		Name:          b.Name,
		SourceDialect: b.SourceDialect,
		TargetDialect: b.TargetDialect,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSummaryResponse(s *entity.BatchSummary) SummaryResponse {
	resp := SummaryResponse{
		Batch:     toBatchResponse(s.Batch),
		Files:     make([]FileResponse, 0, len(s.Files)),
		Completed: s.Completed,
		Failed:    s.Failed,
	}

	for _, f := range s.Files {
		resp.Files = append(resp.Files, FileResponse{
			ID:         f.ID,
			Name:       f.Name,
			Size:       f.Size,
			Status:     string(f.Status),
			Translated: f.Translated,
			Error:      f.Error,
		})
	}

	return resp
}

func toStatusResponse(state lifecycle.State, stages []lifecycle.StageResult) StatusResponse {
	resp := StatusResponse{
		State:  string(state),
		Stages: make([]StageStatus, 0, len(stages)),
	}

	for _, s := range stages {
		st := StageStatus{Stage: string(s.Stage), OK: !s.Failed()}
		if s.Err != nil {
			st.Error = s.Err.Error()
		}
		resp.Stages = append(resp.Stages, st)
	}

	return resp
}
