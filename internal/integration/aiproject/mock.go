package aiproject

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockClient is an in-memory AI project client for local development
type MockClient struct {
	mu     sync.Mutex
	agents map[string]entity.AgentDefinition
	logger *zap.Logger
}

var _ Client = &MockClient{}

// MockFactory always hands out the same MockClient
type MockFactory struct {
	client *MockClient
}

var _ Factory = &MockFactory{}

func NewMockFactory(logger *zap.Logger) *MockFactory {
	return &MockFactory{client: NewMockClient(logger)}
}

func (f *MockFactory) CreateClient(_ *credential.Credential, _ string) (Client, error) {
	return f.client, nil
}

func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		agents: make(map[string]entity.AgentDefinition),
		logger: logger,
	}
}

// CreateAgent registers the agent in memory
func (m *MockClient) CreateAgent(ctx context.Context, def entity.AgentDefinition) (*entity.Agent, error) {
	ctxzap.Info(ctx, "[MOCK] creating agent", zap.String("name", def.Name))

	m.mu.Lock()
	defer m.mu.Unlock()

	id := "mock-agent-" + uuid.New().String()
	m.agents[id] = def

	return &entity.Agent{ID: id, Name: def.Name, Model: def.Model}, nil
}

// DeleteAgent removes the agent from memory
func (m *MockClient) DeleteAgent(ctx context.Context, agentID string) error {
	ctxzap.Info(ctx, "[MOCK] deleting agent", zap.String("agent_id", agentID))

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.agents[agentID]; !ok {
		return entity.ErrAgentNotFound
	}
	delete(m.agents, agentID)

	return nil
}

// RunAgent echoes the input back wrapped in a comment, which is enough to
// exercise the batch pipeline end to end without a remote service.
func (m *MockClient) RunAgent(ctx context.Context, req *entity.AgentRunRequest) (*entity.AgentRunResponse, error) {
	ctxzap.Info(ctx, "[MOCK] running agent", zap.String("agent_id", req.AgentID))

	m.mu.Lock()
	def, ok := m.agents[req.AgentID]
	m.mu.Unlock()

	if !ok {
		return nil, entity.ErrAgentNotFound
	}

	output := fmt.Sprintf("-- converted by %s\n%s", def.Name, strings.TrimSpace(req.Input))

	return &entity.AgentRunResponse{Output: output, Status: "completed"}, nil
}

// Close is a no-op for the in-memory client
func (m *MockClient) Close() error {
	return nil
}

// AgentCount reports how many agents are currently provisioned
func (m *MockClient) AgentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.agents)
}
