package aiproject

import (
	"context"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
)

// Client is a connection to the remote AI project service hosting the agents
type Client interface {
	CreateAgent(ctx context.Context, def entity.AgentDefinition) (*entity.Agent, error)
	DeleteAgent(ctx context.Context, agentID string) error
	RunAgent(ctx context.Context, req *entity.AgentRunRequest) (*entity.AgentRunResponse, error)
	Close() error
}

// Factory creates clients from an acquired credential and a service endpoint
type Factory interface {
	CreateClient(cred *credential.Credential, endpoint string) (Client, error)
}
