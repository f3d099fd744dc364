package aiproject

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	pkghttp "github.com/aprendis543/Modernize-your-code-solution-accelerator/pkg/http"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector implements Client over the AI project service HTTP API
type Connector struct {
	config    config.AIProjectConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

var _ Client = &Connector{}

// ConnectorFactory builds Connectors bound to the configured service
type ConnectorFactory struct {
	cfg    config.AIProjectConfig
	logger *zap.Logger
}

var _ Factory = &ConnectorFactory{}

func NewConnectorFactory(cfg config.AIProjectConfig, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{cfg: cfg, logger: logger}
}

// CreateClient builds a client that authenticates every request with the
// given credential. An expired credential fails the request rather than
// sending an unauthenticated call.
func (f *ConnectorFactory) CreateClient(cred *credential.Credential, endpoint string) (Client, error) {
	if !cred.Valid() {
		return nil, entity.ErrCredentialExpired
	}

	conn := pkghttp.NewConnector(
		&pkghttp.ConnectorConfig{BaseURL: endpoint, Logger: f.logger},
		pkghttp.WithRequestTimeout(f.cfg.RequestTimeout),
		pkghttp.WithConnTimeout(f.cfg.ConnTimeout),
		pkghttp.WithKeepAlive(f.cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(f.cfg.IdleConnTimeout),
		pkghttp.WithResponseHeaderTimeout(f.cfg.ResponseHeaderTimeout),
		pkghttp.WithRequestLogging(),
		pkghttp.WithTokenSource(func() (string, error) {
			if !cred.Valid() {
				return "", entity.ErrCredentialExpired
			}
			return cred.Token, nil
		}),
	)

	return &Connector{
		config:    f.cfg,
		connector: conn,
		logger:    f.logger,
	}, nil
}

// CreateAgent provisions an agent on the remote project
func (c *Connector) CreateAgent(ctx context.Context, def entity.AgentDefinition) (*entity.Agent, error) {
	ctxzap.Info(ctx, "creating remote agent", zap.String("name", def.Name), zap.String("model", def.Model))

	agent, err := retry.DoWithData(func() (*entity.Agent, error) {
		var resp entity.Agent
		if err := c.connector.DoRequest(ctx, http.MethodPost, "/assistants", def, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	}, c.retryOptions(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("create agent %q: %w", def.Name, err)
	}

	if agent.ID == "" {
		return nil, fmt.Errorf("create agent %q: service returned empty agent id", def.Name)
	}

	ctxzap.Info(ctx, "remote agent created", zap.String("name", def.Name), zap.String("agent_id", agent.ID))

	return agent, nil
}

// DeleteAgent removes a provisioned agent from the remote project
func (c *Connector) DeleteAgent(ctx context.Context, agentID string) error {
	ctxzap.Info(ctx, "deleting remote agent", zap.String("agent_id", agentID))

	err := retry.Do(func() error {
		return c.connector.DoRequest(ctx, http.MethodDelete, "/assistants/"+agentID, nil, nil)
	}, c.retryOptions(ctx)...)
	if err != nil {
		return fmt.Errorf("delete agent %s: %w", agentID, err)
	}

	return nil
}

// RunAgent submits one input to an agent and waits for its output
func (c *Connector) RunAgent(ctx context.Context, req *entity.AgentRunRequest) (*entity.AgentRunResponse, error) {
	ctxzap.Info(ctx, "running remote agent", zap.String("agent_id", req.AgentID), zap.Int("input_length", len(req.Input)))

	var resp entity.AgentRunResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, "/assistants/"+req.AgentID+"/runs", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("run agent %s: %w", req.AgentID, err)
	}

	return &resp, nil
}

// Close releases the connection to the remote service
func (c *Connector) Close() error {
	c.connector.Close()
	return nil
}

func (c *Connector) retryOptions(ctx context.Context) []retry.Option {
	opts := c.config.Retry.ToRetryOptions()
	return append(opts,
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			ctxzap.Warn(ctx, "retrying AI project request", zap.Uint("attempt", n), zap.Error(err))
		}),
	)
}
