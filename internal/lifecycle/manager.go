package lifecycle

import (
	"context"
	"sync"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/agents"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
	"go.uber.org/zap"
)

// AgentFactory creates the agent set. Injectable so tests can stub the
// remote provisioning step.
type AgentFactory func(ctx context.Context, cfg agents.BaseConfig) (*agents.SQLAgents, error)

// Manager coordinates the process-wide agent resources across the server's
// lifetime. Startup runs once before the listener accepts requests and
// Shutdown once after it stops; request handlers only read the published
// state. Startup failures are recorded and swallowed so the server still
// serves, with the agent set simply absent.
type Manager struct {
	clientID  string
	endpoint  string
	agentCfg  config.AgentConfig
	provider  credential.Provider
	factory   aiproject.Factory
	createSet AgentFactory
	logger    *zap.Logger

	mu     sync.RWMutex
	state  State
	stages []StageResult
	agents *agents.SQLAgents
	client aiproject.Client
}

// Option customizes a Manager
type Option func(*Manager)

// WithAgentFactory replaces the default agent set factory
func WithAgentFactory(f AgentFactory) Option {
	return func(m *Manager) { m.createSet = f }
}

func NewManager(
	credCfg config.CredentialConfig,
	projectCfg config.AIProjectConfig,
	agentCfg config.AgentConfig,
	provider credential.Provider,
	factory aiproject.Factory,
	logger *zap.Logger,
	opts ...Option,
) *Manager {
	m := &Manager{
		clientID:  credCfg.ClientID,
		endpoint:  projectCfg.Endpoint,
		agentCfg:  agentCfg,
		provider:  provider,
		factory:   factory,
		createSet: agents.Create,
		logger:    logger,
		state:     StateUninitialized,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Startup acquires a credential, connects to the AI project service and
// provisions the agent set. Any stage failure is logged and recorded; the
// error never propagates so the server starts regardless.
func (m *Manager) Startup(ctx context.Context) {
	m.setState(StateInitializing)
	m.logger.Info("initializing SQL agents",
		zap.String("sql_from", m.agentCfg.SourceDialect),
		zap.String("sql_to", m.agentCfg.TargetDialect),
	)

	cred, err := m.provider.Acquire(ctx, m.clientID)
	m.recordStage(StageCredential, err)
	if err != nil {
		m.logger.Error("failed to acquire credential, starting degraded", zap.Error(err))
		m.setState(StateDegraded)
		return
	}

	client, err := m.factory.CreateClient(cred, m.endpoint)
	m.recordStage(StageClient, err)
	if err != nil {
		m.logger.Error("failed to create AI project client, starting degraded", zap.Error(err))
		m.setState(StateDegraded)
		return
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	setupCtx, cancel := context.WithTimeout(ctx, m.agentCfg.SetupTimeout)
	defer cancel()

	set, err := m.createSet(setupCtx, agents.BaseConfig{
		ProjectClient:   client,
		SourceDialect:   m.agentCfg.SourceDialect,
		TargetDialect:   m.agentCfg.TargetDialect,
		ModelDeployment: m.agentCfg.ModelDeployment,
	})
	m.recordStage(StageAgents, err)
	if err != nil {
		m.logger.Error("failed to create SQL agents, starting degraded", zap.Error(err))
		m.setState(StateDegraded)
		return
	}

	m.mu.Lock()
	m.agents = set
	m.state = StateReady
	m.mu.Unlock()

	m.logger.Info("SQL agents initialized successfully", zap.Int("agent_count", set.Count()))
}

// Shutdown deletes the provisioned agents and closes the client. Cleanup is
// best-effort: every step is attempted and failures only get logged. Calling
// it without a prior successful startup is a safe no-op.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	set := m.agents
	client := m.client
	m.agents = nil
	m.client = nil
	m.state = StateShuttingDown
	m.mu.Unlock()

	if set != nil {
		m.logger.Info("cleaning up SQL agents")

		cleanupCtx, cancel := context.WithTimeout(ctx, m.agentCfg.CleanupTimeout)
		if err := set.DeleteAll(cleanupCtx); err != nil {
			m.logger.Error("error during agent cleanup", zap.Error(err))
		} else {
			m.logger.Info("SQL agents cleaned up successfully")
		}
		cancel()
	}

	if client != nil {
		if err := client.Close(); err != nil {
			m.logger.Error("error closing AI project client", zap.Error(err))
		}
	}

	m.setState(StateUninitialized)
}

// Agents returns the published agent set. The second return is false while
// the process is degraded or not yet initialized; callers must treat that as
// an expected condition, not an error.
func (m *Manager) Agents() (*agents.SQLAgents, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.agents, m.agents != nil
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// StageResults returns the recorded startup stage outcomes in execution order
func (m *Manager) StageResults() []StageResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StageResult, len(m.stages))
	copy(out, m.stages)
	return out
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) recordStage(stage Stage, err error) {
	m.mu.Lock()
	m.stages = append(m.stages, StageResult{Stage: stage, Err: err})
	m.mu.Unlock()
}
