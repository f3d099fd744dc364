package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/agents"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/credential"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	err   error
	calls int
}

func (p *fakeProvider) Acquire(_ context.Context, clientID string) (*credential.Credential, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &credential.Credential{Token: "test-token", ClientID: clientID}, nil
}

type fakeClient struct {
	mu              sync.Mutex
	createCalls     int
	deleteCalls     int
	closeCalls      int
	failCreateAfter int // fail the Nth create (1-based); 0 disables
	failDelete      bool
}

func (c *fakeClient) CreateAgent(_ context.Context, def entity.AgentDefinition) (*entity.Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.createCalls++
	if c.failCreateAfter > 0 && c.createCalls >= c.failCreateAfter {
		return nil, errors.New("provisioning rejected")
	}
	return &entity.Agent{ID: fmt.Sprintf("agent-%d", c.createCalls), Name: def.Name}, nil
}

func (c *fakeClient) DeleteAgent(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteCalls++
	if c.failDelete {
		return errors.New("delete rejected")
	}
	return nil
}

func (c *fakeClient) RunAgent(_ context.Context, _ *entity.AgentRunRequest) (*entity.AgentRunResponse, error) {
	return &entity.AgentRunResponse{Status: "completed"}, nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeCalls++
	return nil
}

type fakeFactory struct {
	client *fakeClient
	err    error
	calls  int
}

func (f *fakeFactory) CreateClient(_ *credential.Credential, _ string) (aiproject.Client, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.client, nil
}

func testAgentCfg() config.AgentConfig {
	return config.AgentConfig{
		SourceDialect:   "informix",
		TargetDialect:   "tsql",
		ModelDeployment: "gpt-4o",
		SetupTimeout:    time.Minute,
		CleanupTimeout:  time.Minute,
	}
}

func newTestManager(provider *fakeProvider, factory *fakeFactory, opts ...Option) *Manager {
	return NewManager(
		config.CredentialConfig{ClientID: "client-1"},
		config.AIProjectConfig{Endpoint: "https://example.test"},
		testAgentCfg(),
		provider,
		factory,
		zap.NewNop(),
		opts...,
	)
}

func TestStartupSuccess(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client})

	m.Startup(context.Background())

	assert.Equal(t, StateReady, m.State())

	set, ok := m.Agents()
	require.True(t, ok)
	assert.Equal(t, 5, set.Count())
	assert.Equal(t, 5, client.createCalls)

	for _, stage := range m.StageResults() {
		assert.False(t, stage.Failed(), "stage %s should succeed", stage.Stage)
	}
}

func TestStartupCredentialFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("identity endpoint unreachable")}
	factory := &fakeFactory{client: &fakeClient{}}
	m := newTestManager(provider, factory)

	m.Startup(context.Background())

	assert.Equal(t, StateDegraded, m.State())

	_, ok := m.Agents()
	assert.False(t, ok)
	assert.Equal(t, 0, factory.calls, "client must not be created without a credential")

	stages := m.StageResults()
	require.Len(t, stages, 1)
	assert.Equal(t, StageCredential, stages[0].Stage)
	assert.True(t, stages[0].Failed())
}

func TestStartupClientFailure(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &fakeFactory{err: errors.New("endpoint refused")})

	m.Startup(context.Background())

	assert.Equal(t, StateDegraded, m.State())

	_, ok := m.Agents()
	assert.False(t, ok)

	stages := m.StageResults()
	require.Len(t, stages, 2)
	assert.False(t, stages[0].Failed())
	assert.Equal(t, StageClient, stages[1].Stage)
	assert.True(t, stages[1].Failed())
}

func TestStartupAgentCreationFailure(t *testing.T) {
	client := &fakeClient{failCreateAfter: 3}
	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client})

	m.Startup(context.Background())

	assert.Equal(t, StateDegraded, m.State())

	_, ok := m.Agents()
	assert.False(t, ok)

	// The two successfully provisioned agents are rolled back
	assert.Equal(t, 2, client.deleteCalls)
}

func TestShutdownUninitializedIsNoop(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client})

	m.Shutdown(context.Background())

	assert.Equal(t, StateUninitialized, m.State())
	assert.Equal(t, 0, client.deleteCalls)
	assert.Equal(t, 0, client.closeCalls)
}

func TestShutdownAfterReady(t *testing.T) {
	client := &fakeClient{}
	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client})

	m.Startup(context.Background())
	require.Equal(t, StateReady, m.State())

	m.Shutdown(context.Background())

	assert.Equal(t, StateUninitialized, m.State())
	assert.Equal(t, 5, client.deleteCalls)
	assert.Equal(t, 1, client.closeCalls)

	_, ok := m.Agents()
	assert.False(t, ok)
}

func TestShutdownDeleteFailureStillClosesClient(t *testing.T) {
	client := &fakeClient{failDelete: true}
	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client})

	m.Startup(context.Background())
	require.Equal(t, StateReady, m.State())

	m.Shutdown(context.Background())

	assert.Equal(t, 5, client.deleteCalls, "every deletion must be attempted")
	assert.Equal(t, 1, client.closeCalls, "close must run despite deletion failures")
	assert.Equal(t, StateUninitialized, m.State())
}

func TestStartupWithStubbedAgentFactory(t *testing.T) {
	client := &fakeClient{}
	stub, err := agents.Create(context.Background(), agents.BaseConfig{
		ProjectClient:   client,
		SourceDialect:   "informix",
		TargetDialect:   "tsql",
		ModelDeployment: "gpt-4o",
	})
	require.NoError(t, err)

	m := newTestManager(&fakeProvider{}, &fakeFactory{client: client},
		WithAgentFactory(func(context.Context, agents.BaseConfig) (*agents.SQLAgents, error) {
			return stub, nil
		}),
	)

	m.Startup(context.Background())

	set, ok := m.Agents()
	require.True(t, ok)
	assert.Same(t, stub, set)

	m.Shutdown(context.Background())

	_, ok = m.Agents()
	assert.False(t, ok)
}
