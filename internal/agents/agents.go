package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SQLAgents is the cooperating set of remotely provisioned translation agents
type SQLAgents struct {
	client        aiproject.Client
	byRole        map[entity.AgentRole]*entity.Agent
	sourceDialect string
	targetDialect string
}

// Create provisions the full agent set on the remote project. Provisioning is
// all-or-nothing: when one agent fails, already created agents are
// best-effort deleted before the error is returned.
func Create(ctx context.Context, cfg BaseConfig) (*SQLAgents, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid agent config: %w", err)
	}

	set := &SQLAgents{
		client:        cfg.ProjectClient,
		byRole:        make(map[entity.AgentRole]*entity.Agent, len(roleOrder)),
		sourceDialect: cfg.SourceDialect,
		targetDialect: cfg.TargetDialect,
	}

	for _, role := range roleOrder {
		agent, err := cfg.ProjectClient.CreateAgent(ctx, cfg.definition(role))
		if err != nil {
			set.rollback(ctx)
			return nil, fmt.Errorf("provision %s agent: %w", role, err)
		}
		set.byRole[role] = agent
	}

	ctxzap.Info(ctx, "agent set provisioned",
		zap.Int("agent_count", len(set.byRole)),
		zap.String("sql_from", cfg.SourceDialect),
		zap.String("sql_to", cfg.TargetDialect),
	)

	return set, nil
}

// rollback deletes whatever was provisioned so far, ignoring errors
func (s *SQLAgents) rollback(ctx context.Context) {
	for role, agent := range s.byRole {
		if err := s.client.DeleteAgent(ctx, agent.ID); err != nil {
			ctxzap.Warn(ctx, "rollback of partially provisioned agent failed",
				zap.String("role", string(role)),
				zap.String("agent_id", agent.ID),
				zap.Error(err),
			)
		}
	}
}

// Agent returns the provisioned agent for a role
func (s *SQLAgents) Agent(role entity.AgentRole) (*entity.Agent, error) {
	agent, ok := s.byRole[role]
	if !ok {
		return nil, entity.ErrAgentNotFound
	}
	return agent, nil
}

// Dialects returns the configured conversion pair
func (s *SQLAgents) Dialects() (from, to string) {
	return s.sourceDialect, s.targetDialect
}

// Translate runs one SQL input through the agent pipeline: migrate, verify,
// and fix once when verification reports problems.
func (s *SQLAgents) Translate(ctx context.Context, sql string) (string, error) {
	migrator, err := s.Agent(entity.AgentRoleMigrator)
	if err != nil {
		return "", err
	}

	migrated, err := s.client.RunAgent(ctx, &entity.AgentRunRequest{AgentID: migrator.ID, Input: sql})
	if err != nil {
		return "", fmt.Errorf("migrate: %w", err)
	}

	verifier, err := s.Agent(entity.AgentRoleSemanticVerifier)
	if err != nil {
		return "", err
	}

	verdict, err := s.client.RunAgent(ctx, &entity.AgentRunRequest{AgentID: verifier.ID, Input: migrated.Output})
	if err != nil {
		return "", fmt.Errorf("verify: %w", err)
	}

	if verdict.Status == "completed" {
		return migrated.Output, nil
	}

	fixer, err := s.Agent(entity.AgentRoleFixer)
	if err != nil {
		return "", err
	}

	fixed, err := s.client.RunAgent(ctx, &entity.AgentRunRequest{
		AgentID: fixer.ID,
		Input:   migrated.Output + "\n-- problems:\n" + verdict.Output,
	})
	if err != nil {
		return "", fmt.Errorf("fix: %w", err)
	}

	return fixed.Output, nil
}

// DeleteAll deletes every provisioned agent. All deletions are attempted
// even when some fail; the errors are joined.
func (s *SQLAgents) DeleteAll(ctx context.Context) error {
	var errs []error

	for role, agent := range s.byRole {
		if err := s.client.DeleteAgent(ctx, agent.ID); err != nil {
			ctxzap.Error(ctx, "failed to delete agent",
				zap.String("role", string(role)),
				zap.String("agent_id", agent.ID),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("delete %s agent: %w", role, err))
		}
	}

	s.byRole = map[entity.AgentRole]*entity.Agent{}

	return errors.Join(errs...)
}

// Count reports how many agents the set currently holds
func (s *SQLAgents) Count() int {
	return len(s.byRole)
}
