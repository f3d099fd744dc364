package agents

import (
	"fmt"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/entity"
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/integration/aiproject"
)

// BaseConfig describes the agent set to provision: the project client it
// lives on and the SQL dialect pair the agents translate between.
type BaseConfig struct {
	ProjectClient   aiproject.Client
	SourceDialect   string
	TargetDialect   string
	ModelDeployment string
}

func (c BaseConfig) validate() error {
	if c.ProjectClient == nil {
		return fmt.Errorf("project client is required")
	}
	if c.SourceDialect == "" || c.TargetDialect == "" {
		return fmt.Errorf("source and target dialects are required")
	}
	return nil
}

// roleOrder fixes the provisioning order so partial-failure cleanup is deterministic
var roleOrder = []entity.AgentRole{
	entity.AgentRoleMigrator,
	entity.AgentRolePicker,
	entity.AgentRoleSyntaxChecker,
	entity.AgentRoleSemanticVerifier,
	entity.AgentRoleFixer,
}

func (c BaseConfig) definition(role entity.AgentRole) entity.AgentDefinition {
	return entity.AgentDefinition{
		Name:         fmt.Sprintf("sql-%s-%s-to-%s", role, c.SourceDialect, c.TargetDialect),
		Model:        c.ModelDeployment,
		Instructions: instructions(role, c.SourceDialect, c.TargetDialect),
	}
}

func instructions(role entity.AgentRole, from, to string) string {
	switch role {
	case entity.AgentRoleMigrator:
		return fmt.Sprintf("Translate the given %s SQL into equivalent %s SQL. Preserve semantics. Output only SQL.", from, to)
	case entity.AgentRolePicker:
		return fmt.Sprintf("Given several candidate %s translations, pick the best one. Output only the chosen SQL.", to)
	case entity.AgentRoleSyntaxChecker:
		return fmt.Sprintf("Check the given %s SQL for syntax errors. Report 'completed' if valid, otherwise list the errors.", to)
	case entity.AgentRoleSemanticVerifier:
		return fmt.Sprintf("Verify the %s SQL preserves the behavior of the original %s SQL. Report 'completed' or the discrepancies.", to, from)
	case entity.AgentRoleFixer:
		return fmt.Sprintf("Fix the reported problems in the given %s SQL. Output only the corrected SQL.", to)
	default:
		return ""
	}
}
