package entity

// AgentRole identifies one of the cooperating translation agents
type AgentRole string

const (
	AgentRoleMigrator         AgentRole = "migrator"
	AgentRolePicker           AgentRole = "picker"
	AgentRoleSyntaxChecker    AgentRole = "syntax_checker"
	AgentRoleSemanticVerifier AgentRole = "semantic_verifier"
	AgentRoleFixer            AgentRole = "fixer"
)

// AgentDefinition describes an agent to be provisioned on the remote project
type AgentDefinition struct {
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

// Agent is a remotely provisioned agent handle
type Agent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

// AgentRunRequest asks a provisioned agent to process one input
type AgentRunRequest struct {
	AgentID string `json:"agent_id"`
	Input   string `json:"input"`
}

// AgentRunResponse is the agent's output for a single run
type AgentRunResponse struct {
	Output string `json:"output"`
	Status string `json:"status"`
}
