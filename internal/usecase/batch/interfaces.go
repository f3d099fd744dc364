package batch

import (
	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/agents"
)

// AgentSource exposes the published agent set. Absence is an expected state
// (the process can run degraded), not an error.
type AgentSource interface {
	Agents() (*agents.SQLAgents, bool)
}
