package lifecycle

// State is the lifecycle state of the process-wide agent resources
type State string

const (
	StateUninitialized State = "uninitialized"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateDegraded      State = "degraded"
	StateShuttingDown  State = "shutting_down"
)

// Stage names the startup stages in execution order
type Stage string

const (
	StageCredential Stage = "credential"
	StageClient     Stage = "client"
	StageAgents     Stage = "agents"
)

// StageResult records the outcome of one startup stage, making the
// degraded-but-running condition explicit and inspectable.
type StageResult struct {
	Stage Stage
	Err   error
}

// Failed reports whether the stage failed
func (r StageResult) Failed() bool {
	return r.Err != nil
}
