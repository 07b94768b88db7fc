// Package fraud implements the rule-based fraud scorers, their deterministic
// aggregation, and the concurrent fan-out scheduler that runs all agents
// against all messages.
package fraud

import "swiftflow/internal/swift"

// Agent scores a single message for fraud risk. Implementations are
// stateless, side-effect free, and never panic on malformed input: shape
// failures contribute zero risk.
type Agent interface {
	// Name identifies the agent in score records and aggregated reasons.
	Name() string

	// Analyze maps one message to a risk score in [0,1] plus
	// human-readable reasons.
	Analyze(msg *swift.Message) swift.AgentScore
}

// DefaultAgents returns the production scorer set. Order matters: the
// scheduler joins results in this submission order so aggregation stays
// deterministic.
func DefaultAgents() []Agent {
	return []Agent{
		&AmountAgent{},
		&PatternAgent{},
		&GeographicAgent{},
	}
}

// clamp keeps a score inside the closed interval [0,1]. Scores are never
// negative by construction, so only the upper bound needs enforcing.
func clamp(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	return score
}
