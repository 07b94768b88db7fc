package fraud

import (
	"fmt"
	"math"

	"swiftflow/internal/swift"
)

// DefaultFraudThreshold is the average risk at which a message is flagged.
const DefaultFraudThreshold = 0.5

// Aggregator deterministically combines per-agent scores into one verdict.
type Aggregator struct {
	threshold float64
}

// NewAggregator builds an aggregator; a non-positive threshold falls back to
// the default.
func NewAggregator(threshold float64) *Aggregator {
	if threshold <= 0 {
		threshold = DefaultFraudThreshold
	}
	return &Aggregator{threshold: threshold}
}

// Aggregate is a pure function of its ordered input: the same score list
// always yields byte-identical output. Empty input is a clean verdict.
func (a *Aggregator) Aggregate(scores []swift.AgentScore) swift.AggregateVerdict {
	if len(scores) == 0 {
		return swift.AggregateVerdict{
			IsFraudulent:      false,
			Confidence:        0,
			TotalRiskScore:    0,
			AggregatedReasons: []string{},
		}
	}

	total := 0.0
	for _, s := range scores {
		total += s.RiskScore
	}
	avg := total / float64(len(scores))

	reasons := []string{}
	for _, s := range scores {
		for _, reason := range s.FraudReasons {
			reasons = append(reasons, fmt.Sprintf("[%s] %s", s.Agent, reason))
		}
	}

	return swift.AggregateVerdict{
		IsFraudulent:      avg >= a.threshold,
		Confidence:        roundTo(avg*100, 2),
		TotalRiskScore:    roundTo(avg, 3),
		AggregatedReasons: reasons,
	}
}

func roundTo(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
