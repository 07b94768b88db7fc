package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swiftflow/internal/swift"
)

func TestNewAggregatorDefaultsNonPositiveThreshold(t *testing.T) {
	scores := []swift.AgentScore{{Agent: "AmountAgent", RiskScore: 0.5}}

	// Configured thresholds are validated to be positive, so a non-positive
	// value only reaches here programmatically and means "use the default".
	assert.True(t, NewAggregator(0).Aggregate(scores).IsFraudulent)
	assert.False(t, NewAggregator(-1).Aggregate([]swift.AgentScore{{RiskScore: 0.4}}).IsFraudulent)
}

func TestAggregateEmptyIsClean(t *testing.T) {
	verdict := NewAggregator(0.5).Aggregate(nil)
	assert.Equal(t, swift.AggregateVerdict{
		IsFraudulent:      false,
		Confidence:        0,
		TotalRiskScore:    0,
		AggregatedReasons: []string{},
	}, verdict)
}

func TestAggregateAveragesAndPrefixesReasons(t *testing.T) {
	scores := []swift.AgentScore{
		{Agent: "AmountAgent", RiskScore: 0.3, FraudReasons: []string{"High amount transaction: 15000"}},
		{Agent: "PatternAgent", RiskScore: 0.6, FraudReasons: []string{"Same sender and receiver BIC"}},
		{Agent: "GeographicRiskAgent", RiskScore: 0.9, FraudReasons: []string{"High-risk sender country: IR"}},
	}

	verdict := NewAggregator(0.5).Aggregate(scores)

	assert.True(t, verdict.IsFraudulent)
	assert.Equal(t, 60.0, verdict.Confidence)
	assert.Equal(t, 0.6, verdict.TotalRiskScore)
	assert.Equal(t, []string{
		"[AmountAgent] High amount transaction: 15000",
		"[PatternAgent] Same sender and receiver BIC",
		"[GeographicRiskAgent] High-risk sender country: IR",
	}, verdict.AggregatedReasons)
}

func TestAggregateBelowThresholdIsClean(t *testing.T) {
	scores := []swift.AgentScore{
		{Agent: "AmountAgent", RiskScore: 0.3},
		{Agent: "PatternAgent", RiskScore: 0.0},
		{Agent: "GeographicRiskAgent", RiskScore: 0.0},
	}

	verdict := NewAggregator(0.5).Aggregate(scores)
	assert.False(t, verdict.IsFraudulent)
	assert.Equal(t, 10.0, verdict.Confidence)
	assert.Equal(t, 0.1, verdict.TotalRiskScore)
}

func TestAggregateThresholdInclusive(t *testing.T) {
	scores := []swift.AgentScore{{Agent: "AmountAgent", RiskScore: 0.5}}
	assert.True(t, NewAggregator(0.5).Aggregate(scores).IsFraudulent)
}

func TestAggregateDeterministic(t *testing.T) {
	scores := []swift.AgentScore{
		{Agent: "AmountAgent", RiskScore: 0.3, FraudReasons: []string{"a"}},
		{Agent: "PatternAgent", RiskScore: 0.7, FraudReasons: []string{"b", "c"}},
	}

	agg := NewAggregator(0.5)
	first := agg.Aggregate(scores)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, agg.Aggregate(scores))
	}
}
