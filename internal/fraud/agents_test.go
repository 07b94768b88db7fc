package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swiftflow/internal/swift"
)

func baseMessage() *swift.Message {
	return &swift.Message{
		ID:          "MSG001",
		Type:        swift.TypeMT103,
		Reference:   "REF0000010001",
		Amount:      "500.50 USD",
		Currency:    "USD",
		SenderBIC:   "DEUTDEFFXXX",
		ReceiverBIC: "BARCGB22XXX",
	}
}

func TestAmountAgent(t *testing.T) {
	agent := &AmountAgent{}

	t.Run("low odd amount carries no risk", func(t *testing.T) {
		score := agent.Analyze(baseMessage())
		assert.Equal(t, 0.0, score.RiskScore)
		assert.Empty(t, score.FraudReasons)
		assert.Equal(t, "MSG001", score.MessageID)
	})

	t.Run("high round amount stacks both rules", func(t *testing.T) {
		msg := baseMessage()
		msg.Amount = "15000.00 USD"
		score := agent.Analyze(msg)
		assert.Equal(t, 0.5, score.RiskScore)
		assert.Equal(t, []string{
			"High amount transaction: 15000",
			"Suspiciously round amount: 15000",
		}, score.FraudReasons)
	})

	t.Run("large fractional amount adds precision rule", func(t *testing.T) {
		msg := baseMessage()
		msg.Amount = "150000.37 USD"
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.4, score.RiskScore, 1e-9)
		assert.Contains(t, score.FraudReasons, "Large amount with unusual decimal precision")
	})

	t.Run("unparseable amount contributes nothing", func(t *testing.T) {
		msg := baseMessage()
		msg.Amount = "not a number"
		score := agent.Analyze(msg)
		assert.Equal(t, 0.0, score.RiskScore)
	})
}

func TestPatternAgent(t *testing.T) {
	agent := &PatternAgent{}

	t.Run("clean message carries no risk", func(t *testing.T) {
		score := agent.Analyze(baseMessage())
		assert.Equal(t, 0.0, score.RiskScore)
	})

	t.Run("test pattern counted once across both BICs", func(t *testing.T) {
		msg := baseMessage()
		msg.SenderBIC = "TESTUS33XXX"
		msg.ReceiverBIC = "TESTGB22XXX"
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.4, score.RiskScore, 1e-9)
		assert.Equal(t, []string{"Test/fake pattern detected in BIC: TEST"}, score.FraudReasons)
	})

	t.Run("same sender and receiver BIC", func(t *testing.T) {
		msg := baseMessage()
		msg.ReceiverBIC = msg.SenderBIC
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.5, score.RiskScore, 1e-9)
		assert.Contains(t, score.FraudReasons, "Same sender and receiver BIC")
	})

	t.Run("suspicious keywords stack", func(t *testing.T) {
		msg := baseMessage()
		msg.RemittanceInfo = "Urgent payment needed immediately"
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.4, score.RiskScore, 1e-9)
		assert.Equal(t, []string{
			"Suspicious keyword in remittance: urgent",
			"Suspicious keyword in remittance: immediately",
		}, score.FraudReasons)
	})

	t.Run("risk clamps at 1", func(t *testing.T) {
		msg := baseMessage()
		msg.SenderBIC = "TESTUS33999"
		msg.ReceiverBIC = msg.SenderBIC
		msg.RemittanceInfo = "urgent secret confidential, act immediately"
		score := agent.Analyze(msg)
		assert.Equal(t, 1.0, score.RiskScore)
	})
}

func TestGeographicAgent(t *testing.T) {
	agent := &GeographicAgent{}

	t.Run("clean corridor carries no risk", func(t *testing.T) {
		score := agent.Analyze(baseMessage())
		assert.Equal(t, 0.0, score.RiskScore)
	})

	t.Run("high risk sender country", func(t *testing.T) {
		msg := baseMessage()
		msg.SenderBIC = "MELIIRTHXXX"
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.4, score.RiskScore, 1e-9)
		assert.Equal(t, []string{"High-risk sender country: IR"}, score.FraudReasons)
	})

	t.Run("both sides high risk", func(t *testing.T) {
		msg := baseMessage()
		msg.SenderBIC = "MELIIRTHXXX"
		msg.ReceiverBIC = "FOODKPPYXXX"
		score := agent.Analyze(msg)
		assert.InDelta(t, 0.8, score.RiskScore, 1e-9)
	})

	t.Run("malformed BIC contributes nothing", func(t *testing.T) {
		msg := baseMessage()
		msg.SenderBIC = "INV"
		score := agent.Analyze(msg)
		assert.Equal(t, 0.0, score.RiskScore)
	})
}

func TestDefaultAgents(t *testing.T) {
	agents := DefaultAgents()
	names := make([]string, 0, len(agents))
	for _, a := range agents {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"AmountAgent", "PatternAgent", "GeographicRiskAgent"}, names)
}
