package fraud

import (
	"fmt"
	"strings"

	"swiftflow/internal/swift"
)

// highRiskPatterns are tokens that mark test or placeholder counterparties.
var highRiskPatterns = []string{"TEST", "FAKE", "DEMO", "999", "000000"}

// suspiciousKeywords are remittance-text phrases associated with social
// engineering pressure.
var suspiciousKeywords = []string{"urgent", "immediately", "secret", "confidential"}

// PatternAgent scores test/fake BIC patterns, self-transfers, and
// suspicious remittance wording.
type PatternAgent struct{}

func (a *PatternAgent) Name() string { return "PatternAgent" }

func (a *PatternAgent) Analyze(msg *swift.Message) swift.AgentScore {
	score := swift.AgentScore{
		Agent:        a.Name(),
		FraudReasons: []string{},
		MessageID:    msg.ID,
	}
	risk := 0.0

	senderUpper := strings.ToUpper(msg.SenderBIC)
	receiverUpper := strings.ToUpper(msg.ReceiverBIC)

	// Each pattern counts once even when present in both BICs; distinct
	// patterns stack.
	for _, pattern := range highRiskPatterns {
		if strings.Contains(senderUpper, pattern) || strings.Contains(receiverUpper, pattern) {
			risk += 0.4
			score.FraudReasons = append(score.FraudReasons,
				fmt.Sprintf("Test/fake pattern detected in BIC: %s", pattern))
		}
	}

	if msg.SenderBIC != "" && msg.SenderBIC == msg.ReceiverBIC {
		risk += 0.5
		score.FraudReasons = append(score.FraudReasons, "Same sender and receiver BIC")
	}

	remittance := strings.ToLower(msg.RemittanceInfo)
	for _, keyword := range suspiciousKeywords {
		if strings.Contains(remittance, keyword) {
			risk += 0.2
			score.FraudReasons = append(score.FraudReasons,
				fmt.Sprintf("Suspicious keyword in remittance: %s", keyword))
		}
	}

	score.RiskScore = clamp(risk)
	return score
}
