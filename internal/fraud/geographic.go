package fraud

import (
	"fmt"

	"swiftflow/internal/swift"
)

// highRiskCountries are ISO-ish country codes flagged for enhanced scrutiny.
var highRiskCountries = map[string]struct{}{
	"IR": {},
	"KP": {},
	"SY": {},
	"AF": {},
}

// GeographicAgent scores high-risk country involvement inferred from BIC
// positions 4-5. BICs are not validated first: a malformed BIC simply yields
// an empty or nonsensical code that contributes no score unless it happens
// to match the risk set.
type GeographicAgent struct{}

func (a *GeographicAgent) Name() string { return "GeographicRiskAgent" }

func (a *GeographicAgent) Analyze(msg *swift.Message) swift.AgentScore {
	score := swift.AgentScore{
		Agent:        a.Name(),
		FraudReasons: []string{},
		MessageID:    msg.ID,
	}
	risk := 0.0

	if country := swift.CountryCode(msg.SenderBIC); isHighRisk(country) {
		risk += 0.4
		score.FraudReasons = append(score.FraudReasons,
			fmt.Sprintf("High-risk sender country: %s", country))
	}
	if country := swift.CountryCode(msg.ReceiverBIC); isHighRisk(country) {
		risk += 0.4
		score.FraudReasons = append(score.FraudReasons,
			fmt.Sprintf("High-risk receiver country: %s", country))
	}

	score.RiskScore = clamp(risk)
	return score
}

func isHighRisk(country string) bool {
	_, ok := highRiskCountries[country]
	return ok
}
