package fraud

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"swiftflow/internal/swift"
)

// AmountAgent scores transaction amounts. The >10k and round-amount rules
// overlap for many values and deliberately double-count: the thresholds are
// calibration values, not bugs.
type AmountAgent struct{}

func (a *AmountAgent) Name() string { return "AmountAgent" }

func (a *AmountAgent) Analyze(msg *swift.Message) swift.AgentScore {
	score := swift.AgentScore{
		Agent:        a.Name(),
		FraudReasons: []string{},
		MessageID:    msg.ID,
	}

	amount, ok := parseAmount(msg.Amount)
	if !ok {
		return score // unparseable amounts contribute no risk
	}

	risk := 0.0
	if amount > 10_000 {
		risk += 0.3
		score.FraudReasons = append(score.FraudReasons,
			fmt.Sprintf("High amount transaction: %g", amount))
	}
	if amount > 0 && math.Mod(amount, 1000) == 0 {
		risk += 0.2
		score.FraudReasons = append(score.FraudReasons,
			fmt.Sprintf("Suspiciously round amount: %g", amount))
	}
	if amount > 100_000 && math.Mod(amount, 1) != 0 {
		risk += 0.1
		score.FraudReasons = append(score.FraudReasons,
			"Large amount with unusual decimal precision")
	}

	score.RiskScore = clamp(risk)
	return score
}

// parseAmount strips everything except digits and dots before parsing, so
// "15000.00 USD" and "USD 15000.00" both yield 15000.
func parseAmount(raw string) (float64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
