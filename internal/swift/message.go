// Package swift holds the domain model shared by every processing stage:
// the synthetic SWIFT message, the statuses stages stamp onto it, and the
// per-agent fraud scoring records.
package swift

import "strings"

// MessageType enumerates the supported SWIFT MT codes.
type MessageType = string

const (
	TypeMT103 MessageType = "MT103" // customer credit transfer
	TypeMT202 MessageType = "MT202" // financial institution transfer
)

// ValidationStatus tracks a message through the correction loop.
type ValidationStatus string

const (
	ValidationPending    ValidationStatus = "PENDING"
	ValidationCorrecting ValidationStatus = "CORRECTING"
	ValidationValid      ValidationStatus = "VALID"
	ValidationInvalid    ValidationStatus = "INVALID"
)

// Terminal reports whether the status can no longer change.
func (s ValidationStatus) Terminal() bool {
	return s == ValidationValid || s == ValidationInvalid
}

// FraudStatus is the aggregated fraud verdict for a message.
type FraudStatus string

const (
	FraudClean      FraudStatus = "CLEAN"
	FraudFraudulent FraudStatus = "FRAUDULENT"
)

// Message is a synthetic SWIFT payment message. Stages never remove fields;
// each stage owns and appends its own result fields.
type Message struct {
	ID             string `json:"message_id"`
	Type           string `json:"message_type"`
	Reference      string `json:"reference"`
	Amount         string `json:"amount"` // "<decimal> <currency>" once validated
	Currency       string `json:"currency,omitempty"`
	ValueDate      string `json:"value_date,omitempty"` // YYMMDD
	SenderBIC      string `json:"sender_bic"`
	ReceiverBIC    string `json:"receiver_bic"`
	RemittanceInfo string `json:"remittance_info,omitempty"`

	// Owned by the correction loop.
	ValidationStatus ValidationStatus `json:"validation_status,omitempty"`
	ValidationErrors []string         `json:"validation_errors,omitempty"`

	// Owned by the fraud fan-out. The scheduler stamps all four on every
	// message, so none is omitted when empty: a zero score is a verdict,
	// not an unscored message.
	FraudStatus   FraudStatus  `json:"fraud_status"`
	FraudScore    float64      `json:"fraud_score"`
	FraudReasons  []string     `json:"fraud_reasons"`
	FraudAnalysis []AgentScore `json:"fraud_analysis"`

	// Owned by the chained analysis stage.
	FraudDecision      string  `json:"fraud_decision,omitempty"`
	FraudConfidence    float64 `json:"fraud_confidence,omitempty"`
	FraudJustification string  `json:"fraud_justification,omitempty"`
}

// Patch is a sparse field update returned by the correction oracle. Keys use
// the wire names of Message fields; unknown keys are ignored.
type Patch map[string]string

// Apply merges a correction patch into the message. Keys present in the patch
// overwrite the current value, absent keys are preserved.
func (m *Message) Apply(p Patch) {
	for key, value := range p {
		switch key {
		case "message_type":
			m.Type = value
		case "reference":
			m.Reference = value
		case "amount":
			m.Amount = value
		case "currency":
			m.Currency = value
		case "value_date":
			m.ValueDate = value
		case "sender_bic":
			m.SenderBIC = value
		case "receiver_bic":
			m.ReceiverBIC = value
		case "remittance_info":
			m.RemittanceInfo = value
		}
	}
}

// Clone returns a deep copy so concurrent scoring tasks never share slices
// with the original message.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	clone := *m
	clone.ValidationErrors = cloneStrings(m.ValidationErrors)
	clone.FraudReasons = cloneStrings(m.FraudReasons)
	if len(m.FraudAnalysis) > 0 {
		clone.FraudAnalysis = make([]AgentScore, len(m.FraudAnalysis))
		copy(clone.FraudAnalysis, m.FraudAnalysis)
		for i := range clone.FraudAnalysis {
			clone.FraudAnalysis[i].FraudReasons = cloneStrings(m.FraudAnalysis[i].FraudReasons)
		}
	}
	return &clone
}

// AmountValue returns the numeric token of the amount field, without its
// currency suffix. The second return is false when the field is empty.
func (m *Message) AmountValue() (string, bool) {
	fields := strings.Fields(m.Amount)
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}

// AgentScore is the immutable result one fraud agent produces for one message.
type AgentScore struct {
	Agent        string   `json:"agent"`
	RiskScore    float64  `json:"risk_score"`
	FraudReasons []string `json:"fraud_reasons"`
	MessageID    string   `json:"message_id,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// AggregateVerdict is the deterministic combination of all agent scores for
// one message.
type AggregateVerdict struct {
	IsFraudulent      bool     `json:"is_fraudulent"`
	Confidence        float64  `json:"confidence"`
	TotalRiskScore    float64  `json:"total_risk_score"`
	AggregatedReasons []string `json:"aggregated_reasons"`
}

// ValidationResult is the transient outcome of one evaluation oracle call.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

func cloneStrings(src []string) []string {
	if len(src) == 0 {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
