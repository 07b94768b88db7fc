// Package chain runs the five-stage prompt-chaining fraud analysis: each
// stage feeds every prior stage's findings forward, and the final reviewer's
// decisions are annotated back onto the messages. The model is an opaque
// oracle; a failed stage yields an empty result and the chain continues.
package chain

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"swiftflow/internal/swift"
)

// Chatter is the narrow LLM contract the chain consumes.
type Chatter interface {
	ChatJSON(ctx context.Context, system, user string) (json.RawMessage, error)
}

// Results carries each stage's raw findings, keyed the way downstream report
// consumers expect them.
type Results struct {
	InitialScreening  json.RawMessage `json:"initial_screening,omitempty"`
	TechnicalAnalysis json.RawMessage `json:"technical_analysis,omitempty"`
	RiskAssessment    json.RawMessage `json:"risk_assessment,omitempty"`
	ComplianceReview  json.RawMessage `json:"compliance_review,omitempty"`
	FinalReview       json.RawMessage `json:"final_review,omitempty"`
}

// FinalDecision is one message's verdict from the final reviewer stage.
type FinalDecision struct {
	MessageID     string  `json:"message_id"`
	Decision      string  `json:"decision"` // APPROVE | HOLD | REJECT
	Confidence    float64 `json:"confidence"`
	Justification string  `json:"justification"`
}

type finalReview struct {
	FinalDecisions []FinalDecision `json:"final_decisions"`
}

// Analyzer chains the five analysis agents over one batch.
type Analyzer struct {
	client Chatter
	logger zerolog.Logger
}

// AnalyzerOption configures the Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the analyzer logger.
func WithLogger(logger zerolog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer constructs the chained analyzer.
func NewAnalyzer(client Chatter, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client: client,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Process runs the complete chain and annotates final decisions onto the
// messages. It never fails the batch: stage errors produce empty results.
func (a *Analyzer) Process(ctx context.Context, messages []*swift.Message) Results {
	a.logger.Info().Int("messages", len(messages)).Msg("starting chained fraud analysis")

	payload, err := json.Marshal(messages)
	if err != nil {
		a.logger.Error().Err(err).Msg("marshal batch for analysis chain")
		return Results{}
	}

	var results Results

	results.InitialScreening = a.callStage(ctx, "initial_screening",
		screenerSystemPrompt, screenerUserPrompt(payload))

	results.TechnicalAnalysis = a.callStage(ctx, "technical_analysis",
		technicalSystemPrompt, technicalUserPrompt(payload, results.InitialScreening))

	results.RiskAssessment = a.callStage(ctx, "risk_assessment",
		riskSystemPrompt, riskUserPrompt(payload, a.chainSoFar(results)))

	results.ComplianceReview = a.callStage(ctx, "compliance_review",
		complianceSystemPrompt, complianceUserPrompt(payload, a.chainSoFar(results)))

	results.FinalReview = a.callStage(ctx, "final_review",
		finalReviewerSystemPrompt, finalReviewerUserPrompt(payload, a.chainSoFar(results)))

	a.annotateDecisions(messages, results.FinalReview)

	a.logger.Info().Msg("chained fraud analysis complete")
	return results
}

func (a *Analyzer) callStage(ctx context.Context, stage, system, user string) json.RawMessage {
	a.logger.Debug().Str("stage", stage).Msg("running chain stage")

	raw, err := a.client.ChatJSON(ctx, system, user)
	if err != nil {
		a.logger.Warn().Err(err).Str("stage", stage).Msg("chain stage failed, continuing with empty result")
		return nil
	}
	return raw
}

func (a *Analyzer) chainSoFar(results Results) []byte {
	payload, err := json.Marshal(results)
	if err != nil {
		return []byte("{}")
	}
	return payload
}

// annotateDecisions copies the final reviewer's verdicts onto the messages
// by ID. Messages the reviewer skipped are left untouched.
func (a *Analyzer) annotateDecisions(messages []*swift.Message, raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}

	var review finalReview
	if err := json.Unmarshal(raw, &review); err != nil {
		a.logger.Warn().Err(err).Msg("decode final review decisions")
		return
	}

	byID := make(map[string]FinalDecision, len(review.FinalDecisions))
	for _, d := range review.FinalDecisions {
		byID[d.MessageID] = d
	}

	for _, msg := range messages {
		if decision, ok := byID[msg.ID]; ok {
			msg.FraudDecision = decision.Decision
			msg.FraudConfidence = decision.Confidence
			msg.FraudJustification = decision.Justification
		}
	}
}
