package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"swiftflow/internal/swift"
)

//go:generate mockgen -source=oracle.go -destination=mocks/mocks.go -package=mocks Evaluator,Corrector

// ErrOracleUnavailable wraps evaluation/correction call failures. The loop
// treats it as "no information gained this iteration", never as fatal.
var ErrOracleUnavailable = errors.New("validation oracle unavailable")

// Evaluator is the evaluation oracle: full message in, verdict plus ordered
// error list out.
type Evaluator interface {
	Evaluate(ctx context.Context, msg *swift.Message) (swift.ValidationResult, error)
}

// Corrector is the correction oracle: message plus error list in, sparse
// field patch out.
type Corrector interface {
	Correct(ctx context.Context, msg *swift.Message, errs []string) (swift.Patch, error)
}

// ChatClient is the narrow LLM contract the oracles consume. swiftflow/internal/llm.Client
// satisfies it; tests substitute deterministic stubs.
type ChatClient interface {
	ChatJSON(ctx context.Context, system, user string) (json.RawMessage, error)
}

// RuleEvaluator is the deterministic evaluation oracle backed by the
// standards table. It doubles as the offline fallback when no LLM is
// configured, so the pipeline never depends on the model for correctness.
type RuleEvaluator struct {
	standards Standards
}

func NewRuleEvaluator(standards Standards) *RuleEvaluator {
	return &RuleEvaluator{standards: standards}
}

func (e *RuleEvaluator) Evaluate(_ context.Context, msg *swift.Message) (swift.ValidationResult, error) {
	return e.standards.Evaluate(msg), nil
}

// NoopCorrector proposes no field changes. Used when no model is configured;
// the loop's local deterministic repairs still run after it.
type NoopCorrector struct{}

func (NoopCorrector) Correct(context.Context, *swift.Message, []string) (swift.Patch, error) {
	return swift.Patch{}, nil
}

// LLMEvaluator asks the model to assess a message and parses its JSON
// verdict. Call failures degrade to ErrOracleUnavailable.
type LLMEvaluator struct {
	client ChatClient
}

func NewLLMEvaluator(client ChatClient) *LLMEvaluator {
	return &LLMEvaluator{client: client}
}

const evaluatorSystemPrompt = `You are a SWIFT validation expert.
Evaluate the given SWIFT message and identify ALL validation issues
(format, currency, missing fields).
Return JSON strictly in this format:
{"is_valid": true | false, "errors": ["error1", "error2"]}`

func (e *LLMEvaluator) Evaluate(ctx context.Context, msg *swift.Message) (swift.ValidationResult, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return swift.ValidationResult{}, fmt.Errorf("%w: marshal message: %v", ErrOracleUnavailable, err)
	}

	raw, err := e.client.ChatJSON(ctx, evaluatorSystemPrompt, fmt.Sprintf("Message:\n%s", payload))
	if err != nil {
		return swift.ValidationResult{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	var result swift.ValidationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return swift.ValidationResult{}, fmt.Errorf("%w: decode verdict: %v", ErrOracleUnavailable, err)
	}
	return result, nil
}

// LLMCorrector asks the model to repair a message and returns the sparse
// patch it proposes. The loop merges the patch and then always runs the
// local deterministic repair on top.
type LLMCorrector struct {
	client ChatClient
}

func NewLLMCorrector(client ChatClient) *LLMCorrector {
	return &LLMCorrector{client: client}
}

const correctorSystemPrompt = `You are a SWIFT MT message repair agent.
Fix the message so it becomes VALID according to SWIFT standards.
Rules you MUST follow:
1. sender_bic and receiver_bic MUST be 8 or 11 characters (ISO 9362).
2. If a BIC is invalid, infer a plausible correction keeping the bank code
   where possible.
3. value_date MUST be in YYMMDD format; if invalid, infer a date close to today.
4. Currency codes must follow ISO 4217.
5. Fix mismatches between amount and currency.
6. Do NOT invent random data. Preserve business intent.
Return ONLY valid JSON with string values, for example:
{"sender_bic": "...", "receiver_bic": "...", "value_date": "YYMMDD",
 "amount": "number currency", "currency": "ISO_CODE"}`

func (c *LLMCorrector) Correct(ctx context.Context, msg *swift.Message, errs []string) (swift.Patch, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal message: %v", ErrOracleUnavailable, err)
	}
	errPayload, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal errors: %v", ErrOracleUnavailable, err)
	}

	user := fmt.Sprintf("Original message:\n%s\n\nValidation errors:\n%s", payload, errPayload)
	raw, err := c.client.ChatJSON(ctx, correctorSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	// Tolerate non-string values in the model output by keeping only the
	// string-typed keys.
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, fmt.Errorf("%w: decode patch: %v", ErrOracleUnavailable, err)
	}
	patch := swift.Patch{}
	for key, value := range loose {
		if s, ok := value.(string); ok {
			patch[key] = s
		}
	}
	return patch, nil
}
