package validation

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"swiftflow/internal/swift"
	"swiftflow/internal/validation/metrics"
)

// DefaultMaxIterations caps evaluate-correct cycles per message.
const DefaultMaxIterations = 3

// Loop runs the bounded evaluate -> correct -> re-evaluate cycle for each
// message in a batch. Messages run sequentially; one message failing
// permanently never aborts the batch.
type Loop struct {
	evaluator     Evaluator
	corrector     Corrector
	maxIterations int
	logger        zerolog.Logger
	metrics       *metrics.Metrics
}

// Option configures the Loop.
type Option func(*Loop)

// WithMaxIterations overrides the iteration budget.
func WithMaxIterations(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.maxIterations = n
		}
	}
}

// WithLogger sets the loop logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loop) {
		l.metrics = m
	}
}

// NewLoop constructs a correction loop over the given oracles.
func NewLoop(evaluator Evaluator, corrector Corrector, opts ...Option) *Loop {
	l := &Loop{
		evaluator:     evaluator,
		corrector:     corrector,
		maxIterations: DefaultMaxIterations,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Process runs every message to a terminal validation state and returns the
// same slice, annotated in place.
func (l *Loop) Process(ctx context.Context, messages []*swift.Message) []*swift.Message {
	for i, msg := range messages {
		l.processOne(ctx, msg)
		l.logger.Debug().
			Str("message_id", msg.ID).
			Str("status", string(msg.ValidationStatus)).
			Int("errors", len(msg.ValidationErrors)).
			Msgf("validated message %d/%d", i+1, len(messages))
	}

	valid := 0
	for _, msg := range messages {
		if msg.ValidationStatus == swift.ValidationValid {
			valid++
		}
	}
	l.logger.Info().
		Int("total", len(messages)).
		Int("valid", valid).
		Int("invalid", len(messages)-valid).
		Msg("correction loop complete")

	return messages
}

func (l *Loop) processOne(ctx context.Context, msg *swift.Message) {
	msg.ValidationStatus = swift.ValidationPending
	var lastErrors []string

	for iteration := 0; iteration < l.maxIterations; iteration++ {
		result, err := l.evaluator.Evaluate(ctx, msg)
		if err != nil {
			// No information gained, but the iteration still counts
			// against the budget.
			l.metrics.IncOracleFailure("evaluate")
			l.logger.Warn().Err(err).Str("message_id", msg.ID).
				Int("iteration", iteration+1).
				Msg("evaluation oracle failed")
			if iteration == l.maxIterations-1 {
				l.markInvalid(msg, lastErrors, iteration+1)
			}
			continue
		}

		if result.IsValid {
			msg.ValidationStatus = swift.ValidationValid
			msg.ValidationErrors = []string{}
			l.metrics.ObserveIterations(iteration + 1)
			l.metrics.IncOutcome(string(swift.ValidationValid))
			return
		}

		lastErrors = result.Errors
		if iteration < l.maxIterations-1 {
			msg.ValidationStatus = swift.ValidationCorrecting
			l.correct(ctx, msg, result.Errors)
		} else {
			l.markInvalid(msg, lastErrors, iteration+1)
		}
	}
}

func (l *Loop) markInvalid(msg *swift.Message, errs []string, iterations int) {
	msg.ValidationStatus = swift.ValidationInvalid
	msg.ValidationErrors = errs
	l.metrics.ObserveIterations(iterations)
	l.metrics.IncOutcome(string(swift.ValidationInvalid))
}

// correct applies the oracle patch when available and always runs the local
// deterministic repair afterwards. Oracle failure means "no correction
// applied", never a batch abort.
func (l *Loop) correct(ctx context.Context, msg *swift.Message, errs []string) {
	patch, err := l.corrector.Correct(ctx, msg, errs)
	if err != nil {
		l.metrics.IncOracleFailure("correct")
		l.logger.Warn().Err(err).Str("message_id", msg.ID).
			Msg("correction oracle failed, message unchanged")
	} else {
		msg.Apply(patch)
	}
	RepairAmount(msg)
}

// RepairAmount defaults a bare amount token to USD. Runs after every
// correction attempt regardless of oracle success.
func RepairAmount(msg *swift.Message) {
	fields := strings.Fields(msg.Amount)
	if len(fields) == 1 {
		msg.Amount = fields[0] + " USD"
	}
}
