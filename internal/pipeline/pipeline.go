// Package pipeline composes the processing stages end to end: generate a
// batch, run the validation correction loop, fan out fraud scoring, then hand
// filtered subsets to the chained analyzer and the orchestrator and persist
// the reports. Stages communicate only through the messages themselves.
package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"swiftflow/internal/chain"
	"swiftflow/internal/fraud"
	"swiftflow/internal/orchestrate"
	"swiftflow/internal/report"
	"swiftflow/internal/swift"
	"swiftflow/internal/validation"
)

const (
	cleanReportFile     = "report_clean_messages.json"
	highValueReportFile = "report_high_value_messages.json"

	// highValueFloor is the amount above which a message is routed to the
	// orchestrator for deep analysis.
	highValueFloor = 50000.0
)

// Runner drives one batch through every stage.
type Runner struct {
	generator    *swift.Generator
	loop         *validation.Loop
	scheduler    *fraud.Scheduler
	analyzer     *chain.Analyzer           // nil when running offline
	orchestrator *orchestrate.Orchestrator // nil when running offline
	reports      *report.Writer
	publisher    *report.VerdictPublisher
	logger       zerolog.Logger
	tracer       trace.Tracer
}

// Option configures the Runner.
type Option func(*Runner)

// WithAnalyzer enables the chained fraud analysis stage.
func WithAnalyzer(a *chain.Analyzer) Option {
	return func(r *Runner) {
		r.analyzer = a
	}
}

// WithOrchestrator enables the orchestrator-worker stage.
func WithOrchestrator(o *orchestrate.Orchestrator) Option {
	return func(r *Runner) {
		r.orchestrator = o
	}
}

// WithPublisher enables per-verdict event publishing.
func WithPublisher(p *report.VerdictPublisher) Option {
	return func(r *Runner) {
		r.publisher = p
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New wires a pipeline runner from its mandatory stages.
func New(gen *swift.Generator, loop *validation.Loop, sched *fraud.Scheduler, reports *report.Writer, opts ...Option) *Runner {
	r := &Runner{
		generator: gen,
		loop:      loop,
		scheduler: sched,
		reports:   reports,
		logger:    zerolog.Nop(),
		tracer:    otel.Tracer("swiftflow/pipeline"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes one generated batch of the given size through every stage.
// LLM stages are skipped when not configured; report and publish failures are
// the only errors that abort the run.
func (r *Runner) Run(ctx context.Context, messageCount int) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("batch.size", messageCount)))
	defer span.End()

	messages := r.generate(ctx, messageCount)
	r.validate(ctx, messages)
	r.score(ctx, messages)

	clean := filterClean(messages)
	highValue := filterHighValue(messages)
	r.logger.Info().
		Int("total", len(messages)).
		Int("clean", len(clean)).
		Int("high_value", len(highValue)).
		Msg("batch scored and partitioned")

	if err := r.analyzeClean(ctx, clean); err != nil {
		return err
	}
	if err := r.analyzeHighValue(ctx, highValue); err != nil {
		return err
	}

	if r.publisher != nil {
		pubCtx, pubSpan := r.tracer.Start(ctx, "pipeline.publish")
		r.publisher.PublishBatch(pubCtx, messages)
		pubSpan.End()
	}

	return nil
}

func (r *Runner) generate(ctx context.Context, count int) []*swift.Message {
	_, span := r.tracer.Start(ctx, "pipeline.generate")
	defer span.End()

	messages := r.generator.Generate(count)
	r.logger.Info().Int("messages", len(messages)).Msg("batch generated")
	return messages
}

func (r *Runner) validate(ctx context.Context, messages []*swift.Message) {
	ctx, span := r.tracer.Start(ctx, "pipeline.validate")
	defer span.End()

	r.loop.Process(ctx, messages)
}

func (r *Runner) score(ctx context.Context, messages []*swift.Message) {
	ctx, span := r.tracer.Start(ctx, "pipeline.fraud_scoring")
	defer span.End()

	r.scheduler.ProcessBatch(ctx, messages)
}

// analyzeClean runs the chained analysis over clean messages and writes the
// clean-messages report. Offline it reports the messages themselves.
func (r *Runner) analyzeClean(ctx context.Context, clean []*swift.Message) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.chained_analysis",
		trace.WithAttributes(attribute.Int("messages", len(clean))))
	defer span.End()

	var results any = clean
	if r.analyzer != nil {
		results = r.analyzer.Process(ctx, clean)
	} else {
		r.logger.Info().Msg("no model configured, skipping chained analysis")
	}

	if err := r.reports.Write(cleanReportFile, "clean_messages", len(clean), results); err != nil {
		return fmt.Errorf("pipeline: clean messages report: %w", err)
	}
	return nil
}

// analyzeHighValue routes high-value messages through the orchestrator and
// writes the high-value report. Offline it reports the messages themselves.
func (r *Runner) analyzeHighValue(ctx context.Context, highValue []*swift.Message) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.orchestration",
		trace.WithAttributes(attribute.Int("messages", len(highValue))))
	defer span.End()

	var results any = highValue
	if r.orchestrator != nil {
		results = r.orchestrator.Process(ctx, highValue)
	} else {
		r.logger.Info().Msg("no model configured, skipping orchestration")
	}

	if err := r.reports.Write(highValueReportFile, "high_value_messages", len(highValue), results); err != nil {
		return fmt.Errorf("pipeline: high value messages report: %w", err)
	}
	return nil
}

// filterClean keeps validated messages the fraud stage did not flag.
func filterClean(messages []*swift.Message) []*swift.Message {
	out := make([]*swift.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.ValidationStatus == swift.ValidationValid && msg.FraudStatus != swift.FraudFraudulent {
			out = append(out, msg)
		}
	}
	return out
}

// filterHighValue keeps messages whose amount exceeds the orchestration floor.
func filterHighValue(messages []*swift.Message) []*swift.Message {
	out := make([]*swift.Message, 0, len(messages))
	for _, msg := range messages {
		if amountAbove(msg, highValueFloor) {
			out = append(out, msg)
		}
	}
	return out
}

func amountAbove(msg *swift.Message, floor float64) bool {
	token, ok := msg.AmountValue()
	if !ok {
		return false
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return false
	}
	return value > floor
}
