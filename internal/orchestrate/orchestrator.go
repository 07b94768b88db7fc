// Package orchestrate implements the orchestrator-worker pattern: the
// orchestrator asks the model to plan typed tasks over a message subset, and
// generic workers execute each task with a type-specific system prompt.
package orchestrate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"swiftflow/internal/swift"
)

// Chatter is the narrow LLM contract this package consumes.
type Chatter interface {
	ChatJSON(ctx context.Context, system, user string) (json.RawMessage, error)
}

// TaskType enumerates the work the orchestrator may delegate.
type TaskType string

const (
	TaskComplianceCheck    TaskType = "compliance_check"
	TaskFraudAnalysis      TaskType = "fraud_analysis"
	TaskAmountVerification TaskType = "amount_verification"
	TaskPatternDetection   TaskType = "pattern_detection"
	TaskSummaryReport      TaskType = "summary_report"
)

// Task is one unit of delegated work.
type Task struct {
	TaskID      string          `json:"task_id"`
	Type        TaskType        `json:"type"`
	Description string          `json:"description"`
	Priority    string          `json:"priority"` // high | medium | low
	Data        json.RawMessage `json:"data,omitempty"`
}

// Plan is the orchestrator's analysis plus its task list.
type Plan struct {
	Analysis  string `json:"analysis"`
	TaskCount int    `json:"task_count"`
	Tasks     []Task `json:"tasks"`
}

// TaskResult is a worker's outcome for one task.
type TaskResult struct {
	TaskID  string          `json:"task_id"`
	Status  string          `json:"status"` // completed | failed
	Results json.RawMessage `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Report is the complete orchestrator-worker output for one batch.
type Report struct {
	OrchestratorAnalysis Plan         `json:"orchestrator_analysis"`
	TaskResults          []TaskResult `json:"task_results"`
	Summary              string       `json:"summary"`
}

const plannerSystemPrompt = `You are an Orchestrator for SWIFT transaction processing.
Analyze the provided messages and create specific tasks for workers.

Task types you can create:
- compliance_check: Check for regulatory compliance
- fraud_analysis: Detailed fraud investigation
- amount_verification: Verify and analyze amounts
- pattern_detection: Detect unusual patterns
- summary_report: Create summary reports

Return JSON with your analysis and a list of specific tasks.`

func plannerUserPrompt(messages []byte) string {
	return fmt.Sprintf(`Analyze these SWIFT messages and create processing tasks:

%s

Return JSON with structure:
{
  "analysis": "Your analysis of the message batch",
  "task_count": 0,
  "tasks": [
    {"task_id": "unique_id", "type": "task_type", "description": "What needs to be done",
     "priority": "high|medium|low", "data": "relevant data for the task"}
  ]
}`, messages)
}

// Orchestrator plans tasks over a batch and runs them through a worker.
type Orchestrator struct {
	client Chatter
	worker *Worker
	logger zerolog.Logger
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New constructs an orchestrator and its worker over the same model client.
func New(client Chatter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		worker: NewWorker(client),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Process plans tasks for the batch and executes them sequentially. Planner
// failure yields an empty report, never an aborted batch.
func (o *Orchestrator) Process(ctx context.Context, messages []*swift.Message) Report {
	o.logger.Info().Int("messages", len(messages)).Msg("orchestrator planning tasks")

	plan := o.plan(ctx, messages)
	o.logger.Info().
		Int("tasks", len(plan.Tasks)).
		Str("analysis", plan.Analysis).
		Msg("orchestrator plan ready")

	results := make([]TaskResult, 0, len(plan.Tasks))
	for _, task := range plan.Tasks {
		o.logger.Debug().
			Str("task_id", task.TaskID).
			Str("type", string(task.Type)).
			Msg("executing task")
		results = append(results, o.worker.Execute(ctx, task))
	}

	return Report{
		OrchestratorAnalysis: plan,
		TaskResults:          results,
		Summary:              fmt.Sprintf("Processed %d tasks for %d messages", len(plan.Tasks), len(messages)),
	}
}

func (o *Orchestrator) plan(ctx context.Context, messages []*swift.Message) Plan {
	payload, err := json.Marshal(messages)
	if err != nil {
		o.logger.Error().Err(err).Msg("marshal batch for orchestrator")
		return Plan{Analysis: "Failed to create tasks"}
	}

	raw, err := o.client.ChatJSON(ctx, plannerSystemPrompt, plannerUserPrompt(payload))
	if err != nil {
		o.logger.Warn().Err(err).Msg("orchestrator planning failed")
		return Plan{Analysis: "Failed to create tasks"}
	}

	var plan Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		o.logger.Warn().Err(err).Msg("decode orchestrator plan")
		return Plan{Analysis: "Failed to create tasks"}
	}
	return plan
}
