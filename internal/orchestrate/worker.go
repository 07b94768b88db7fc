package orchestrate

import (
	"context"
	"encoding/json"
	"fmt"
)

// workerSystemPrompts maps each task type to the specialist persona that
// executes it. Unknown types fall back to a generic agent.
var workerSystemPrompts = map[TaskType]string{
	TaskComplianceCheck:    "You are a Compliance Specialist.\nExecute the compliance check as described.",
	TaskFraudAnalysis:      "You are a Fraud Analyst.\nPerform detailed fraud analysis as requested.",
	TaskAmountVerification: "You are a Financial Auditor.\nVerify and analyze the amounts as specified.",
	TaskPatternDetection:   "You are a Pattern Analysis Expert.\nDetect and report unusual patterns.",
	TaskSummaryReport:      "You are a Report Generator.\nCreate the requested summary report.",
}

const genericWorkerPrompt = "You are a Generic Processing Agent.\nComplete the assigned task."

// Worker executes orchestrator tasks against the model.
type Worker struct {
	client Chatter
}

// NewWorker constructs a generic worker.
func NewWorker(client Chatter) *Worker {
	return &Worker{client: client}
}

// Execute runs one task. Failures are reported in the result, never raised.
func (w *Worker) Execute(ctx context.Context, task Task) TaskResult {
	system, ok := workerSystemPrompts[task.Type]
	if !ok {
		system = genericWorkerPrompt
	}

	data := task.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	user := fmt.Sprintf(`Execute this task:
Type: %s
Description: %s
Data: %s

Return your results in JSON format.`, task.Type, task.Description, data)

	raw, err := w.client.ChatJSON(ctx, system, user)
	if err != nil {
		return TaskResult{
			TaskID: task.TaskID,
			Status: "failed",
			Error:  err.Error(),
		}
	}

	return TaskResult{
		TaskID:  task.TaskID,
		Status:  "completed",
		Results: raw,
	}
}
