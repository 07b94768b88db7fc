package orchestrate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swiftflow/internal/swift"
)

type stubChatter struct {
	planResponse   string
	workerResponse string
	planErr        error
	workerErr      error
	workerSystems  []string
}

func (c *stubChatter) ChatJSON(_ context.Context, system, _ string) (json.RawMessage, error) {
	if strings.Contains(system, "Orchestrator") {
		if c.planErr != nil {
			return nil, c.planErr
		}
		return json.RawMessage(c.planResponse), nil
	}
	c.workerSystems = append(c.workerSystems, system)
	if c.workerErr != nil {
		return nil, c.workerErr
	}
	return json.RawMessage(c.workerResponse), nil
}

func highValueMessages() []*swift.Message {
	return []*swift.Message{
		{ID: "MSG001", Type: swift.TypeMT103, Amount: "75000.00 USD"},
	}
}

func TestProcessExecutesPlannedTasks(t *testing.T) {
	client := &stubChatter{
		planResponse: `{
			"analysis": "two tasks needed",
			"task_count": 2,
			"tasks": [
				{"task_id": "t1", "type": "compliance_check", "description": "check sanctions", "priority": "high"},
				{"task_id": "t2", "type": "summary_report", "description": "summarize batch", "priority": "low"}
			]
		}`,
		workerResponse: `{"finding": "none"}`,
	}

	report := New(client).Process(context.Background(), highValueMessages())

	assert.Equal(t, "two tasks needed", report.OrchestratorAnalysis.Analysis)
	require.Len(t, report.TaskResults, 2)
	assert.Equal(t, "t1", report.TaskResults[0].TaskID)
	assert.Equal(t, "completed", report.TaskResults[0].Status)
	assert.JSONEq(t, `{"finding": "none"}`, string(report.TaskResults[0].Results))
	assert.Equal(t, "Processed 2 tasks for 1 messages", report.Summary)

	// Each task type gets its specialist persona.
	require.Len(t, client.workerSystems, 2)
	assert.Contains(t, client.workerSystems[0], "Compliance Specialist")
	assert.Contains(t, client.workerSystems[1], "Report Generator")
}

func TestProcessPlannerFailureYieldsEmptyReport(t *testing.T) {
	client := &stubChatter{planErr: errors.New("model unavailable")}

	report := New(client).Process(context.Background(), highValueMessages())

	assert.Equal(t, "Failed to create tasks", report.OrchestratorAnalysis.Analysis)
	assert.Empty(t, report.TaskResults)
	assert.Equal(t, "Processed 0 tasks for 1 messages", report.Summary)
}

func TestProcessWorkerFailureIsRecorded(t *testing.T) {
	client := &stubChatter{
		planResponse: `{"analysis": "one task", "task_count": 1, "tasks": [
			{"task_id": "t1", "type": "fraud_analysis", "description": "dig in", "priority": "high"}
		]}`,
		workerErr: errors.New("timeout"),
	}

	report := New(client).Process(context.Background(), highValueMessages())

	require.Len(t, report.TaskResults, 1)
	assert.Equal(t, "failed", report.TaskResults[0].Status)
	assert.Equal(t, "timeout", report.TaskResults[0].Error)
}

func TestWorkerUnknownTaskTypeUsesGenericPrompt(t *testing.T) {
	client := &stubChatter{workerResponse: `{}`}
	worker := NewWorker(client)

	result := worker.Execute(context.Background(), Task{
		TaskID: "t1",
		Type:   TaskType("something_new"),
	})

	assert.Equal(t, "completed", result.Status)
	require.Len(t, client.workerSystems, 1)
	assert.Contains(t, client.workerSystems[0], "Generic Processing Agent")
}
