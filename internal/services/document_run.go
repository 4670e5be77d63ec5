package services

import (
	"context"
	"fmt"
	"time"

	enums "go.temporal.io/api/enums/v1"
	temporalsdkclient "go.temporal.io/sdk/client"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/temporalx"
	"github.com/platekeep/recipedocs-backend/internal/temporalx/recipedoc"
)

// RunStatus is the coarse state of a document-generation run as reported by
// the polling endpoint.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// DocumentRunService starts the recipe_document workflow and exposes the
// dual sync/async retrieval the front door needs: attempt an inline result
// within a wait window, fall back to status polling.
type DocumentRunService interface {
	StartRun(ctx context.Context, input recipedoc.Input) (string, error)
	AwaitResult(ctx context.Context, instanceID string, wait time.Duration) (*recipedoc.RunResult, bool, error)
	GetStatus(ctx context.Context, instanceID string) (RunStatus, *recipedoc.RunResult, error)
}

type documentRunService struct {
	log *logger.Logger
	tc  temporalsdkclient.Client
}

func NewDocumentRunService(baseLog *logger.Logger, tc temporalsdkclient.Client) (DocumentRunService, error) {
	if tc == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	return &documentRunService{
		log: baseLog.With("service", "DocumentRunService"),
		tc:  tc,
	}, nil
}

func (s *documentRunService) StartRun(ctx context.Context, input recipedoc.Input) (string, error) {
	cfg := temporalx.LoadConfig()
	instanceID := fmt.Sprintf("recipes-%s-%s", input.UserID, time.Now().UTC().Format("20060102-150405"))

	_, err := s.tc.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:        instanceID,
		TaskQueue: cfg.TaskQueue,
	}, recipedoc.WorkflowName, input)
	if err != nil {
		return "", fmt.Errorf("start workflow: %w", err)
	}

	s.log.Info("Workflow started", "instance_id", instanceID, "user_id", input.UserID, "recipes", len(input.RecipeNames), "format", input.Format)
	return instanceID, nil
}

// AwaitResult blocks up to wait for the run to finish. A timeout is not an
// error; it reports completed=false so the caller can hand out a polling
// handle instead.
func (s *documentRunService) AwaitResult(ctx context.Context, instanceID string, wait time.Duration) (*recipedoc.RunResult, bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	var result recipedoc.RunResult
	err := s.tc.GetWorkflow(waitCtx, instanceID, "").Get(waitCtx, &result)
	if err != nil {
		if waitCtx.Err() != nil && ctx.Err() == nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &result, true, nil
}

func (s *documentRunService) GetStatus(ctx context.Context, instanceID string) (RunStatus, *recipedoc.RunResult, error) {
	desc, err := s.tc.DescribeWorkflowExecution(ctx, instanceID, "")
	if err != nil {
		return "", nil, fmt.Errorf("describe workflow: %w", err)
	}

	switch desc.GetWorkflowExecutionInfo().GetStatus() {
	case enums.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return RunStatusRunning, nil, nil
	case enums.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		var result recipedoc.RunResult
		if err := s.tc.GetWorkflow(ctx, instanceID, "").Get(ctx, &result); err != nil {
			return RunStatusFailed, nil, err
		}
		return RunStatusCompleted, &result, nil
	default:
		return RunStatusFailed, nil, fmt.Errorf("workflow %s ended with status %s", instanceID, desc.GetWorkflowExecutionInfo().GetStatus())
	}
}
