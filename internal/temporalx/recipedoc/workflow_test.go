package recipedoc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/platekeep/recipedocs-backend/internal/types"
)

func newTestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	acts := &Activities{}
	env.RegisterWorkflowWithOptions(Workflow, workflow.RegisterOptions{Name: WorkflowName})
	env.RegisterActivityWithOptions(acts.FetchRecipes, activity.RegisterOptions{Name: ActivityFetchRecipes})
	env.RegisterActivityWithOptions(acts.GenerateDocuments, activity.RegisterOptions{Name: ActivityGenerateDocuments})
	return env
}

func workflowInput() Input {
	return Input{
		UserID:      "user-1",
		RecipeNames: []string{"Tomato Soup"},
		Format:      "pdf",
	}
}

func TestWorkflowSuccess(t *testing.T) {
	env := newTestEnv(t)

	recipes := []types.Recipe{{Name: "Tomato Soup", Data: types.RecipeData{Servings: 4}}}
	documents := map[string]string{"pdf": "aGVsbG8="}

	env.OnActivity(ActivityFetchRecipes, mock.Anything, mock.Anything).Return(recipes, nil)
	env.OnActivity(ActivityGenerateDocuments, mock.Anything, mock.Anything).Return(documents, nil)

	env.ExecuteWorkflow(Workflow, workflowInput())

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}

	var result RunResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatalf("get result: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Documents["pdf"] != "aGVsbG8=" {
		t.Fatalf("documents lost: %+v", result.Documents)
	}
}

func TestWorkflowNoRecipesShortCircuits(t *testing.T) {
	env := newTestEnv(t)

	env.OnActivity(ActivityFetchRecipes, mock.Anything, mock.Anything).Return([]types.Recipe{}, nil)

	env.ExecuteWorkflow(Workflow, workflowInput())

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	var result RunResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure result, got %+v", result)
	}
	if result.Message != "No recipes found" {
		t.Fatalf("expected 'No recipes found', got %q", result.Message)
	}
	env.AssertNotCalled(t, ActivityGenerateDocuments, mock.Anything, mock.Anything)
}

func TestWorkflowFetchFailure(t *testing.T) {
	env := newTestEnv(t)

	env.OnActivity(ActivityFetchRecipes, mock.Anything, mock.Anything).Return(nil, errors.New("store unreachable"))

	env.ExecuteWorkflow(Workflow, workflowInput())

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	// Domain failures surface as result values, not workflow errors.
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow must absorb activity failure, got %v", err)
	}
	var result RunResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.Success || result.Error == "" {
		t.Fatalf("expected error result, got %+v", result)
	}
	env.AssertNotCalled(t, ActivityGenerateDocuments, mock.Anything, mock.Anything)
}

func TestWorkflowGenerateFailure(t *testing.T) {
	env := newTestEnv(t)

	recipes := []types.Recipe{{Name: "Tomato Soup"}}
	env.OnActivity(ActivityFetchRecipes, mock.Anything, mock.Anything).Return(recipes, nil)
	env.OnActivity(ActivityGenerateDocuments, mock.Anything, mock.Anything).Return(nil, errors.New("model returned malformed output"))

	env.ExecuteWorkflow(Workflow, workflowInput())

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	var result RunResult
	if err := env.GetWorkflowResult(&result); err != nil {
		t.Fatalf("get result: %v", err)
	}
	if result.Success || result.Error == "" {
		t.Fatalf("expected error result, got %+v", result)
	}
	if result.Documents != nil {
		t.Fatalf("no document may be produced on failure, got %+v", result.Documents)
	}
}
