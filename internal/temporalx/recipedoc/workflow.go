package recipedoc

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/platekeep/recipedocs-backend/internal/types"
)

// Workflow sequences fetch -> generate. Three states, no branching: an empty
// fetch short-circuits before any generation call, and any activity failure
// aborts the run as a failure value. Activities do not retry; an upstream
// fault fails the whole run.
func Workflow(ctx workflow.Context, input Input) (RunResult, error) {
	log := workflow.GetLogger(ctx)

	fetchCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 1 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	var recipes []types.Recipe
	if err := workflow.ExecuteActivity(fetchCtx, ActivityFetchRecipes, FetchInput{
		UserID:      input.UserID,
		RecipeNames: input.RecipeNames,
	}).Get(ctx, &recipes); err != nil {
		log.Error("recipe fetch failed", "user_id", input.UserID, "error", err)
		return RunResult{Success: false, Error: err.Error()}, nil
	}

	if len(recipes) == 0 {
		return RunResult{Success: false, Message: "No recipes found"}, nil
	}

	genCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 15 * time.Minute,
		HeartbeatTimeout:    2 * time.Minute,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	var documents map[string]string
	if err := workflow.ExecuteActivity(genCtx, ActivityGenerateDocuments, GenerateInput{
		UserID:  input.UserID,
		Recipes: recipes,
		Format:  input.Format,
	}).Get(ctx, &documents); err != nil {
		log.Error("document generation failed", "user_id", input.UserID, "error", err)
		return RunResult{Success: false, Error: err.Error()}, nil
	}

	return RunResult{Success: true, Documents: documents}, nil
}
