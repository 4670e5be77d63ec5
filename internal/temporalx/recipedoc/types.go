package recipedoc

import "github.com/platekeep/recipedocs-backend/internal/types"

const (
	WorkflowName              = "recipe_document"
	ActivityFetchRecipes      = "recipe_fetch"
	ActivityGenerateDocuments = "recipe_documents_generate"
)

// Input starts one document-generation run.
type Input struct {
	UserID      string   `json:"user_id"`
	RecipeNames []string `json:"recipe_names"`
	Format      string   `json:"format"`
	Download    bool     `json:"download"`
}

type FetchInput struct {
	UserID      string   `json:"user_id"`
	RecipeNames []string `json:"recipe_names"`
}

type GenerateInput struct {
	UserID  string         `json:"user_id"`
	Recipes []types.Recipe `json:"recipes"`
	Format  string         `json:"format"`
}

// RunResult is the workflow outcome. Failures are carried as values so the
// front door can translate them; the workflow itself never surfaces an error
// to the Temporal status API for domain-level failures.
type RunResult struct {
	Success   bool              `json:"success"`
	Documents map[string]string `json:"documents,omitempty"`
	Message   string            `json:"message,omitempty"`
	Error     string            `json:"error,omitempty"`
}
