package recipedoc

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"go.temporal.io/sdk/activity"
	"golang.org/x/sync/errgroup"

	"github.com/platekeep/recipedocs-backend/internal/docgen"
	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

// RecipeService and InstructionService mirror the method sets of the
// interfaces with the same names in internal/services. They are declared
// here because services imports this package to start the workflow, so
// importing services back would form an import cycle; structural typing
// lets the services implementations satisfy these directly.
type RecipeService interface {
	LookupRecipes(ctx context.Context, userID string, recipeNames []string) ([]types.Recipe, error)
}

type InstructionService interface {
	GenerateInstructions(ctx context.Context, recipeName string, ingredients []types.Ingredient) (*types.Instructions, error)
}

type Activities struct {
	Log          *logger.Logger
	Recipes      RecipeService
	Instructions InstructionService
	PDF          docgen.Renderer
	Docx         docgen.Renderer

	// MaxConcurrent bounds the per-recipe instruction fan-out. 1 keeps the
	// original strictly sequential behavior.
	MaxConcurrent int
}

func (a *Activities) FetchRecipes(ctx context.Context, in FetchInput) ([]types.Recipe, error) {
	if a == nil || a.Recipes == nil {
		return nil, fmt.Errorf("recipedoc: fetch activity not configured")
	}
	recipes, err := a.Recipes.LookupRecipes(ctx, in.UserID, in.RecipeNames)
	if err != nil {
		if a.Log != nil {
			a.Log.Error("Error getting recipes", "user_id", in.UserID, "error", err)
		}
		return nil, err
	}
	return recipes, nil
}

// GenerateDocuments synthesizes instructions for every recipe, renders the
// requested format into a scratch directory, and returns the base64-encoded
// bytes keyed by format. The scratch directory is removed on every exit path.
func (a *Activities) GenerateDocuments(ctx context.Context, in GenerateInput) (map[string]string, error) {
	if a == nil || a.Instructions == nil || a.PDF == nil || a.Docx == nil {
		return nil, fmt.Errorf("recipedoc: generate activity not configured")
	}
	if len(in.Recipes) == 0 {
		return nil, fmt.Errorf("no recipes data provided")
	}

	instructions, err := a.synthesizeAll(ctx, in.Recipes)
	if err != nil {
		return nil, err
	}
	tempDir, err := os.MkdirTemp("", "recipedocs-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	format := in.Format
	if !docgen.ValidFormat(format) {
		format = docgen.FormatPDF
	}
	renderer := a.PDF
	if format == docgen.FormatDocx {
		renderer = a.Docx
	}

	outPath := filepath.Join(tempDir, docgen.Filename(in.UserID, format))
	if err := renderer.Render(in.Recipes, instructions, outPath); err != nil {
		if a.Log != nil {
			a.Log.Error("Error generating documents", "user_id", in.UserID, "format", format, "error", err)
		}
		return nil, err
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read rendered document: %w", err)
	}
	activity.RecordHeartbeat(ctx, "render_done")

	return map[string]string{format: base64.StdEncoding.EncodeToString(raw)}, nil
}

// synthesizeAll runs one generation call per recipe with bounded concurrency
// and all-or-nothing aggregation: the first failure cancels the rest and
// fails the activity. Results are keyed by recipe name so the renderer joins
// explicitly instead of relying on list position. A heartbeat is recorded
// after every recipe; a single model call can run for minutes, and the
// workflow's heartbeat timeout would otherwise kill a healthy run.
func (a *Activities) synthesizeAll(ctx context.Context, recipes []types.Recipe) (map[string]*types.Instructions, error) {
	limit := a.MaxConcurrent
	if limit < 1 {
		limit = 1
	}

	results := make([]*types.Instructions, len(recipes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, recipe := range recipes {
		g.Go(func() error {
			instr, err := a.Instructions.GenerateInstructions(gctx, recipe.Name, recipe.Data.Ingredients)
			if err != nil {
				return err
			}
			results[i] = instr
			activity.RecordHeartbeat(gctx, recipe.Name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byName := make(map[string]*types.Instructions, len(recipes))
	for i, recipe := range recipes {
		byName[recipe.Name] = results[i]
	}
	return byName, nil
}
