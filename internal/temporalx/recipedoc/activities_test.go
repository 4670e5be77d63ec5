package recipedoc

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/testsuite"

	"github.com/platekeep/recipedocs-backend/internal/docgen"
	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

type fakeRecipeService struct {
	recipes []types.Recipe
	err     error
}

func (f *fakeRecipeService) LookupRecipes(ctx context.Context, userID string, recipeNames []string) ([]types.Recipe, error) {
	return f.recipes, f.err
}

type fakeInstructionService struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeInstructionService) GenerateInstructions(ctx context.Context, recipeName string, ingredients []types.Ingredient) (*types.Instructions, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &types.Instructions{Storage: "Refrigerate.", Serving: "Serve warm.", PreparationSteps: []string{"Cook " + recipeName}}, nil
}

type fakeRenderer struct {
	payload  []byte
	err      error
	lastPath string
	recipes  int
	instr    map[string]*types.Instructions
}

func (f *fakeRenderer) Render(recipes []types.Recipe, instructions map[string]*types.Instructions, path string) error {
	f.lastPath = path
	f.recipes = len(recipes)
	f.instr = instructions
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, f.payload, 0o644)
}

func testActivityLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func executeGenerate(t *testing.T, acts *Activities, in GenerateInput) (map[string]string, error) {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(acts.GenerateDocuments)

	val, err := env.ExecuteActivity(acts.GenerateDocuments, in)
	if err != nil {
		return nil, err
	}
	var out map[string]string
	if err := val.Get(&out); err != nil {
		t.Fatalf("decode activity result: %v", err)
	}
	return out, nil
}

func TestGenerateDocumentsPDF(t *testing.T) {
	instr := &fakeInstructionService{}
	pdf := &fakeRenderer{payload: []byte("%PDF-1.4 fake")}
	acts := &Activities{
		Log:          testActivityLogger(t),
		Instructions: instr,
		PDF:          pdf,
		Docx:         &fakeRenderer{},
	}

	recipes := []types.Recipe{
		{Name: "Tomato Soup", Data: types.RecipeData{Ingredients: []types.Ingredient{{Ingredient: "tomatoes"}}}},
		{Name: "Garlic Bread"},
	}

	out, err := executeGenerate(t, acts, GenerateInput{UserID: "user-1", Recipes: recipes, Format: docgen.FormatPDF})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if instr.calls != 2 {
		t.Fatalf("expected one generation call per recipe, got %d", instr.calls)
	}
	if pdf.recipes != 2 {
		t.Fatalf("renderer saw %d recipes, want 2", pdf.recipes)
	}
	if pdf.instr["Tomato Soup"] == nil || pdf.instr["Garlic Bread"] == nil {
		t.Fatalf("instructions must be joined by recipe name, got %v", pdf.instr)
	}

	// base64 round-trip reproduces the rendered bytes exactly.
	raw, err := base64.StdEncoding.DecodeString(out[docgen.FormatPDF])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "%PDF-1.4 fake" {
		t.Fatalf("round trip mismatch: %q", raw)
	}

	// Scratch directory must be gone after the activity returns.
	if _, err := os.Stat(filepath.Dir(pdf.lastPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("scratch dir still exists: %v", err)
	}
}

func TestGenerateDocumentsDocxSelectsRenderer(t *testing.T) {
	docx := &fakeRenderer{payload: []byte("PK fake docx")}
	acts := &Activities{
		Log:          testActivityLogger(t),
		Instructions: &fakeInstructionService{},
		PDF:          &fakeRenderer{},
		Docx:         docx,
	}

	out, err := executeGenerate(t, acts, GenerateInput{
		UserID:  "user-1",
		Recipes: []types.Recipe{{Name: "Tomato Soup"}},
		Format:  docgen.FormatDocx,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, ok := out[docgen.FormatDocx]; !ok {
		t.Fatalf("expected docx key, got %v", out)
	}
	if docx.recipes != 1 {
		t.Fatal("docx renderer was not used")
	}
}

func TestGenerateDocumentsHeartbeatsPerRecipe(t *testing.T) {
	acts := &Activities{
		Log:          testActivityLogger(t),
		Instructions: &fakeInstructionService{},
		PDF:          &fakeRenderer{payload: []byte("x")},
		Docx:         &fakeRenderer{},
	}

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	env.RegisterActivity(acts.GenerateDocuments)

	var mu sync.Mutex
	beats := map[string]int{}
	env.SetOnActivityHeartbeatListener(func(info *activity.Info, details converter.EncodedValues) {
		var name string
		if err := details.Get(&name); err != nil {
			return
		}
		mu.Lock()
		beats[name]++
		mu.Unlock()
	})

	_, err := env.ExecuteActivity(acts.GenerateDocuments, GenerateInput{
		UserID:  "user-1",
		Recipes: []types.Recipe{{Name: "Tomato Soup"}, {Name: "Garlic Bread"}},
		Format:  docgen.FormatPDF,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Each synthesis call can run for minutes against the model; a heartbeat
	// must land after every recipe or the workflow's heartbeat timeout would
	// kill a healthy multi-recipe run.
	mu.Lock()
	defer mu.Unlock()
	for _, name := range []string{"Tomato Soup", "Garlic Bread"} {
		if beats[name] == 0 {
			t.Fatalf("no heartbeat recorded for %q, got %v", name, beats)
		}
	}
}

func TestGenerateDocumentsNoRecipes(t *testing.T) {
	acts := &Activities{
		Log:          testActivityLogger(t),
		Instructions: &fakeInstructionService{},
		PDF:          &fakeRenderer{},
		Docx:         &fakeRenderer{},
	}
	if _, err := executeGenerate(t, acts, GenerateInput{UserID: "user-1", Format: docgen.FormatPDF}); err == nil {
		t.Fatal("expected error for empty recipes")
	}
}

func TestGenerateDocumentsFailsWholeRunOnSynthesisError(t *testing.T) {
	pdf := &fakeRenderer{payload: []byte("x")}
	acts := &Activities{
		Log:          testActivityLogger(t),
		Instructions: &fakeInstructionService{err: errors.New("malformed model output")},
		PDF:          pdf,
		Docx:         &fakeRenderer{},
	}

	_, err := executeGenerate(t, acts, GenerateInput{
		UserID:  "user-1",
		Recipes: []types.Recipe{{Name: "Tomato Soup"}, {Name: "Garlic Bread"}},
		Format:  docgen.FormatPDF,
	})
	if err == nil {
		t.Fatal("expected activity failure when any synthesis fails")
	}
	if pdf.recipes != 0 {
		t.Fatal("renderer must not run after a synthesis failure")
	}
}

func TestFetchRecipesDelegates(t *testing.T) {
	stored := []types.Recipe{{Name: "Tomato Soup"}}
	acts := &Activities{Log: testActivityLogger(t), Recipes: &fakeRecipeService{recipes: stored}}

	got, err := acts.FetchRecipes(context.Background(), FetchInput{UserID: "user-1", RecipeNames: []string{"Tomato Soup"}})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Tomato Soup" {
		t.Fatalf("unexpected recipes %v", got)
	}

	acts = &Activities{Log: testActivityLogger(t), Recipes: &fakeRecipeService{err: errors.New("store unreachable")}}
	if _, err := acts.FetchRecipes(context.Background(), FetchInput{UserID: "user-1"}); err == nil {
		t.Fatal("expected storage fault to propagate")
	}
}
