package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/platekeep/recipedocs-backend/internal/types"
)

type fakeOpenAI struct {
	raw   string
	err   error
	calls int
	user  string
}

func (f *fakeOpenAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (json.RawMessage, error) {
	f.calls++
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

const validInstructionsJSON = `{
	"preparation_steps": ["Chop the tomatoes", "Simmer for 20 minutes"],
	"cooking_tips": ["Use ripe tomatoes", "Season in layers", "Blend while hot"],
	"timing": {"Prep": "10 minutes", "Cook": "25 minutes"},
	"techniques": ["Simmering", "Blending"],
	"storage": "Refrigerate up to 3 days.",
	"serving": "Serve with crusty bread."
}`

func TestBuildInstructionsPrompt(t *testing.T) {
	prompt := BuildInstructionsPrompt("Tomato Soup", []types.Ingredient{
		{Ingredient: "tomatoes", RecipeAmount: "2 lbs"},
		{Ingredient: "cream", RecipeAmount: "1 cup"},
	})

	if !strings.Contains(prompt, "Create detailed cooking instructions for: Tomato Soup") {
		t.Fatalf("prompt missing recipe line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- 2 LBS of TOMATOES") {
		t.Fatalf("prompt missing upper-cased ingredient line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- 1 CUP of CREAM") {
		t.Fatalf("prompt missing second ingredient line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "preparation_steps") || !strings.Contains(prompt, "serving") {
		t.Fatalf("prompt missing JSON field contract:\n%s", prompt)
	}
}

func TestGenerateInstructions(t *testing.T) {
	log := newTestLogger(t)
	ai := &fakeOpenAI{raw: validInstructionsJSON}
	svc := NewInstructionService(log, ai)

	instr, err := svc.GenerateInstructions(context.Background(), "Tomato Soup", []types.Ingredient{
		{Ingredient: "tomatoes", RecipeAmount: "2 lbs"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if ai.calls != 1 {
		t.Fatalf("expected exactly one generation call, got %d", ai.calls)
	}
	if len(instr.PreparationSteps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(instr.PreparationSteps))
	}
	if len(instr.CookingTips) != 3 {
		t.Fatalf("expected 3 tips, got %d", len(instr.CookingTips))
	}
	if instr.Timing["Prep"] != "10 minutes" {
		t.Fatalf("timing lost: %+v", instr.Timing)
	}
	if instr.Storage == "" || instr.Serving == "" {
		t.Fatalf("storage/serving lost: %+v", instr)
	}
}

func TestGenerateInstructionsUpstreamFailure(t *testing.T) {
	log := newTestLogger(t)
	ai := &fakeOpenAI{err: errors.New("upstream down")}
	svc := NewInstructionService(log, ai)

	if _, err := svc.GenerateInstructions(context.Background(), "Tomato Soup", nil); err == nil {
		t.Fatal("expected error when generation call fails")
	}
}

func TestDecodeInstructionsMissingField(t *testing.T) {
	raw := json.RawMessage(`{"preparation_steps": [], "cooking_tips": [], "timing": {}, "techniques": [], "storage": "x"}`)
	if _, err := DecodeInstructions(raw); err == nil || !strings.Contains(err.Error(), "serving") {
		t.Fatalf("expected missing-field error for serving, got %v", err)
	}
}

func TestDecodeInstructionsMalformed(t *testing.T) {
	if _, err := DecodeInstructions(json.RawMessage(`not json at all`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if _, err := DecodeInstructions(json.RawMessage(`["a","b"]`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}
