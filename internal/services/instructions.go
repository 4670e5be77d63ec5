package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

const instructionsSystemPrompt = "You are a professional chef creating detailed cooking instructions."

// InstructionService synthesizes the structured cooking guidance for one
// recipe per call. A malformed model response is a hard failure; the caller
// decides run-level policy.
type InstructionService interface {
	GenerateInstructions(ctx context.Context, recipeName string, ingredients []types.Ingredient) (*types.Instructions, error)
}

type instructionService struct {
	log *logger.Logger
	ai  OpenAIClient
}

func NewInstructionService(baseLog *logger.Logger, ai OpenAIClient) InstructionService {
	return &instructionService{
		log: baseLog.With("service", "InstructionService"),
		ai:  ai,
	}
}

func (s *instructionService) GenerateInstructions(ctx context.Context, recipeName string, ingredients []types.Ingredient) (*types.Instructions, error) {
	prompt := BuildInstructionsPrompt(recipeName, ingredients)

	raw, err := s.ai.GenerateJSON(ctx, instructionsSystemPrompt, prompt, "recipe_instructions", instructionsSchema())
	if err != nil {
		return nil, fmt.Errorf("generate instructions for %q: %w", recipeName, err)
	}

	instr, err := DecodeInstructions(raw)
	if err != nil {
		return nil, fmt.Errorf("generate instructions for %q: %w", recipeName, err)
	}

	s.log.Info("Instructions generated", "recipe", recipeName, "steps", len(instr.PreparationSteps))
	return instr, nil
}

// BuildInstructionsPrompt formats the natural-language request for one
// recipe. Ingredient amounts and names are upper-cased, matching how they
// later appear in the rendered table.
func BuildInstructionsPrompt(recipeName string, ingredients []types.Ingredient) string {
	lines := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, fmt.Sprintf("- %s of %s", strings.ToUpper(ing.RecipeAmount), strings.ToUpper(ing.Ingredient)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create detailed cooking instructions for: %s\n\n", recipeName)
	b.WriteString("Ingredients:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString("Create a comprehensive recipe guide with:\n")
	b.WriteString("1. Step-by-step preparation method\n")
	b.WriteString("2. Cooking tips specific to this recipe\n")
	b.WriteString("3. Timing for each major step\n")
	b.WriteString("4. Key techniques required\n")
	b.WriteString("5. Storage and serving suggestions\n\n")
	b.WriteString("Return as JSON with:\n")
	b.WriteString("- preparation_steps: (array of strings) Detailed steps\n")
	b.WriteString("- cooking_tips: (array of strings) At least 3 specific tips\n")
	b.WriteString("- timing: (object) Time estimates for major steps\n")
	b.WriteString("- techniques: (array of strings) Key cooking techniques\n")
	b.WriteString("- storage: (string) Storage instructions\n")
	b.WriteString("- serving: (string) Serving suggestions\n")
	return b.String()
}

// DecodeInstructions parses a model response into Instructions, rejecting
// payloads that miss any of the six required fields.
func DecodeInstructions(raw json.RawMessage) (*types.Instructions, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("instructions response is not a JSON object: %w", err)
	}
	for _, key := range []string{"preparation_steps", "cooking_tips", "timing", "techniques", "storage", "serving"} {
		if _, ok := probe[key]; !ok {
			return nil, fmt.Errorf("instructions response missing field %q", key)
		}
	}

	var instr types.Instructions
	if err := json.Unmarshal(raw, &instr); err != nil {
		return nil, fmt.Errorf("decode instructions response: %w", err)
	}
	return &instr, nil
}

func instructionsSchema() map[string]any {
	stringArray := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"preparation_steps": stringArray,
			"cooking_tips":      stringArray,
			"timing": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"techniques": stringArray,
			"storage":    map[string]any{"type": "string"},
			"serving":    map[string]any{"type": "string"},
		},
		"required":             []string{"preparation_steps", "cooking_tips", "timing", "techniques", "storage", "serving"},
		"additionalProperties": false,
	}
}
