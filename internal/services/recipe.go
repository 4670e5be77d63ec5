package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/repos"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

// RecipeService resolves the requested subset of a user's stored recipe
// collection. An empty result is a normal outcome, never an error; only
// storage faults and malformed documents propagate.
type RecipeService interface {
	LookupRecipes(ctx context.Context, userID string, recipeNames []string) ([]types.Recipe, error)
}

type recipeService struct {
	log  *logger.Logger
	docs repos.UserDocumentRepo
}

func NewRecipeService(baseLog *logger.Logger, docs repos.UserDocumentRepo) RecipeService {
	return &recipeService{
		log:  baseLog.With("service", "RecipeService"),
		docs: docs,
	}
}

func InventoryKey(userID string) string {
	return fmt.Sprintf("inventory-items-%s", userID)
}

func (s *recipeService) LookupRecipes(ctx context.Context, userID string, recipeNames []string) ([]types.Recipe, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("missing user id")
	}

	doc, err := s.docs.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("query user document: %w", err)
	}
	if doc == nil || len(doc.Recipes) == 0 {
		return []types.Recipe{}, nil
	}

	var collections map[string][]types.Recipe
	if err := json.Unmarshal(doc.Recipes, &collections); err != nil {
		return nil, fmt.Errorf("decode recipes document for user %s: %w", userID, err)
	}

	stored, ok := collections[InventoryKey(userID)]
	if !ok {
		return []types.Recipe{}, nil
	}

	matched := FilterRecipes(stored, recipeNames)
	s.log.Info("Recipe lookup completed", "user_id", userID, "requested", len(recipeNames), "matched", len(matched))
	return matched, nil
}

// FilterRecipes returns the subset of stored recipes whose name appears in
// recipeNames, preserving stored order. An empty recipeNames matches nothing.
func FilterRecipes(stored []types.Recipe, recipeNames []string) []types.Recipe {
	if len(stored) == 0 || len(recipeNames) == 0 {
		return []types.Recipe{}
	}
	wanted := make(map[string]struct{}, len(recipeNames))
	for _, n := range recipeNames {
		wanted[n] = struct{}{}
	}
	out := make([]types.Recipe, 0, len(recipeNames))
	for _, r := range stored {
		if _, ok := wanted[r.Name]; ok {
			out = append(out, r)
		}
	}
	return out
}
