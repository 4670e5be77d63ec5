// Package docgen renders a user's selected recipes, together with their
// synthesized cooking instructions, into a single PDF or Word document.
// Each recipe gets one page-equivalent section; instructions are joined to
// recipes by name so reordering or partial generation can never mispair them.
package docgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/platekeep/recipedocs-backend/internal/types"
)

const (
	FormatPDF  = "pdf"
	FormatDocx = "docx"

	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Renderer writes one document covering all recipes, in input order, to path.
type Renderer interface {
	Render(recipes []types.Recipe, instructions map[string]*types.Instructions, path string) error
}

func ValidFormat(format string) bool {
	return format == FormatPDF || format == FormatDocx
}

func MIMEType(format string) string {
	if format == FormatDocx {
		return MIMEDocx
	}
	return MIMEPDF
}

func Filename(userID, format string) string {
	return fmt.Sprintf("recipes_%s.%s", userID, format)
}

// Currency formats a cost with a leading dollar sign and exactly two
// decimal places.
func Currency(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func infoRows(data types.RecipeData) [][2]string {
	return [][2]string{
		{"Servings", fmt.Sprintf("%d", data.Servings)},
		{"Total Cost", Currency(data.TotalCost)},
		{"Cost per Serving", Currency(data.CostPerServing)},
	}
}

var ingredientHeader = []string{"INGREDIENT", "AMOUNT", "COST PER UNIT", "TOTAL COST"}

func ingredientRow(ing types.Ingredient) []string {
	return []string{
		strings.ToUpper(ing.Ingredient),
		strings.ToUpper(ing.RecipeAmount),
		Currency(ing.UnitCost),
		Currency(ing.TotalCost),
	}
}

// timingLines flattens the timing map into "step: duration" lines, sorted by
// step so output is stable across runs.
func timingLines(timing map[string]string) []string {
	keys := make([]string, 0, len(timing))
	for k := range timing {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("%s: %s", k, timing[k]))
	}
	return out
}

// hasInstructions reports whether the block of synthesized sections should be
// rendered at all. A nil or all-empty Instructions omits the block entirely.
func hasInstructions(instr *types.Instructions) bool {
	if instr == nil {
		return false
	}
	return len(instr.PreparationSteps) > 0 || len(instr.CookingTips) > 0 ||
		len(instr.Timing) > 0 || len(instr.Techniques) > 0 ||
		instr.Storage != "" || instr.Serving != ""
}
