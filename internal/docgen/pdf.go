package docgen

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

// Section headings render in the same steel blue as the original documents.
var headingColor = [3]int{46, 90, 136}

type PDFRenderer struct {
	log *logger.Logger
}

func NewPDFRenderer(baseLog *logger.Logger) *PDFRenderer {
	return &PDFRenderer{log: baseLog.With("renderer", "pdf")}
}

func (r *PDFRenderer) Render(recipes []types.Recipe, instructions map[string]*types.Instructions, path string) error {
	r.log.Info("Creating PDF", "recipes", len(recipes), "path", path)
	pdf := r.build(recipes, instructions)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	r.log.Info("PDF generation completed", "path", path)
	return nil
}

// build lays out one page per recipe. AddPage is the explicit page break, so
// consecutive recipes are separated by exactly one break and the first page
// carries no leading break.
func (r *PDFRenderer) build(recipes []types.Recipe, instructions map[string]*types.Instructions) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, recipe := range recipes {
		pdf.AddPage()
		r.recipeSection(pdf, tr, recipe, instructions[recipe.Name])
	}
	return pdf
}

func (r *PDFRenderer) recipeSection(pdf *fpdf.Fpdf, tr func(string) string, recipe types.Recipe, instr *types.Instructions) {
	// Title
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 12, tr(recipe.Name), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	// Recipe information
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetDrawColor(128, 128, 128)
	for _, row := range infoRows(recipe.Data) {
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(52, 8, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	// Ingredients
	r.sectionHeading(pdf, tr, "Ingredients")
	colWidths := []float64{66, 36, 36, 36}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(headingColor[0], headingColor[1], headingColor[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range ingredientHeader {
		pdf.CellFormat(colWidths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, ing := range recipe.Data.Ingredients {
		for i, cell := range ingredientRow(ing) {
			pdf.CellFormat(colWidths[i], 8, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	if !hasInstructions(instr) {
		return
	}

	r.sectionHeading(pdf, tr, "Preparation Method")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for i, step := range instr.PreparationSteps {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
	}
	pdf.Ln(6)

	r.sectionHeading(pdf, tr, "Cooking Tips")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, tip := range instr.CookingTips {
		pdf.MultiCell(0, 6, tr("• "+tip), "", "L", false)
	}
	pdf.Ln(6)

	r.sectionHeading(pdf, tr, "Timing")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range timingLines(instr.Timing) {
		pdf.MultiCell(0, 6, tr("• "+line), "", "L", false)
	}
	pdf.Ln(6)

	r.sectionHeading(pdf, tr, "Storage")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(instr.Storage), "", "L", false)
	pdf.Ln(4)

	r.sectionHeading(pdf, tr, "Serving Suggestions")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(instr.Serving), "", "L", false)
}

func (r *PDFRenderer) sectionHeading(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(headingColor[0], headingColor[1], headingColor[2])
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(1)
}
