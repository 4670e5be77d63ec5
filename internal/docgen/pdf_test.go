package docgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPDFOnePagePerRecipe(t *testing.T) {
	r := NewPDFRenderer(newTestLogger(t))

	pdf := r.build(sampleRecipes(), sampleInstructions())
	if err := pdf.Error(); err != nil {
		t.Fatalf("pdf build: %v", err)
	}
	if got := pdf.PageCount(); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}

func TestPDFWithoutInstructionsStillOnePage(t *testing.T) {
	r := NewPDFRenderer(newTestLogger(t))

	pdf := r.build(sampleRecipes()[:1], nil)
	if err := pdf.Error(); err != nil {
		t.Fatalf("pdf build: %v", err)
	}
	if got := pdf.PageCount(); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}
}

func TestPDFRenderWritesFile(t *testing.T) {
	r := NewPDFRenderer(newTestLogger(t))
	path := filepath.Join(t.TempDir(), "recipes_user-1.pdf")

	if err := r.Render(sampleRecipes(), sampleInstructions(), path); err != nil {
		t.Fatalf("render: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", raw[:8])
	}
}
