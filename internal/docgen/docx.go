package docgen

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

// DocxRenderer writes the OOXML package directly (zip container plus
// wordprocessingml parts). The word/document.xml body is assembled from
// paragraph and table fragments; word processors reflow content within a
// section, so no layout logic is needed beyond explicit page breaks.
type DocxRenderer struct {
	log *logger.Logger
}

func NewDocxRenderer(baseLog *logger.Logger) *DocxRenderer {
	return &DocxRenderer{log: baseLog.With("renderer", "docx")}
}

func (r *DocxRenderer) Render(recipes []types.Recipe, instructions map[string]*types.Instructions, path string) error {
	r.log.Info("Creating Word document", "recipes", len(recipes), "path", path)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	zw := zip.NewWriter(f)

	parts := map[string]string{
		"[Content_Types].xml":          docxContentTypes,
		"_rels/.rels":                  docxPackageRels,
		"word/_rels/document.xml.rels": docxDocumentRels,
		"word/styles.xml":              docxStyles,
		"word/document.xml":            r.documentXML(recipes, instructions),
	}
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", "word/document.xml"} {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("create docx part %s: %w", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("write docx part %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize docx: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close docx: %w", err)
	}
	r.log.Info("Word document generation completed", "path", path)
	return nil
}

func (r *DocxRenderer) documentXML(recipes []types.Recipe, instructions map[string]*types.Instructions) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for idx, recipe := range recipes {
		if idx > 0 {
			b.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
		}
		r.recipeSection(&b, recipe, instructions[recipe.Name])
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1000" w:right="1000" w:bottom="1000" w:left="1000"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func (r *DocxRenderer) recipeSection(b *strings.Builder, recipe types.Recipe, instr *types.Instructions) {
	writeTitle(b, recipe.Name)
	writeEmptyPara(b)

	info := make([][]string, 0, 3)
	for _, row := range infoRows(recipe.Data) {
		info = append(info, []string{row[0], row[1]})
	}
	writeTable(b, nil, info)
	writeEmptyPara(b)

	writeHeading(b, "Ingredients")
	rows := make([][]string, 0, len(recipe.Data.Ingredients))
	for _, ing := range recipe.Data.Ingredients {
		rows = append(rows, ingredientRow(ing))
	}
	writeTable(b, ingredientHeader, rows)
	writeEmptyPara(b)

	if !hasInstructions(instr) {
		return
	}

	writeHeading(b, "Preparation Method")
	for i, step := range instr.PreparationSteps {
		writePara(b, fmt.Sprintf("%d. %s", i+1, step))
	}
	writeEmptyPara(b)

	writeHeading(b, "Cooking Tips")
	for _, tip := range instr.CookingTips {
		writePara(b, "• "+tip)
	}
	writeEmptyPara(b)

	writeHeading(b, "Timing")
	for _, line := range timingLines(instr.Timing) {
		writePara(b, "• "+line)
	}
	writeEmptyPara(b)

	writeHeading(b, "Storage")
	writePara(b, instr.Storage)

	writeHeading(b, "Serving Suggestions")
	writePara(b, instr.Serving)
}

func writeTitle(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="CustomTitle"/><w:jc w:val="center"/></w:pPr>`)
	writeRun(b, text, `<w:b/><w:sz w:val="48"/>`)
	b.WriteString(`</w:p>`)
}

func writeHeading(b *strings.Builder, text string) {
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="CustomHeading"/></w:pPr>`)
	writeRun(b, text, `<w:b/><w:color w:val="2E5A88"/><w:sz w:val="32"/>`)
	b.WriteString(`</w:p>`)
}

func writePara(b *strings.Builder, text string) {
	b.WriteString(`<w:p>`)
	writeRun(b, text, "")
	b.WriteString(`</w:p>`)
}

func writeEmptyPara(b *strings.Builder) {
	b.WriteString(`<w:p/>`)
}

func writeRun(b *strings.Builder, text, runProps string) {
	b.WriteString(`<w:r>`)
	if runProps != "" {
		b.WriteString(`<w:rPr>`)
		b.WriteString(runProps)
		b.WriteString(`</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeXML(text))
	b.WriteString(`</w:t></w:r>`)
}

// writeTable emits a grid-bordered table. A non-nil header renders as a
// shaded first row with white bold text.
func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(b, `<w:%s w:val="single" w:sz="4" w:color="808080"/>`, edge)
	}
	b.WriteString(`</w:tblBorders></w:tblPr>`)

	if header != nil {
		b.WriteString(`<w:tr>`)
		for _, cell := range header {
			b.WriteString(`<w:tc><w:tcPr><w:shd w:val="clear" w:fill="2E5A88"/></w:tcPr><w:p>`)
			writeRun(b, cell, `<w:b/><w:color w:val="FFFFFF"/>`)
			b.WriteString(`</w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	for _, row := range rows {
		b.WriteString(`<w:tr>`)
		for _, cell := range row {
			b.WriteString(`<w:tc><w:p>`)
			writeRun(b, cell, "")
			b.WriteString(`</w:p></w:tc>`)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const docxPackageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:rPr><w:sz w:val="22"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="CustomTitle"><w:name w:val="CustomTitle"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="48"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="CustomHeading"><w:name w:val="CustomHeading"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:color w:val="2E5A88"/><w:sz w:val="32"/></w:rPr></w:style>` +
	`</w:styles>`
