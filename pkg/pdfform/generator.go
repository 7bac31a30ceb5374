package pdfform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unidoc/unipdf/v3/annotator"
	"github.com/unidoc/unipdf/v3/model"
	"go.uber.org/zap"
)

// Config locates the template and font resources and names the embedded
// font. Resolved once at startup and injected; the generator reads no
// ambient state at call time.
type Config struct {
	TemplatePath string
	FontPath     string
	FontName     string
	FontSize     float64
	OutputDir    string
}

// Generator fills the certificate template and writes flattened PDFs.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

func NewGenerator(cfg Config, logger *zap.Logger) *Generator {
	if cfg.FontName == "" {
		cfg.FontName = "KRFont"
	}
	if cfg.FontSize == 0 {
		cfg.FontSize = 12
	}
	return &Generator{cfg: cfg, logger: logger}
}

// Generate runs the document pipeline for one certificate: load the
// template, embed the Hangul-capable font, fill the mapped fields,
// regenerate appearances, flatten, and write to outPath. The returned
// warnings list the fields that degraded without failing the document.
func (g *Generator) Generate(ctx context.Context, data CertificateData, outPath string) ([]FieldWarning, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := os.Open(g.cfg.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer tmpl.Close()

	reader, err := model.NewPdfReader(tmpl)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	form := reader.AcroForm
	if form == nil {
		return nil, fmt.Errorf("template %s has no interactive form", g.cfg.TemplatePath)
	}

	dir := newAcroFormDirectory(form)
	g.logger.Debug("template form fields", zap.Strings("fields", dir.Names()))

	font, err := model.NewCompositePdfFontFromTTFFile(g.cfg.FontPath)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", g.cfg.FontPath, err)
	}

	warnings, err := embedFormFont(form, font, g.cfg.FontName, g.cfg.FontSize)
	if err != nil {
		return nil, fmt.Errorf("embed font: %w", err)
	}
	warnings = append(warnings, fillFields(dir, FieldValues(data))...)
	for _, w := range warnings {
		g.logger.Warn("field degraded", zap.String("field", w.Field), zap.Error(w.Err))
	}

	appearance := annotator.FieldAppearance{OnlyIfMissing: false, RegenerateTextFields: true}
	style := appearance.Style()
	style.Fonts = &annotator.AppearanceFontStyle{
		Fallback: &annotator.AppearanceFont{
			Font: font,
			Name: g.cfg.FontName,
			Size: g.cfg.FontSize,
		},
		ForceReplace: true,
	}
	appearance.SetStyle(style)

	if err := reader.FlattenFields(true, appearance); err != nil {
		return warnings, fmt.Errorf("flatten form: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return warnings, fmt.Errorf("create output dir: %w", err)
	}
	writer := model.NewPdfWriter()
	for _, page := range reader.PageList {
		if err := writer.AddPage(page); err != nil {
			return warnings, fmt.Errorf("add page: %w", err)
		}
	}
	if err := writer.WriteToFile(outPath); err != nil {
		return warnings, fmt.Errorf("write %s: %w", outPath, err)
	}
	return warnings, nil
}
