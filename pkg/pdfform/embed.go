package pdfform

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/model"
)

// embedFormFont registers font under the given name in the form's default
// resource dictionary, points the form-level and per-field default
// appearance strings at it, and adds it to the resources of every text
// field widget's normal appearance stream. Widget-level failures are
// collected and returned instead of aborting; they degrade a single
// widget's rendering, not the form.
//
// Value writes trigger appearance generation against the default
// appearance, so this must run before any field value is set.
func embedFormFont(form *model.PdfAcroForm, font *model.PdfFont, name string, size float64) ([]FieldWarning, error) {
	if form.DR == nil {
		form.DR = model.NewPdfPageResources()
	}
	fontName := core.PdfObjectName(name)
	if err := form.DR.SetFontByName(fontName, font.ToPdfObject()); err != nil {
		return nil, fmt.Errorf("register font in form resources: %w", err)
	}

	da := "/" + name + " " + strconv.FormatFloat(size, 'f', -1, 64) + " Tf 0 g"
	form.DA = core.MakeString(da)

	var warnings []FieldWarning
	for _, field := range form.AllFields() {
		if _, ok := field.GetContext().(*model.PdfFieldText); !ok {
			continue
		}
		if field.VariableText == nil {
			field.VariableText = &model.VariableText{}
		}
		field.VariableText.DA = core.MakeString(da)

		// Some fields render through several widgets; attempt each and
		// report the failures together.
		for i, widget := range field.Annotations {
			if _, err := embedWidgetFont(widget, fontName, font.ToPdfObject()); err != nil {
				warnings = append(warnings, FieldWarning{
					Field: fmt.Sprintf("%s[widget %d]", field.PartialName(), i),
					Err:   err,
				})
			}
		}
	}
	return warnings, nil
}

// embedWidgetFont adds the font to the resources of the widget's normal
// appearance stream. Widgets without appearance streams have nothing to
// patch and are skipped, reported via the bool; only a malformed
// appearance dictionary is an error.
func embedWidgetFont(widget *model.PdfAnnotationWidget, name core.PdfObjectName, fontObj core.PdfObject) (bool, error) {
	if widget == nil || widget.AP == nil {
		return false, nil
	}
	apDict, ok := core.GetDict(widget.AP)
	if !ok {
		return false, errors.New("widget appearance is not a dictionary")
	}
	normal, ok := core.GetStream(apDict.Get("N"))
	if !ok {
		return false, nil
	}
	resources, ok := core.GetDict(normal.Get("Resources"))
	if !ok {
		resources = core.MakeDict()
		normal.Set("Resources", resources)
	}
	fonts, ok := core.GetDict(resources.Get("Font"))
	if !ok {
		fonts = core.MakeDict()
		resources.Set("Font", fonts)
	}
	fonts.Set(name, fontObj)
	return true, nil
}
