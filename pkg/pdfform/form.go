package pdfform

import (
	"fmt"

	"github.com/unidoc/unipdf/v3/core"
	"github.com/unidoc/unipdf/v3/model"
)

// Form is the field directory of a loaded template.
type Form interface {
	// Field resolves a form field by its fully qualified name. A missing
	// field is an expected outcome, not an error.
	Field(name string) (FormField, bool)
}

// FormField is one fillable field of the template.
type FormField interface {
	Name() string
	// SetValue writes the display string into the field. When unicode is
	// true the value is stored through the UTF-16BE path so that Hangul
	// text survives appearance generation.
	SetValue(value string, unicode bool) error
}

type acroFormDirectory struct {
	fields map[string]*acroField
}

func newAcroFormDirectory(form *model.PdfAcroForm) *acroFormDirectory {
	dir := &acroFormDirectory{fields: make(map[string]*acroField)}
	for _, f := range form.AllFields() {
		name, err := f.FullName()
		if err != nil {
			name = f.PartialName()
		}
		dir.fields[name] = &acroField{name: name, field: f}
	}
	return dir
}

func (d *acroFormDirectory) Field(name string) (FormField, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// Names returns the field names of the loaded template, for diagnostics.
func (d *acroFormDirectory) Names() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	return names
}

type acroField struct {
	name  string
	field *model.PdfField
}

func (f *acroField) Name() string { return f.name }

func (f *acroField) SetValue(value string, unicode bool) error {
	if _, ok := f.field.GetContext().(*model.PdfFieldText); !ok {
		return fmt.Errorf("field %q is not a text field", f.name)
	}
	if unicode {
		f.field.V = core.MakeEncodedString(value, true)
	} else {
		f.field.V = core.MakeString(value)
	}
	return nil
}
