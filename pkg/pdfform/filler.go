package pdfform

import "errors"

// errFieldMissing marks a mapped field that the loaded template does not
// define. Templates may legitimately omit optional fields.
var errFieldMissing = errors.New("field not present in template")

// FieldWarning records one non-fatal degradation while rendering a
// certificate: a mapped field missing from the template, or a field
// whose value could not be written.
type FieldWarning struct {
	Field string
	Err   error
}

// fillFields writes every resolved value into its template field.
// Failures are contained per field: a missing field is skipped, a failed
// write falls back to an empty value, and a failed fallback leaves the
// field at its template default. All degradations are collected and
// returned; none aborts the remaining fields.
func fillFields(form Form, values []FieldValue) []FieldWarning {
	var warnings []FieldWarning
	for _, v := range values {
		field, ok := form.Field(v.TemplateField)
		if !ok {
			warnings = append(warnings, FieldWarning{Field: v.TemplateField, Err: errFieldMissing})
			continue
		}
		unicode := ContainsKorean(v.Value)
		if err := field.SetValue(v.Value, unicode); err != nil {
			if fbErr := field.SetValue("", false); fbErr != nil {
				warnings = append(warnings, FieldWarning{Field: v.TemplateField, Err: fbErr})
				continue
			}
			warnings = append(warnings, FieldWarning{Field: v.TemplateField, Err: err})
		}
	}
	return warnings
}
