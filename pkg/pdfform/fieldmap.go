package pdfform

import "time"

// CertificateData carries the typed values rendered into the template.
// Nil pointers render as empty strings.
type CertificateData struct {
	CertNumber        string
	IssueDate         *time.Time
	ExpireDate        *time.Time
	InspectDate       *time.Time
	Manufacturer      string
	ModelName         string
	VIN               string
	ManufactureYear   *int
	FirstRegisterDate *time.Time
	Mileage           *int
	InspectorCode     string
	InspectorName     string
	IssuedBy          string
}

// FieldValue is one resolved (template field, display string) pair.
type FieldValue struct {
	Key           string
	TemplateField string
	Value         string
}

type fieldMapping struct {
	key           string
	templateField string
	format        func(CertificateData) string
}

// templateFieldMap is the fixed mapping from semantic keys to the form
// field names of the certificate template. The template schema is
// versioned with the template file; this list changes only with it.
var templateFieldMap = []fieldMapping{
	{"certNumber", "certNumber", func(d CertificateData) string { return d.CertNumber }},
	{"issueDate", "issueDate_es_:date", func(d CertificateData) string { return FormatDate(d.IssueDate) }},
	{"expireDate", "expireDate_es_:date", func(d CertificateData) string { return FormatDate(d.ExpireDate) }},
	{"inspectDate", "inspectDate_es_:date", func(d CertificateData) string { return FormatDate(d.InspectDate) }},
	{"manufacturer", "manu_es_:fullname", func(d CertificateData) string { return d.Manufacturer }},
	{"modelName", "modelName", func(d CertificateData) string { return d.ModelName }},
	{"vin", "vin", func(d CertificateData) string { return d.VIN }},
	{"manufactureYear", "manufactureYear_es_:date", func(d CertificateData) string { return FormatInt(d.ManufactureYear) }},
	{"firstRegisterDate", "firstRegisterDate_es_:date", func(d CertificateData) string { return FormatDate(d.FirstRegisterDate) }},
	{"mileage", "mileage", func(d CertificateData) string { return FormatMileage(d.Mileage) }},
	{"inspectorCode", "inspectorCode", func(d CertificateData) string { return d.InspectorCode }},
	{"inspectorName", "inspectorName_es_:fullname", func(d CertificateData) string { return d.InspectorName }},
	{"issuedBy", "corpName_es_:fullname", func(d CertificateData) string { return d.IssuedBy }},
}

// FieldValues resolves the full semantic-to-display mapping for data.
func FieldValues(data CertificateData) []FieldValue {
	values := make([]FieldValue, 0, len(templateFieldMap))
	for _, m := range templateFieldMap {
		values = append(values, FieldValue{
			Key:           m.key,
			TemplateField: m.templateField,
			Value:         m.format(data),
		})
	}
	return values
}
