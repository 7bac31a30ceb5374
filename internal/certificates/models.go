package certificates

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Certificate is one issued vehicle inspection certificate. VIN is the
// natural key: the unique index is the authoritative guard against
// double issuance.
type Certificate struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CertNumber        string     `gorm:"uniqueIndex;not null" json:"cert_number"`
	IssueDate         time.Time  `gorm:"not null" json:"issue_date"`
	ExpireDate        time.Time  `gorm:"not null" json:"expire_date"`
	InspectDate       *time.Time `json:"inspect_date,omitempty"`
	Manufacturer      string     `json:"manufacturer"`
	ModelName         string     `json:"model_name"`
	VIN               string     `gorm:"column:vin;uniqueIndex;not null" json:"vin"`
	ManufactureYear   *int       `json:"manufacture_year,omitempty"`
	FirstRegisterDate *time.Time `json:"first_register_date,omitempty"`
	Mileage           *int       `json:"mileage,omitempty"`
	InspectorCode     string     `json:"inspector_code"`
	InspectorName     string     `json:"inspector_name"`
	SignaturePath     string     `json:"signature_path"`
	IssuedBy          string     `json:"issued_by"`
	PdfURL            string     `gorm:"column:pdf_url" json:"pdf_url"`
	PdfS3Key          string     `gorm:"column:pdf_s3_key" json:"pdf_s3_key"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// IssueRequest is the typed, validated issuance request handed to the
// service. Optional values are nil pointers.
type IssueRequest struct {
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
	SignaturePath     string
	IssuedBy          string
}

// IssueCertificateRequest is the JSON request body. Dates are accepted
// as YYYY-MM-DD strings.
type IssueCertificateRequest struct {
	CertNumber        string `json:"certNumber"`
	IssueDate         string `json:"issueDate"`
	ExpireDate        string `json:"expireDate"`
	InspectDate       string `json:"inspectDate"`
	Manufacturer      string `json:"manufacturer"`
	ModelName         string `json:"modelName"`
	VIN               string `json:"vin"`
	ManufactureYear   *int   `json:"manufactureYear"`
	FirstRegisterDate string `json:"firstRegisterDate"`
	Mileage           *int   `json:"mileage"`
	InspectorCode     string `json:"inspectorCode"`
	InspectorName     string `json:"inspectorName"`
	SignaturePath     string `json:"signaturePath"`
	IssuedBy          string `json:"issuedBy"`
}

// Validate parses and validates the wire request into an IssueRequest.
func (r IssueCertificateRequest) Validate() (IssueRequest, error) {
	if r.VIN == "" {
		return IssueRequest{}, fmt.Errorf("%w: vin is required", ErrValidation)
	}
	req := IssueRequest{
		CertNumber:      r.CertNumber,
		Manufacturer:    r.Manufacturer,
		ModelName:       r.ModelName,
		VIN:             r.VIN,
		ManufactureYear: r.ManufactureYear,
		Mileage:         r.Mileage,
		InspectorCode:   r.InspectorCode,
		InspectorName:   r.InspectorName,
		SignaturePath:   r.SignaturePath,
		IssuedBy:        r.IssuedBy,
	}
	var err error
	if req.IssueDate, err = parseDate("issueDate", r.IssueDate); err != nil {
		return IssueRequest{}, err
	}
	if req.ExpireDate, err = parseDate("expireDate", r.ExpireDate); err != nil {
		return IssueRequest{}, err
	}
	if req.InspectDate, err = parseDate("inspectDate", r.InspectDate); err != nil {
		return IssueRequest{}, err
	}
	if req.FirstRegisterDate, err = parseDate("firstRegisterDate", r.FirstRegisterDate); err != nil {
		return IssueRequest{}, err
	}
	return req, nil
}

func parseDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ErrValidation, name)
	}
	return &d, nil
}

// CertificateResponse is the JSON shape returned to callers.
type CertificateResponse struct {
	ID                uuid.UUID `json:"id"`
	CertNumber        string    `json:"certNumber"`
	IssueDate         string    `json:"issueDate"`
	ExpireDate        string    `json:"expireDate"`
	InspectDate       string    `json:"inspectDate,omitempty"`
	Manufacturer      string    `json:"manufacturer"`
	ModelName         string    `json:"modelName"`
	VIN               string    `json:"vin"`
	ManufactureYear   *int      `json:"manufactureYear,omitempty"`
	FirstRegisterDate string    `json:"firstRegisterDate,omitempty"`
	Mileage           *int      `json:"mileage,omitempty"`
	InspectorCode     string    `json:"inspectorCode"`
	InspectorName     string    `json:"inspectorName"`
	IssuedBy          string    `json:"issuedBy"`
	PdfFilePath       string    `json:"pdfFilePath"`
}

func toResponse(c *Certificate) CertificateResponse {
	return CertificateResponse{
		ID:                c.ID,
		CertNumber:        c.CertNumber,
		IssueDate:         c.IssueDate.Format(dateLayout),
		ExpireDate:        c.ExpireDate.Format(dateLayout),
		InspectDate:       formatDate(c.InspectDate),
		Manufacturer:      c.Manufacturer,
		ModelName:         c.ModelName,
		VIN:               c.VIN,
		ManufactureYear:   c.ManufactureYear,
		FirstRegisterDate: formatDate(c.FirstRegisterDate),
		Mileage:           c.Mileage,
		InspectorCode:     c.InspectorCode,
		InspectorName:     c.InspectorName,
		IssuedBy:          c.IssuedBy,
		PdfFilePath:       c.PdfURL,
	}
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}
