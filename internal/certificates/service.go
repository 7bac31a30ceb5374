package certificates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"isoplatform/certification-api/pkg/pdfform"
)

// ErrValidation marks caller mistakes; handlers surface the message.
var ErrValidation = errors.New("invalid request")

// ErrIssuanceFailed is the opaque error for any fatal generation,
// upload or persistence failure. The cause stays in the logs.
var ErrIssuanceFailed = errors.New("certificate issuance failed")

// DocumentGenerator produces the flattened certificate document.
type DocumentGenerator interface {
	Generate(ctx context.Context, data pdfform.CertificateData, outPath string) ([]pdfform.FieldWarning, error)
}

type Service interface {
	Issue(ctx context.Context, req IssueRequest, issuedBy string) (*Certificate, error)
	GetByVIN(ctx context.Context, vin string) (*Certificate, error)
}

type certificateService struct {
	repo    Repository
	storage *StorageProvider
	pdf     DocumentGenerator
	logger  *zap.Logger
}

func NewService(repo Repository, storage *StorageProvider, pdf DocumentGenerator, logger *zap.Logger) Service {
	return &certificateService{
		repo:    repo,
		storage: storage,
		pdf:     pdf,
		logger:  logger,
	}
}

// Issue runs one issuance end to end: dedup check, entity build,
// document generation, upload, persistence, local cleanup. Issuance is
// idempotent by VIN: a request for an already issued vehicle returns
// the existing record without generating anything.
func (s *certificateService) Issue(ctx context.Context, req IssueRequest, issuedBy string) (*Certificate, error) {
	if req.VIN == "" {
		return nil, fmt.Errorf("%w: vin is required", ErrValidation)
	}

	// Duplicate VIN is not an error: it short-circuits before any
	// validation of the rest of the request, entity build or generation.
	existing, err := s.repo.FindByVIN(ctx, req.VIN)
	if err != nil {
		return nil, s.fail(req.VIN, "dedup check", err)
	}
	if existing != nil {
		s.logger.Info("certificate already issued for vin",
			zap.String("vin", existing.VIN),
			zap.String("cert_number", existing.CertNumber))
		return existing, nil
	}

	cert, err := s.buildEntity(req, issuedBy)
	if err != nil {
		return nil, err
	}

	localPath := s.storage.LocalPath(cert.CertNumber)
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("remove local pdf", zap.String("path", localPath), zap.Error(err))
		}
	}()

	warnings, err := s.pdf.Generate(ctx, toCertificateData(cert), localPath)
	if err != nil {
		return nil, s.fail(cert.VIN, "generate document", err)
	}
	if len(warnings) > 0 {
		s.logger.Warn("certificate rendered with degraded fields",
			zap.String("cert_number", cert.CertNumber),
			zap.Int("fields", len(warnings)))
	}

	up, err := s.storage.Upload(ctx, localPath, cert.CertNumber)
	if err != nil {
		return nil, s.fail(cert.VIN, "upload document", err)
	}
	cert.PdfS3Key = up.Key
	cert.PdfURL = up.URL

	if err := s.repo.Save(ctx, cert); err != nil {
		// A concurrent issuance for the same VIN may have won the race;
		// the unique index decides, converge on the stored record.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.repo.FindByVIN(ctx, cert.VIN); ferr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, s.fail(cert.VIN, "persist record", err)
	}

	s.logger.Info("certificate issued",
		zap.String("vin", cert.VIN),
		zap.String("cert_number", cert.CertNumber),
		zap.String("pdf_url", cert.PdfURL))
	return cert, nil
}

func (s *certificateService) GetByVIN(ctx context.Context, vin string) (*Certificate, error) {
	return s.repo.FindByVIN(ctx, vin)
}

func (s *certificateService) buildEntity(req IssueRequest, issuedBy string) (*Certificate, error) {
	now := time.Now()
	issue := now
	if req.IssueDate != nil {
		issue = *req.IssueDate
	}
	expire := issue.AddDate(1, 0, 0)
	if req.ExpireDate != nil {
		if req.ExpireDate.Before(issue) {
			return nil, fmt.Errorf("%w: expireDate is earlier than issueDate", ErrValidation)
		}
		expire = *req.ExpireDate
	}
	certNumber := req.CertNumber
	if certNumber == "" {
		certNumber = NewCertNumber()
	}
	if req.IssuedBy != "" {
		issuedBy = req.IssuedBy
	}

	return &Certificate{
		ID:                uuid.New(),
		CertNumber:        certNumber,
		IssueDate:         issue,
		ExpireDate:        expire,
		InspectDate:       req.InspectDate,
		Manufacturer:      req.Manufacturer,
		ModelName:         req.ModelName,
		VIN:               req.VIN,
		ManufactureYear:   req.ManufactureYear,
		FirstRegisterDate: req.FirstRegisterDate,
		Mileage:           req.Mileage,
		InspectorCode:     req.InspectorCode,
		InspectorName:     req.InspectorName,
		SignaturePath:     req.SignaturePath,
		IssuedBy:          issuedBy,
	}, nil
}

func toCertificateData(c *Certificate) pdfform.CertificateData {
	return pdfform.CertificateData{
		CertNumber:        c.CertNumber,
		IssueDate:         &c.IssueDate,
		ExpireDate:        &c.ExpireDate,
		InspectDate:       c.InspectDate,
		Manufacturer:      c.Manufacturer,
		ModelName:         c.ModelName,
		VIN:               c.VIN,
		ManufactureYear:   c.ManufactureYear,
		FirstRegisterDate: c.FirstRegisterDate,
		Mileage:           c.Mileage,
		InspectorCode:     c.InspectorCode,
		InspectorName:     c.InspectorName,
		IssuedBy:          c.IssuedBy,
	}
}

func (s *certificateService) fail(vin, stage string, err error) error {
	s.logger.Error("certificate issuance failed",
		zap.String("vin", vin),
		zap.String("stage", stage),
		zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrIssuanceFailed, stage, err)
}
