package certificates

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"isoplatform/certification-api/pkg/pdfform"
	"isoplatform/certification-api/pkg/storage"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByVIN(ctx context.Context, vin string) (*Certificate, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Certificate), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, cert *Certificate) error {
	args := m.Called(ctx, cert)
	return args.Error(0)
}

// MockGenerator is a mock implementation of the DocumentGenerator interface
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, data pdfform.CertificateData, outPath string) ([]pdfform.FieldWarning, error) {
	args := m.Called(ctx, data, outPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pdfform.FieldWarning), args.Error(1)
}

// MockUploader is a mock implementation of the storage.Uploader interface
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, localPath, key string) (storage.UploadResult, error) {
	args := m.Called(ctx, localPath, key)
	return args.Get(0).(storage.UploadResult), args.Error(1)
}

func newTestService(t *testing.T) (Service, *MockRepository, *MockGenerator, *MockUploader, string) {
	t.Helper()
	repo := new(MockRepository)
	gen := new(MockGenerator)
	uploader := new(MockUploader)
	outputDir := t.TempDir()
	provider := NewStorageProvider(uploader, outputDir)
	service := NewService(repo, provider, gen, zap.NewNop())
	return service, repo, gen, uploader, outputDir
}

func TestIssueAppliesDefaults(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(nil, nil)
	gen.On("Generate", ctx, mock.AnythingOfType("pdfform.CertificateData"), mock.AnythingOfType("string")).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			// the generator leaves a local file behind, as the real one does
			assert.NoError(t, os.WriteFile(args.String(2), []byte("%PDF-1.7"), 0o644))
		})
	uploader.On("Upload", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(storage.UploadResult{Key: "certificates/x.pdf", URL: "https://cdn.example.com/certificates/x.pdf"}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*certificates.Certificate")).Return(nil)

	mileage := 15000
	cert, err := service.Issue(ctx, IssueRequest{
		VIN:          "KMHXX00XXXX000001",
		Manufacturer: "ISO Motors",
		ModelName:    "Model X",
		Mileage:      &mileage,
	}, "inspector-kim")

	assert.NoError(t, err)
	assert.NotNil(t, cert)
	assert.Regexp(t, regexp.MustCompile(`^CERT-\d{8}-[A-Z0-9]{6}$`), cert.CertNumber)
	assert.Equal(t, cert.IssueDate.AddDate(1, 0, 0), cert.ExpireDate)
	assert.WithinDuration(t, time.Now(), cert.IssueDate, time.Minute)
	assert.Equal(t, "inspector-kim", cert.IssuedBy)
	assert.Equal(t, "certificates/x.pdf", cert.PdfS3Key)
	assert.NotEmpty(t, cert.PdfURL)

	repo.AssertExpectations(t)
	gen.AssertExpectations(t)
	uploader.AssertExpectations(t)
}

func TestIssueRemovesLocalFile(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	var localPath string
	repo.On("FindByVIN", ctx, mock.Anything).Return(nil, nil)
	gen.On("Generate", ctx, mock.Anything, mock.Anything).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			localPath = args.String(2)
			assert.NoError(t, os.WriteFile(localPath, []byte("%PDF-1.7"), 0o644))
		})
	uploader.On("Upload", ctx, mock.Anything, mock.Anything).
		Return(storage.UploadResult{Key: "k", URL: "u"}, nil)
	repo.On("Save", ctx, mock.Anything).Return(nil)

	_, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000002"}, "system")

	assert.NoError(t, err)
	_, statErr := os.Stat(localPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestIssueReturnsExistingForDuplicateVIN(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	existing := &Certificate{
		CertNumber: "CERT-20250101-AAAAAA",
		VIN:        "KMHXX00XXXX000001",
		PdfURL:     "https://cdn.example.com/certificates/CERT-20250101-AAAAAA.pdf",
	}
	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(existing, nil)

	cert, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")

	assert.NoError(t, err)
	assert.Equal(t, existing, cert)
	// no second generation, upload or persist
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIssueIsIdempotentByVIN(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	var stored *Certificate
	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(nil, nil).Once()
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return(nil, nil).Once()
	uploader.On("Upload", ctx, mock.Anything, mock.Anything).
		Return(storage.UploadResult{Key: "k", URL: "u"}, nil).Once()
	repo.On("Save", ctx, mock.Anything).Return(nil).Once().
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*Certificate)
		})

	first, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")
	assert.NoError(t, err)

	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(stored, nil).Once()
	second, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")
	assert.NoError(t, err)

	assert.Equal(t, first.CertNumber, second.CertNumber)
	gen.AssertNumberOfCalls(t, "Generate", 1)
	uploader.AssertNumberOfCalls(t, "Upload", 1)
}

func TestIssueRejectsExpiryBeforeIssue(t *testing.T) {
	service, repo, gen, _, _ := newTestService(t)
	ctx := context.Background()

	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(nil, nil)

	issue := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	expire := issue.AddDate(0, 0, -1)
	_, err := service.Issue(ctx, IssueRequest{
		VIN:        "KMHXX00XXXX000001",
		IssueDate:  &issue,
		ExpireDate: &expire,
	}, "system")

	assert.ErrorIs(t, err, ErrValidation)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueDuplicateVINWinsOverValidation(t *testing.T) {
	service, repo, gen, _, _ := newTestService(t)
	ctx := context.Background()

	existing := &Certificate{
		CertNumber: "CERT-20250101-AAAAAA",
		VIN:        "KMHXX00XXXX000001",
	}
	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(existing, nil)

	// the re-issuance request is malformed, but the dedup check comes
	// first: the stored record is returned unchanged
	issue := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	expire := issue.AddDate(0, 0, -1)
	cert, err := service.Issue(ctx, IssueRequest{
		VIN:        "KMHXX00XXXX000001",
		IssueDate:  &issue,
		ExpireDate: &expire,
	}, "system")

	assert.NoError(t, err)
	assert.Equal(t, existing, cert)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueRequiresVIN(t *testing.T) {
	service, _, _, _, _ := newTestService(t)

	_, err := service.Issue(context.Background(), IssueRequest{}, "system")

	assert.ErrorIs(t, err, ErrValidation)
}

func TestIssueUploadFailureDoesNotPersist(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	repo.On("FindByVIN", ctx, mock.Anything).Return(nil, nil)
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return(nil, nil)
	uploader.On("Upload", ctx, mock.Anything, mock.Anything).
		Return(storage.UploadResult{}, errors.New("connection reset"))

	_, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")

	assert.ErrorIs(t, err, ErrIssuanceFailed)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIssueGenerateFailureIsWrapped(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	cause := errors.New("template has no interactive form")
	repo.On("FindByVIN", ctx, mock.Anything).Return(nil, nil)
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return(nil, cause)

	_, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")

	assert.ErrorIs(t, err, ErrIssuanceFailed)
	assert.ErrorIs(t, err, cause)
	uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestIssueConvergesOnDuplicateKey(t *testing.T) {
	service, repo, gen, uploader, _ := newTestService(t)
	ctx := context.Background()

	winner := &Certificate{CertNumber: "CERT-20250101-BBBBBB", VIN: "KMHXX00XXXX000001"}
	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(nil, nil).Once()
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return(nil, nil)
	uploader.On("Upload", ctx, mock.Anything, mock.Anything).
		Return(storage.UploadResult{Key: "k", URL: "u"}, nil)
	repo.On("Save", ctx, mock.Anything).Return(gorm.ErrDuplicatedKey)
	repo.On("FindByVIN", ctx, "KMHXX00XXXX000001").Return(winner, nil).Once()

	cert, err := service.Issue(ctx, IssueRequest{VIN: "KMHXX00XXXX000001"}, "system")

	assert.NoError(t, err)
	assert.Equal(t, winner, cert)
}
