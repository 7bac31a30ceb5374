package certificates

import (
	"context"
	"fmt"
	"path/filepath"

	"isoplatform/certification-api/pkg/storage"
)

// StorageProvider derives the object key and local scratch path for a
// certificate document and uploads it.
type StorageProvider struct {
	uploader  storage.Uploader
	outputDir string
}

func NewStorageProvider(uploader storage.Uploader, outputDir string) *StorageProvider {
	return &StorageProvider{uploader: uploader, outputDir: outputDir}
}

func (p *StorageProvider) ObjectKey(certNumber string) string {
	return fmt.Sprintf("certificates/%s.pdf", certNumber)
}

func (p *StorageProvider) LocalPath(certNumber string) string {
	return filepath.Join(p.outputDir, certNumber+".pdf")
}

func (p *StorageProvider) Upload(ctx context.Context, localPath, certNumber string) (storage.UploadResult, error) {
	return p.uploader.Upload(ctx, localPath, p.ObjectKey(certNumber))
}
