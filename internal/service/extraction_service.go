package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"go.uber.org/zap"
)

type ExtractionServiceInterface interface {
	ExtractText(ctx context.Context, storageKey string) (string, error)
}

// StorageReader fetches stored objects by name.
type StorageReader interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

// PDFTextFunc turns the PDF at path into text.
type PDFTextFunc func(path string) (string, error)

type ExtractionService struct {
	storage StorageReader
	tmpDir  string
	readPDF PDFTextFunc
	log     *zap.Logger
}

func NewExtractionService(storage StorageReader, tmpDir string, readPDF PDFTextFunc, log *zap.Logger) *ExtractionService {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &ExtractionService{storage: storage, tmpDir: tmpDir, readPDF: readPDF, log: log}
}

// ExtractText fetches the PDF behind storageKey, parks it in a temporary file for the PDF
// library and returns its text. The temporary file is gone when ExtractText returns.
func (s *ExtractionService) ExtractText(ctx context.Context, storageKey string) (string, error) {
	fileName := path.Base(storageKey)
	if fileName == "." || fileName == "/" {
		return "", &apperror.ExtractionError{Key: storageKey, Err: errors.New("invalid file path")}
	}

	tmpPath, err := s.createTempFile()
	if err != nil {
		return "", &apperror.ExtractionError{Key: storageKey, Err: err}
	}
	defer s.removeTempFile(tmpPath)

	data, err := s.storage.Get(ctx, fileName)
	if err != nil {
		return "", &apperror.ExtractionError{Key: storageKey, Err: err}
	}

	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return "", &apperror.ExtractionError{Key: storageKey, Err: fmt.Errorf("write temp file: %w", err)}
	}

	text, err := s.readPDF(tmpPath)
	if err != nil {
		return "", &apperror.ExtractionError{Key: storageKey, Err: err}
	}
	return text, nil
}

func (s *ExtractionService) createTempFile() (string, error) {
	if err := os.MkdirAll(s.tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	f, err := os.CreateTemp(s.tmpDir, fmt.Sprintf("%d-*.pdf", time.Now().UnixNano()))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		s.removeTempFile(name)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return name, nil
}

func (s *ExtractionService) removeTempFile(name string) {
	if err := os.Remove(name); err != nil {
		s.log.Warn("failed to delete temporary file", zap.String("path", name), zap.Error(err))
	}
}
