package usecase

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
	"go.uber.org/zap"
)

const pdfMediaType = "application/pdf"

type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
	ProjectID   string
}

type FileUsecase struct {
	storage  service.StorageServiceInterface
	projects ProjectStore
	files    FileStore
	now      func() time.Time
	log      *zap.Logger
}

func NewFileUsecase(storage service.StorageServiceInterface, projects ProjectStore, files FileStore, log *zap.Logger) *FileUsecase {
	return &FileUsecase{storage: storage, projects: projects, files: files, now: time.Now, log: log}
}

// Upload stores a PDF resume. With a project id the upload is tracked as a file record
// that moves from Pending to Done or Failed, and a successful upload counts a candidate.
func (uc *FileUsecase) Upload(ctx context.Context, in UploadInput) (*dto.UploadResponse, error) {
	if in.FileName == "" {
		return nil, apperror.NewValidationError("", "No file uploaded")
	}
	if mediaType, _, err := mime.ParseMediaType(in.ContentType); err != nil || mediaType != pdfMediaType {
		return nil, apperror.NewValidationError("", "Only PDF files are allowed")
	}

	uploadDate := uc.now().UTC().Format(model.UploadDateLayout)

	var record *model.UploadedFile
	if in.ProjectID != "" {
		if _, err := uc.projects.FindProjectByID(in.ProjectID); err != nil {
			return nil, err
		}
		record = &model.UploadedFile{
			Name:       in.FileName,
			UploadDate: uploadDate,
			Status:     model.FileStatusPending,
			ProjectID:  in.ProjectID,
		}
		if err := uc.files.CreateFile(record); err != nil {
			return nil, fmt.Errorf("create file record: %w", err)
		}
	}

	key, err := uc.storage.Put(ctx, in.Data, in.FileName)
	if err != nil {
		if record != nil {
			if markErr := uc.files.MarkFailed(record); markErr != nil {
				uc.log.Error("marking upload as failed", zap.String("file", in.FileName), zap.Error(markErr))
			}
		}
		return nil, err
	}

	if record != nil {
		if err := uc.files.MarkDone(record); err != nil {
			return nil, fmt.Errorf("complete file record: %w", err)
		}
	}

	uc.log.Info("resume uploaded", zap.String("key", key), zap.String("project_id", in.ProjectID))
	return &dto.UploadResponse{
		Message:    "File uploaded successfully",
		FileName:   in.FileName,
		UploadDate: uploadDate,
		Status:     model.FileStatusDone,
		Path:       key,
	}, nil
}

// Delete removes a resume from storage and forgets its file records.
func (uc *FileUsecase) Delete(ctx context.Context, fileName, projectID string) error {
	if fileName == "" {
		return apperror.NewValidationError("", "No file name provided")
	}
	if err := uc.storage.Delete(ctx, fileName); err != nil {
		return err
	}
	removed, err := uc.files.DeleteFiles(path.Base(fileName), projectID)
	if err != nil {
		return fmt.Errorf("delete file records: %w", err)
	}
	uc.log.Info("resume deleted", zap.String("file", fileName), zap.Int("records", removed))
	return nil
}

func (uc *FileUsecase) ViewURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", apperror.NewValidationError("", "No file name provided")
	}
	return uc.storage.SignedURL(ctx, fileName, 0, "inline")
}

func (uc *FileUsecase) DownloadURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", apperror.NewValidationError("", "No file name provided")
	}
	name := strings.ReplaceAll(path.Base(fileName), `"`, "")
	return uc.storage.SignedURL(ctx, fileName, 0, fmt.Sprintf(`attachment; filename="%s"`, name))
}

func (uc *FileUsecase) ProjectFiles(projectID string) ([]model.UploadedFile, error) {
	if _, err := uc.projects.FindProjectByID(projectID); err != nil {
		return nil, err
	}
	return uc.files.FindFilesByProject(projectID)
}
