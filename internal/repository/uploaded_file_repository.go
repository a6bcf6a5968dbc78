package repository

import (
	"github.com/fadilmartias/resume-screener/internal/model"
	"gorm.io/gorm"
)

type UploadedFileRepository struct {
	db *gorm.DB
}

func NewUploadedFileRepository(db *gorm.DB) *UploadedFileRepository {
	return &UploadedFileRepository{db}
}

func (r *UploadedFileRepository) CreateFile(file *model.UploadedFile) error {
	return r.db.Create(file).Error
}

// MarkDone flips a pending record to Done and counts the candidate on its project in one transaction.
func (r *UploadedFileRepository) MarkDone(file *model.UploadedFile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(file).Update("status", model.FileStatusDone).Error; err != nil {
			return err
		}
		return adjustCandidates(tx, file.ProjectID, 1)
	})
}

func (r *UploadedFileRepository) MarkFailed(file *model.UploadedFile) error {
	return r.db.Model(file).Update("status", model.FileStatusFailed).Error
}

func (r *UploadedFileRepository) FindFilesByProject(projectID string) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&files).Error
	return files, err
}

// DeleteFiles removes records named fileName (restricted to projectID when set). Each
// removed Done record gives back the candidate MarkDone counted, floored at zero. It
// returns the number of records removed.
func (r *UploadedFileRepository) DeleteFiles(fileName, projectID string) (int, error) {
	removed := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("name = ?", fileName)
		if projectID != "" {
			q = q.Where("project_id = ?", projectID)
		}
		var files []model.UploadedFile
		if err := q.Find(&files).Error; err != nil {
			return err
		}
		for i := range files {
			if err := tx.Delete(&files[i]).Error; err != nil {
				return err
			}
			if files[i].ProjectID == "" || files[i].Status != model.FileStatusDone {
				continue
			}
			if err := adjustCandidates(tx, files[i].ProjectID, -1); err != nil {
				return err
			}
		}
		removed = len(files)
		return nil
	})
	return removed, err
}
