package repository

import (
	"errors"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/model"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) CreateProject(project *model.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) FindProjectByID(id string) (*model.Project, error) {
	var p model.Project
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("project", id)
	}
	return &p, err
}

// GetProjects returns one page of projects, most recently updated first, and the total count.
func (r *ProjectRepository) GetProjects(page, pageSize int) ([]model.Project, int64, error) {
	var (
		projects []model.Project
		total    int64
	)
	if err := r.db.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("last_updated DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) UpdateStatus(id, status string) (*model.Project, error) {
	var project model.Project
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Project{}).Where("id = ?", id).Updates(map[string]any{
			"status":       status,
			"last_updated": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewNotFoundError("project", id)
		}
		return tx.First(&project, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// adjustCandidates shifts the candidate count by delta inside tx, never below zero.
func adjustCandidates(tx *gorm.DB, projectID string, delta int) error {
	return tx.Model(&model.Project{}).
		Where("id = ?", projectID).
		Updates(map[string]any{
			"candidates":   gorm.Expr("GREATEST(candidates + ?, 0)", delta),
			"last_updated": time.Now(),
		}).Error
}
