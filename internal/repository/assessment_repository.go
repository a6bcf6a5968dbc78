package repository

import (
	"github.com/fadilmartias/resume-screener/internal/model"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

// ReplaceResults swaps the stored batch of a project for results, which the caller has
// already sorted by score.
func (r *AssessmentRepository) ReplaceResults(projectID string, results []model.AssessmentResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.AssessmentResult{}).Error; err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		rows := make([]model.AssessmentResult, len(results))
		for i, res := range results {
			res.ID = 0
			res.ProjectID = projectID
			res.Rank = i
			rows[i] = res
		}
		return tx.Create(&rows).Error
	})
}

func (r *AssessmentRepository) FindResultsByProject(projectID string) ([]model.AssessmentResult, error) {
	var results []model.AssessmentResult
	err := r.db.Where("project_id = ?", projectID).Order("score DESC, rank ASC").Find(&results).Error
	return results, err
}
