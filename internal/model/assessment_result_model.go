package model

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultCandidateName = "Candidate"
	NotEvaluated         = "Not evaluated"
)

type AssessmentResult struct {
	ID           uint                        `gorm:"primaryKey" json:"-"`
	ProjectID    string                      `gorm:"type:varchar(36);index" json:"-"`
	Rank         int                         `gorm:"not null" json:"-"`
	File         string                      `gorm:"type:varchar(512)" json:"file"`
	Name         string                      `gorm:"type:varchar(255)" json:"name"`
	Score        float64                     `json:"score"`
	Comment      string                      `gorm:"type:text" json:"comment"`
	Strengths    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"strengths"`
	Improvements datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"improvements"`
	FitForRole   string                      `gorm:"type:text" json:"fitForRole"`
	Error        string                      `gorm:"type:text" json:"error,omitempty"`
	CreatedAt    time.Time                   `json:"-"`
}

func (r *AssessmentResult) TableName() string {
	return "assessment_results"
}

// Degraded reports whether the entry is a placeholder for a failed analysis.
func (r *AssessmentResult) Degraded() bool {
	return r.Error != ""
}

// SortByScore orders results by descending score; ties keep their input order.
func SortByScore(results []AssessmentResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
