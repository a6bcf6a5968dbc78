package usecase

import "github.com/fadilmartias/resume-screener/internal/model"

// The usecases depend on these instead of the gorm repositories so they can be tested
// without a database.

type ProjectStore interface {
	CreateProject(project *model.Project) error
	FindProjectByID(id string) (*model.Project, error)
	GetProjects(page, pageSize int) ([]model.Project, int64, error)
	UpdateStatus(id, status string) (*model.Project, error)
}

type FileStore interface {
	CreateFile(file *model.UploadedFile) error
	MarkDone(file *model.UploadedFile) error
	MarkFailed(file *model.UploadedFile) error
	FindFilesByProject(projectID string) ([]model.UploadedFile, error)
	DeleteFiles(fileName, projectID string) (int, error)
}

type AssessmentStore interface {
	ReplaceResults(projectID string, results []model.AssessmentResult) error
	FindResultsByProject(projectID string) ([]model.AssessmentResult, error)
}
