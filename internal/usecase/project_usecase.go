package usecase

import (
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/google/uuid"
)

type ProjectUsecase struct {
	projects ProjectStore
	now      func() time.Time
}

func NewProjectUsecase(projects ProjectStore) *ProjectUsecase {
	return &ProjectUsecase{projects: projects, now: time.Now}
}

func (uc *ProjectUsecase) Create(req dto.CreateProjectRequest) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	jobTitle := strings.TrimSpace(req.JobTitle)
	if name == "" {
		return nil, apperror.NewValidationError("name", "is required")
	}
	if jobTitle == "" {
		return nil, apperror.NewValidationError("jobTitle", "is required")
	}

	criteria := model.DefaultCriteria()
	if req.Criteria != nil {
		criteria = *req.Criteria
		if criteria.Quality < 0 || criteria.Efficiency < 0 || criteria.Innovation < 0 {
			return nil, apperror.NewValidationError("criteria", "weights must not be negative")
		}
	}

	now := uc.now()
	project := &model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		JobTitle:    jobTitle,
		Description: strings.TrimSpace(req.Description),
		Status:      model.ProjectStatusActive,
		Candidates:  0,
		Criteria:    criteria,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if err := uc.projects.CreateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (uc *ProjectUsecase) List(page, pageSize int) ([]model.Project, *response.Pagination, error) {
	page, pageSize = response.NormalizePage(page, pageSize)
	projects, total, err := uc.projects.GetProjects(page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	return projects, response.NewPagination(page, pageSize, total, len(projects)), nil
}

func (uc *ProjectUsecase) Get(id string) (*model.Project, error) {
	return uc.projects.FindProjectByID(id)
}

func (uc *ProjectUsecase) UpdateStatus(id string, req dto.UpdateProjectStatusRequest) (*model.Project, error) {
	switch req.Status {
	case model.ProjectStatusActive, model.ProjectStatusInactive:
	default:
		return nil, apperror.NewValidationError("status", "must be Active or Inactive")
	}
	return uc.projects.UpdateStatus(id, req.Status)
}
