package handler

import (
	"context"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/fadilmartias/resume-screener/internal/usecase"
)

// Satisfied by the usecase package's concrete types.

type AssessmentUsecase interface {
	ScoreBatch(ctx context.Context, req dto.AssessmentRequest) ([]model.AssessmentResult, error)
	AnswerQuestion(ctx context.Context, question string, paths []string) (string, error)
	AssessProject(ctx context.Context, projectID string) ([]model.AssessmentResult, error)
	ProjectAssessments(projectID string) ([]model.AssessmentResult, error)
	Greeting(projectID string) (*model.ChatMessage, error)
	AskProject(ctx context.Context, projectID string, req dto.QuestionRequest) (*dto.ConversationResponse, error)
}

type FileUsecase interface {
	Upload(ctx context.Context, in usecase.UploadInput) (*dto.UploadResponse, error)
	Delete(ctx context.Context, fileName, projectID string) error
	ViewURL(ctx context.Context, fileName string) (string, error)
	DownloadURL(ctx context.Context, fileName string) (string, error)
	ProjectFiles(projectID string) ([]model.UploadedFile, error)
}

type ProjectUsecase interface {
	Create(req dto.CreateProjectRequest) (*model.Project, error)
	List(page, pageSize int) ([]model.Project, *response.Pagination, error)
	Get(id string) (*model.Project, error)
	UpdateStatus(id string, req dto.UpdateProjectStatusRequest) (*model.Project, error)
}

var (
	_ AssessmentUsecase = (*usecase.AssessmentUsecase)(nil)
	_ FileUsecase       = (*usecase.FileUsecase)(nil)
	_ ProjectUsecase    = (*usecase.ProjectUsecase)(nil)
)
