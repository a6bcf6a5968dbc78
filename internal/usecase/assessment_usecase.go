package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

const (
	emptyResumeMessage = "Failed to extract text from PDF"
	noCommentMessage   = "No comment available"
	noResumesMessage   = "No resumes found for this project. Please upload resumes first."
)

type AssessmentUsecase struct {
	extractor   service.ExtractionServiceInterface
	llm         service.LLMServiceInterface
	projects    ProjectStore
	files       FileStore
	assessments AssessmentStore
	log         *zap.Logger
}

func NewAssessmentUsecase(extractor service.ExtractionServiceInterface, llm service.LLMServiceInterface, projects ProjectStore, files FileStore, assessments AssessmentStore, log *zap.Logger) *AssessmentUsecase {
	return &AssessmentUsecase{
		extractor:   extractor,
		llm:         llm,
		projects:    projects,
		files:       files,
		assessments: assessments,
		log:         log,
	}
}

func ValidateAssessmentRequest(req dto.AssessmentRequest) error {
	if req.Prompt == "" {
		return apperror.NewValidationError("", "Invalid request. Prompt and pdfPaths array are required.")
	}
	if req.PdfPaths == nil {
		return apperror.NewValidationError("", "Invalid request. Prompt and pdfPaths array are required.")
	}
	return nil
}

// ScoreBatch runs batch scoring for a raw assessment request. Results come back in
// request order; with a project id they are also stored as that project's batch.
func (uc *AssessmentUsecase) ScoreBatch(ctx context.Context, req dto.AssessmentRequest) ([]model.AssessmentResult, error) {
	if err := ValidateAssessmentRequest(req); err != nil {
		return nil, err
	}

	jobTitle, jobDescription := ParseJobPrompt(req.Prompt)
	if t := strings.TrimSpace(req.JobTitle); t != "" {
		jobTitle = t
	}
	if d := strings.TrimSpace(req.JobDescription); d != "" {
		jobDescription = d
	}

	if req.ProjectID != "" {
		if _, err := uc.projects.FindProjectByID(req.ProjectID); err != nil {
			return nil, err
		}
	}

	results := uc.ScoreResumes(ctx, jobTitle, jobDescription, req.PdfPaths)

	if req.ProjectID != "" {
		if err := uc.assessments.ReplaceResults(req.ProjectID, prepareForStorage(results)); err != nil {
			return nil, fmt.Errorf("save assessments: %w", err)
		}
	}
	return results, nil
}

// ScoreResumes scores every resume concurrently. The returned slice is index-aligned
// with paths and never shorter: a resume that cannot be scored gets a degraded entry.
func (uc *AssessmentUsecase) ScoreResumes(ctx context.Context, jobTitle, jobDescription string, paths []string) []model.AssessmentResult {
	results := make([]model.AssessmentResult, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					uc.log.Error("panic while scoring resume", zap.String("file", p), zap.Any("panic", r))
					results[i] = degradedResult(p, fmt.Sprintf("unexpected failure: %v", r))
				}
			}()
			results[i] = uc.scoreResume(ctx, jobTitle, jobDescription, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (uc *AssessmentUsecase) scoreResume(ctx context.Context, jobTitle, jobDescription, filePath string) model.AssessmentResult {
	uc.log.Info("processing resume", zap.String("file", filePath))

	text, err := uc.extractor.ExtractText(ctx, filePath)
	if err != nil {
		uc.log.Error("extracting resume text failed", zap.String("file", filePath), zap.Error(err))
		return degradedResult(filePath, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return degradedResult(filePath, emptyResumeMessage)
	}

	content, err := uc.llm.Call(ctx, scoringSystemPrompt(filePath), scoringUserPrompt(jobTitle, jobDescription, text), true)
	if err != nil {
		uc.log.Error("scoring resume failed", zap.String("file", filePath), zap.Error(err))
		return degradedResult(filePath, err.Error())
	}
	return decodeResult(filePath, content)
}

// AnswerQuestion answers one free-text question over all resumes at once. Unreadable
// resumes contribute empty text; a failed model call fails the whole answer.
func (uc *AssessmentUsecase) AnswerQuestion(ctx context.Context, question string, paths []string) (string, error) {
	texts := make([]string, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			text, err := uc.extractor.ExtractText(ctx, p)
			if err != nil {
				uc.log.Error("extracting resume text failed", zap.String("file", p), zap.Error(err))
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	combined := strings.Join(texts, resumeDelimiter)
	return uc.llm.Call(ctx, qaSystemPrompt, qaUserPrompt(combined, question), false)
}

// AssessProject scores every uploaded resume of a project against its job and stores
// the batch, best score first.
func (uc *AssessmentUsecase) AssessProject(ctx context.Context, projectID string) ([]model.AssessmentResult, error) {
	project, err := uc.projects.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	paths, err := uc.projectResumePaths(projectID)
	if err != nil {
		return nil, err
	}

	results := prepareForStorage(uc.ScoreResumes(ctx, project.JobTitle, project.Description, paths))
	if err := uc.assessments.ReplaceResults(projectID, results); err != nil {
		return nil, fmt.Errorf("save assessments: %w", err)
	}
	return results, nil
}

func (uc *AssessmentUsecase) ProjectAssessments(projectID string) ([]model.AssessmentResult, error) {
	if _, err := uc.projects.FindProjectByID(projectID); err != nil {
		return nil, err
	}
	results, err := uc.assessments.FindResultsByProject(projectID)
	if err != nil {
		return nil, err
	}
	model.SortByScore(results)
	return results, nil
}

func (uc *AssessmentUsecase) Greeting(projectID string) (*model.ChatMessage, error) {
	project, err := uc.projects.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	return &model.ChatMessage{Role: model.RoleAssistant, Content: projectGreeting(project.JobTitle)}, nil
}

// AskProject answers a recruiter question about a project's candidates and returns the
// conversation extended by the question and the answer.
func (uc *AssessmentUsecase) AskProject(ctx context.Context, projectID string, req dto.QuestionRequest) (*dto.ConversationResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, apperror.NewValidationError("question", "is required")
	}
	project, err := uc.projects.FindProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	paths, err := uc.projectResumePaths(projectID)
	if err != nil {
		return nil, err
	}

	answer, err := uc.AnswerQuestion(ctx, projectQuestionPrompt(project.JobTitle, question), paths)
	if err != nil {
		return nil, err
	}

	messages := make([]model.ChatMessage, 0, len(req.History)+2)
	messages = append(messages, req.History...)
	messages = append(messages,
		model.ChatMessage{Role: model.RoleUser, Content: question},
		model.ChatMessage{Role: model.RoleAssistant, Content: answer},
	)
	return &dto.ConversationResponse{Answer: answer, Messages: messages}, nil
}

func (uc *AssessmentUsecase) projectResumePaths(projectID string) ([]string, error) {
	files, err := uc.files.FindFilesByProject(projectID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if f.Status != model.FileStatusDone {
			continue
		}
		paths = append(paths, "/"+service.NormalizeKey(f.Name))
	}
	if len(paths) == 0 {
		return nil, apperror.NewValidationError("", noResumesMessage)
	}
	return paths, nil
}

func decodeResult(filePath, content string) model.AssessmentResult {
	parsed := gjson.Parse(content)
	result := model.AssessmentResult{
		File:         parsed.Get("file").String(),
		Name:         strings.TrimSpace(parsed.Get("name").String()),
		Score:        clampScore(parsed.Get("score").Float()),
		Comment:      parsed.Get("comment").String(),
		Strengths:    stringList(parsed.Get("strengths")),
		Improvements: stringList(parsed.Get("improvements")),
		FitForRole:   parsed.Get("fitForRole").String(),
	}
	if result.File == "" {
		result.File = filePath
	}
	if result.Name == "" {
		result.Name = model.DefaultCandidateName
	}
	return result
}

func degradedResult(filePath, message string) model.AssessmentResult {
	return model.AssessmentResult{
		File:         filePath,
		Name:         model.DefaultCandidateName,
		Score:        0,
		Comment:      "Failed to process resume: " + message,
		Strengths:    datatypes.JSONSlice[string]{},
		Improvements: datatypes.JSONSlice[string]{},
		FitForRole:   model.NotEvaluated,
		Error:        message,
	}
}

// prepareForStorage returns a copy of results in the shape kept per project: bare file
// names, filled-in defaults, best score first.
func prepareForStorage(results []model.AssessmentResult) []model.AssessmentResult {
	out := make([]model.AssessmentResult, len(results))
	for i, r := range results {
		r.File = path.Base(r.File)
		if r.Name == "" {
			r.Name = model.DefaultCandidateName
		}
		if r.Comment == "" {
			r.Comment = noCommentMessage
		}
		if r.FitForRole == "" {
			r.FitForRole = model.NotEvaluated
		}
		if r.Strengths == nil {
			r.Strengths = datatypes.JSONSlice[string]{}
		}
		if r.Improvements == nil {
			r.Improvements = datatypes.JSONSlice[string]{}
		}
		out[i] = r
	}
	model.SortByScore(out)
	return out
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func stringList(v gjson.Result) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	if !v.Exists() {
		return out
	}
	if !v.IsArray() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
