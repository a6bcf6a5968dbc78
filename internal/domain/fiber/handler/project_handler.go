package handler

import (
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projects    ProjectUsecase
	assessments AssessmentUsecase
	files       FileUsecase
}

func NewProjectHandler(projects ProjectUsecase, assessments AssessmentUsecase, files FileUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects, assessments: assessments, files: files}
}

func (h *ProjectHandler) RegisterRoutes(app *fiber.App) {
	projects := app.Group("/projects")
	projects.Post("/", h.Create)
	projects.Get("/", h.List)
	projects.Get("/:id", h.Get)
	projects.Patch("/:id/status", h.UpdateStatus)
	projects.Get("/:id/files", h.Files)
	projects.Post("/:id/assessments", h.Assess)
	projects.Get("/:id/assessments", h.Assessments)
	projects.Get("/:id/qa", h.Greeting)
	projects.Post("/:id/qa", h.Ask)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	project, err := h.projects.Create(req)
	if err != nil {
		return util.HandleError(c, err, "Failed to create project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create project",
		Data:    project,
	})
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, pagination, err := h.projects.List(c.QueryInt("page", 1), c.QueryInt("page_size", 0))
	if err != nil {
		return util.HandleError(c, err, "Failed to list projects")
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get projects",
		Data:       projects,
		Pagination: pagination,
	})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.Get(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err, "Failed to get project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get project",
		Data:    project,
	})
}

func (h *ProjectHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateProjectStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	project, err := h.projects.UpdateStatus(c.Params("id"), req)
	if err != nil {
		return util.HandleError(c, err, "Failed to update project status")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update project status",
		Data:    project,
	})
}

func (h *ProjectHandler) Files(c *fiber.Ctx) error {
	files, err := h.files.ProjectFiles(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err, "Failed to get project files")
	}
	if files == nil {
		files = []model.UploadedFile{}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get project files",
		Data:    files,
	})
}

func (h *ProjectHandler) Assess(c *fiber.Ctx) error {
	results, err := h.assessments.AssessProject(c.UserContext(), c.Params("id"))
	if err != nil {
		return util.HandleError(c, err, "Failed to process assessment")
	}
	return c.JSON(dto.AssessmentResponse{Results: results})
}

func (h *ProjectHandler) Assessments(c *fiber.Ctx) error {
	results, err := h.assessments.ProjectAssessments(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err, "Failed to get assessments")
	}
	if results == nil {
		results = []model.AssessmentResult{}
	}
	return c.JSON(dto.AssessmentResponse{Results: results})
}

func (h *ProjectHandler) Greeting(c *fiber.Ctx) error {
	msg, err := h.assessments.Greeting(c.Params("id"))
	if err != nil {
		return util.HandleError(c, err, "Failed to start conversation")
	}
	return c.JSON(dto.ConversationResponse{Answer: msg.Content, Messages: []model.ChatMessage{*msg}})
}

func (h *ProjectHandler) Ask(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}
	res, err := h.assessments.AskProject(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return util.HandleError(c, err, "Failed to answer question")
	}
	return c.JSON(res)
}
