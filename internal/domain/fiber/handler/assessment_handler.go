package handler

import (
	"time"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/usecase"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

const invalidAssessmentRequest = "Invalid request. Prompt and pdfPaths array are required."

type AssessmentHandler struct {
	uc AssessmentUsecase
}

func NewAssessmentHandler(uc AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/assessment", middleware.RateLimiter(10, 1*time.Minute), h.Assess)
}

// Assess scores a batch of resumes, or answers one question over all of them when isQA is set.
func (h *AssessmentHandler) Assess(c *fiber.Ctx) error {
	var req dto.AssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: invalidAssessmentRequest,
		}, err)
	}
	if err := usecase.ValidateAssessmentRequest(req); err != nil {
		return util.HandleError(c, err, "")
	}

	if req.IsQA {
		answer, err := h.uc.AnswerQuestion(c.UserContext(), req.Prompt, req.PdfPaths)
		if err != nil {
			return util.HandleError(c, err, "Failed to process assessment")
		}
		return c.JSON(dto.AnswerResponse{Answer: answer})
	}

	results, err := h.uc.ScoreBatch(c.UserContext(), req)
	if err != nil {
		return util.HandleError(c, err, "Failed to process assessment")
	}
	return c.JSON(dto.AssessmentResponse{Results: results})
}
