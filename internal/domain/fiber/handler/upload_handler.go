package handler

import (
	"io"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/usecase"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024

type UploadHandler struct {
	uc FileUsecase
}

func NewUploadHandler(uc FileUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

func (h *UploadHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/upload", h.Upload)
	app.Delete("/upload", h.Delete)
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "No file uploaded",
		}, err)
	}
	if file.Size > maxUploadSize {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "File size is too large (max 5MB)",
		})
	}

	f, err := file.Open()
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Cannot read uploaded file",
		}, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Cannot read uploaded file",
		}, err)
	}

	res, err := h.uc.Upload(c.UserContext(), usecase.UploadInput{
		FileName:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Data:        data,
		ProjectID:   c.FormValue("projectId"),
	})
	if err != nil {
		return util.HandleError(c, err, "Failed to upload file")
	}
	return c.JSON(res)
}

func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Query("fileName"), c.Query("projectId")); err != nil {
		return util.HandleError(c, err, "Failed to delete file")
	}
	return c.JSON(dto.MessageResponse{Message: "File deleted successfully"})
}
