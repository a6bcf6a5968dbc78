package handler

import (
	"context"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	uc FileUsecase
}

func NewFileHandler(uc FileUsecase) *FileHandler {
	return &FileHandler{uc: uc}
}

func (h *FileHandler) RegisterRoutes(app *fiber.App) {
	files := app.Group("/files")
	files.Get("/view", h.View)
	files.Get("/download", h.Download)
}

func (h *FileHandler) View(c *fiber.Ctx) error {
	return h.signedURL(c, h.uc.ViewURL)
}

func (h *FileHandler) Download(c *fiber.Ctx) error {
	return h.signedURL(c, h.uc.DownloadURL)
}

func (h *FileHandler) signedURL(c *fiber.Ctx, sign func(ctx context.Context, fileName string) (string, error)) error {
	url, err := sign(c.UserContext(), c.Query("fileName"))
	if err != nil {
		return util.HandleError(c, err, "Failed to generate file URL")
	}
	return c.JSON(dto.URLResponse{URL: url})
}
