package util

import (
	"errors"
	"runtime/debug"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Error      string `json:"error"`
	Details    any    `json:"details,omitempty"`
	DevMessage string `json:"dev_message,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse sends the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	})
}

// ErrorResponse sends {"error": ..., "details": ...}. Outside production the
// underlying error and a stack trace are attached as well.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	res := OrderedErrorResponse{
		Error:   params.Message,
		Details: params.Details,
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			res.DevMessage = errs[0].Error()
			res.Trace = string(debug.Stack())
		}
		if params.DevMessage != "" {
			res.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			res.Trace = params.Trace
		}
	}

	code := params.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}
	return c.Status(code).JSON(res)
}

// HandleError answers with the status apperror assigns to err. Client errors carry
// their own message; server errors fall back to fallback when err has nothing more
// specific to say.
func HandleError(c *fiber.Ctx, err error, fallback string) error {
	code := apperror.StatusCode(err)
	message := err.Error()

	var modelErr *apperror.ModelCallError
	if code == fiber.StatusInternalServerError && !errors.As(err, &modelErr) && fallback != "" {
		message = fallback
	}
	return ErrorResponse(c, ErrorResponseFormat{
		Code:    code,
		Message: message,
		Details: apperror.Details(err),
	}, err)
}
