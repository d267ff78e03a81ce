package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/fabrie/backend/internal/domain/error"
	"github.com/fabrie/backend/internal/integration/entrypoint/dto"
	"github.com/fabrie/backend/internal/integration/entrypoint/middleware"
)

const internalErrorMessage = "An internal error occurred"

// writeValidationError responds 400 when err is a ValidationError.
func writeValidationError(ctx *gin.Context, err error) bool {
	var valErr *domainerror.ValidationError
	if !errors.As(err, &valErr) {
		return false
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  valErr.Message,
		Code:   valErr.Code,
		Fields: valErr.Fields,
	})
	return true
}

// writeInternalError logs err and responds with a generic 500.
func writeInternalError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	middleware.Logger(ctx).ErrorContext(ctx.Request.Context(), "Request failed",
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: internalErrorMessage,
	})
}

// writeCodedError responds with a typed domain error, logging it when the status is 5xx.
func writeCodedError(ctx *gin.Context, status int, message, code string, err error) {
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
		middleware.Logger(ctx).ErrorContext(ctx.Request.Context(), "Request failed",
			"code", code,
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// fieldRequired is the message used for missing required fields.
const fieldRequired = "This field is required."

func badRequest(ctx *gin.Context, message, code string, fields map[string]string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:  message,
		Code:   code,
		Fields: fields,
	})
}
