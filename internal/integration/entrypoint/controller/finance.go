package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fabrie/backend/internal/application/usecase/finance"
	domainerror "github.com/fabrie/backend/internal/domain/error"
	"github.com/fabrie/backend/internal/integration/entrypoint/dto"
)

// FinanceController handles the finance report endpoints.
type FinanceController struct {
	reportUseCase *finance.GetReportUseCase
	exportUseCase *finance.ExportReportUseCase
}

// NewFinanceController creates a new finance controller instance.
func NewFinanceController(reportUseCase *finance.GetReportUseCase, exportUseCase *finance.ExportReportUseCase) *FinanceController {
	return &FinanceController{
		reportUseCase: reportUseCase,
		exportUseCase: exportUseCase,
	}
}

func reportInput(ctx *gin.Context) finance.GetReportInput {
	return finance.GetReportInput{
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	}
}

// Report handles GET /api/finance/report requests.
func (c *FinanceController) Report(ctx *gin.Context) {
	output, err := c.reportUseCase.Execute(ctx.Request.Context(), reportInput(ctx))
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinanceReportResponse(output.Report))
}

// ExportPDF handles GET /api/finance/report/pdf requests.
func (c *FinanceController) ExportPDF(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), reportInput(ctx))
	if err != nil {
		c.handleFinanceError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	ctx.Header("Content-Length", strconv.Itoa(len(output.Content)))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// handleFinanceError handles finance errors and returns appropriate HTTP responses.
func (c *FinanceController) handleFinanceError(ctx *gin.Context, err error) {
	if writeValidationError(ctx, err) {
		return
	}

	var finErr *domainerror.FinanceError
	if errors.As(err, &finErr) {
		status := http.StatusInternalServerError
		if finErr.Code == domainerror.ErrCodeInvalidDateFormat || finErr.Code == domainerror.ErrCodeInvalidDateRange {
			status = http.StatusBadRequest
		}
		writeCodedError(ctx, status, finErr.Message, string(finErr.Code), err)
		return
	}

	writeInternalError(ctx, err)
}
