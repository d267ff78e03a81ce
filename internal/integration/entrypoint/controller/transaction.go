package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fabrie/backend/internal/application/usecase/transaction"
	domainerror "github.com/fabrie/backend/internal/domain/error"
	"github.com/fabrie/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles finance transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /api/finance/transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		StartDate:  ctx.Query("start_date"),
		EndDate:    ctx.Query("end_date"),
		CategoryID: ctx.Query("category"),
		Type:       ctx.Query("type"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Get handles GET /api/finance/transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	transactionID, ok := c.parseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{TransactionID: transactionID})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /api/finance/transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields), bindingFields(err))
		return
	}

	categoryID, ok := parseCategoryField(ctx, req.Category)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		CategoryID:  categoryID,
		Amount:      *req.Amount,
		Description: req.Description,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT and PATCH /api/finance/transactions/:id requests.
// The transaction date is assigned at creation and never changes.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, ok := c.parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields), bindingFields(err))
		return
	}

	if ctx.Request.Method == http.MethodPut {
		missing := map[string]string{}
		if req.Category == nil {
			missing["category"] = fieldRequired
		}
		if req.Amount == nil {
			missing["amount"] = fieldRequired
		}
		if len(missing) > 0 {
			badRequest(ctx, "Missing required fields", string(domainerror.ErrCodeMissingTransactionFields), missing)
			return
		}
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		Amount:        req.Amount,
		Description:   req.Description,
	}
	if req.Category != nil {
		categoryID, ok := parseCategoryField(ctx, *req.Category)
		if !ok {
			return
		}
		input.CategoryID = &categoryID
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /api/finance/transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := c.parseID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: transactionID}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *TransactionController) parseID(ctx *gin.Context) (uuid.UUID, bool) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "transaction not found",
			Code:  string(domainerror.ErrCodeTransactionNotFound),
		})
		return uuid.Nil, false
	}
	return transactionID, true
}

func parseCategoryField(ctx *gin.Context, value string) (uuid.UUID, bool) {
	categoryID, err := uuid.Parse(value)
	if err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields),
			map[string]string{"category": "Must be a valid UUID."})
		return uuid.Nil, false
	}
	return categoryID, true
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	if writeValidationError(ctx, err) {
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		writeCodedError(ctx, c.getStatusCodeForTransactionError(txnErr.Code), txnErr.Message, string(txnErr.Code), err)
		return
	}

	writeInternalError(ctx, err)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
// An unknown category in the body is a client error, not a missing resource.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTxnCategoryNotFound,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidTransactionFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
