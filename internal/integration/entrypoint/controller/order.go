package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fabrie/backend/internal/application/usecase/order"
	domainerror "github.com/fabrie/backend/internal/domain/error"
	"github.com/fabrie/backend/internal/integration/entrypoint/dto"
)

// OrderController handles order endpoints.
type OrderController struct {
	listUseCase     *order.ListOrdersUseCase
	getUseCase      *order.GetOrderUseCase
	createUseCase   *order.CreateOrderUseCase
	updateUseCase   *order.UpdateOrderUseCase
	deleteUseCase   *order.DeleteOrderUseCase
	imageURL        func(string) string
	maxRequestBytes int64
}

// NewOrderController creates a new order controller instance.
func NewOrderController(
	listUseCase *order.ListOrdersUseCase,
	getUseCase *order.GetOrderUseCase,
	createUseCase *order.CreateOrderUseCase,
	updateUseCase *order.UpdateOrderUseCase,
	deleteUseCase *order.DeleteOrderUseCase,
	imageURL func(string) string,
	maxRequestBytes int64,
) *OrderController {
	return &OrderController{
		listUseCase:     listUseCase,
		getUseCase:      getUseCase,
		createUseCase:   createUseCase,
		updateUseCase:   updateUseCase,
		deleteUseCase:   deleteUseCase,
		imageURL:        imageURL,
		maxRequestBytes: maxRequestBytes,
	}
}

// List handles GET /api/orders requests.
func (c *OrderController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), order.ListOrdersInput{
		Status:    ctx.Query("status"),
		Customer:  ctx.Query("customer"),
		IsSet:     ctx.Query("is_set"),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	})
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderListResponse(output.Orders, c.imageURL))
}

// Get handles GET /api/orders/:code requests.
func (c *OrderController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context(), order.GetOrderInput{Code: ctx.Param("code")})
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(output.Order, c.imageURL))
}

// Create handles POST /api/orders requests.
func (c *OrderController) Create(ctx *gin.Context) {
	payload, image, err := c.readPayload(ctx)
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), order.CreateOrderInput{
		Payload: payload,
		Image:   image,
	})
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(output.Order, c.imageURL))
}

// Update handles PUT (full) and PATCH (partial) /api/orders/:code requests.
func (c *OrderController) Update(ctx *gin.Context) {
	payload, image, err := c.readPayload(ctx)
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), order.UpdateOrderInput{
		Code:    ctx.Param("code"),
		Payload: payload,
		Image:   image,
		Partial: ctx.Request.Method == http.MethodPatch,
	})
	if err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(output.Order, c.imageURL))
}

// Delete handles DELETE /api/orders/:code requests.
func (c *OrderController) Delete(ctx *gin.Context) {
	if err := c.deleteUseCase.Execute(ctx.Request.Context(), order.DeleteOrderInput{Code: ctx.Param("code")}); err != nil {
		c.handleOrderError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// readPayload decodes a JSON, urlencoded or multipart body into a normalized payload.
func (c *OrderController) readPayload(ctx *gin.Context) (order.Payload, *order.ImageUpload, error) {
	if c.maxRequestBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxRequestBytes)
	}

	switch ctx.ContentType() {
	case gin.MIMEMultipartPOSTForm:
		form, err := ctx.MultipartForm()
		if err != nil {
			return order.Payload{}, nil, bodyError(err)
		}
		image, err := readImage(form)
		if err != nil {
			return order.Payload{}, nil, bodyError(err)
		}
		return order.NormalizeForm(form.Value), image, nil

	case gin.MIMEPOSTForm:
		if err := ctx.Request.ParseForm(); err != nil {
			return order.Payload{}, nil, bodyError(err)
		}
		return order.NormalizeForm(ctx.Request.PostForm), nil, nil

	default:
		raw, err := decodeJSONObject(ctx.Request.Body)
		if err != nil {
			return order.Payload{}, nil, bodyError(err)
		}
		return order.Normalize(raw), nil, nil
	}
}

// decodeJSONObject decodes a JSON object keeping numbers as json.Number. An empty body is an
// empty object.
func decodeJSONObject(body io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("JSON parse error - %w", err)
	}
	raw, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("Invalid data. Expected a dictionary, but got %s.", jsonKind(decoded))
	}
	return raw, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "list"
	case string:
		return "str"
	case json.Number:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	}
	return "value"
}

func readImage(form *multipart.Form) (*order.ImageUpload, error) {
	files := form.File[order.FieldProductImage]
	if len(files) == 0 {
		return nil, nil
	}

	header := files[len(files)-1]
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidOrderImage,
			domainerror.ErrInvalidOrderImage.Error(),
			map[string]string{order.FieldProductImage: "The submitted file is empty."},
		)
	}
	return &order.ImageUpload{Filename: header.Filename, Data: data}, nil
}

// bodyError classifies a body read failure.
func bodyError(err error) error {
	var valErr *domainerror.ValidationError
	if errors.As(err, &valErr) {
		return err
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return domainerror.NewOrderError(
			domainerror.ErrCodeOrderImageTooLarge,
			"request body is too large",
			fmt.Errorf("%w: %w", domainerror.ErrOrderImageTooLarge, err),
		)
	}

	return domainerror.NewValidationError(
		domainerror.ErrCodeInvalidOrderData,
		err.Error(),
		nil,
	)
}

// handleOrderError handles order errors and returns appropriate HTTP responses.
func (c *OrderController) handleOrderError(ctx *gin.Context, err error) {
	if writeValidationError(ctx, err) {
		return
	}

	var ordErr *domainerror.OrderError
	if errors.As(err, &ordErr) {
		writeCodedError(ctx, c.getStatusCodeForOrderError(ordErr.Code), ordErr.Message, string(ordErr.Code), err)
		return
	}

	writeInternalError(ctx, err)
}

// getStatusCodeForOrderError maps order error codes to HTTP status codes.
func (c *OrderController) getStatusCodeForOrderError(code domainerror.OrderErrorCode) int {
	switch code {
	case domainerror.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeOrderImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeInvalidOrderData,
		domainerror.ErrCodeInvalidOrderImage,
		domainerror.ErrCodeInvalidOrderFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
